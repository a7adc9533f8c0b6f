package commands

import (
	"context"

	"tracking/internal/core/domain/model/vendor"
)

// CreateVendorCommandHandler persists new vendors.
type CreateVendorCommandHandler struct {
	uowFactory VendorUoWFactory
}

func NewCreateVendorCommandHandler(uowFactory VendorUoWFactory) CreateVendorCommandHandler {
	return CreateVendorCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the vendor within a transaction.
func (h CreateVendorCommandHandler) Handle(ctx context.Context, cmd CreateVendorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := vendor.NewVendor(cmd.VendorID(), cmd.Name(), cmd.Location())
	if err != nil {
		return err
	}

	if err = uow.VendorRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
