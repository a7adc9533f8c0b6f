package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrCreateVendorCommandIsNotConstructed = errors.New(
	"CreateVendorCommand must be created via NewCreateVendorCommand constructor",
)

// CreateVendorCommand registers a pickup point. Orders placed with the vendor
// start their courier route at its location.
type CreateVendorCommand struct { //nolint:recvcheck //using for validation
	vendorID kernel.UUID
	name     string
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateVendorCommand creates a command with a fresh vendor ID.
func NewCreateVendorCommand(name string, location kernel.Location) (CreateVendorCommand, error) {
	command := CreateVendorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setVendorID(kernel.NewUUID()),
		command.setName(name),
		command.setLocation(location),
	); err != nil {
		return CreateVendorCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateVendorCommand) Validate() error {
	return c.guard.Validate(ErrCreateVendorCommandIsNotConstructed)
}

func (c CreateVendorCommand) VendorID() kernel.UUID {
	return c.vendorID
}

func (c CreateVendorCommand) Name() string {
	return c.name
}

func (c CreateVendorCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateVendorCommand) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.vendorID = id
	return nil
}

func (c *CreateVendorCommand) setName(name string) error {
	cleaned, err := normalizeName(name)
	if err != nil {
		return err
	}

	c.name = cleaned
	return nil
}

func (c *CreateVendorCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
