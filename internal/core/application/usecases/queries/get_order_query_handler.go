package queries

import (
	"context"

	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order joined with its vendor.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return OrderReadModel{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+ordersWithVendor+` WHERE o.id = ?`,
		query.OrderID().Bytes(),
	).Rows()
	if err != nil {
		return OrderReadModel{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderReadModel{}, err
		}
		return OrderReadModel{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return scanOrder(rows)
}
