package queries

import (
	"context"

	"tracking/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads open orders joined with their vendor.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns open orders, oldest first.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	terminal := make([]int64, 0, len(order.TerminalStatuses()))
	for _, s := range order.TerminalStatuses() {
		terminal = append(terminal, int64(s))
	}

	rows, err := h.db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+ordersWithVendor+`
		WHERE o.status <> ALL(?::smallint[])
		ORDER BY o.created_at, o.id`,
		pq.Array(terminal),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderReadModel, 0)
	for rows.Next() {
		m, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
