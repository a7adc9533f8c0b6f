package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// OrderEvent describes an order after a committed simulation step.
type OrderEvent struct {
	OrderID         kernel.UUID
	CustomerID      kernel.UUID
	Status          order.Status
	Progress        float64
	CourierPosition *kernel.Location
	CourierID       *kernel.UUID
	StatusChanged   bool
	OccurredAt      time.Time
}

// NewOrderEvent snapshots an order into an event.
func NewOrderEvent(o *order.Order, statusChanged bool, occurredAt time.Time) OrderEvent {
	return OrderEvent{
		OrderID:         o.ID(),
		CustomerID:      o.CustomerID(),
		Status:          o.Status(),
		Progress:        o.Progress(),
		CourierPosition: o.CourierPosition(),
		CourierID:       o.Courier(),
		StatusChanged:   statusChanged,
		OccurredAt:      occurredAt.UTC(),
	}
}

// OrderEventPublisher fans order updates out to live subscribers and the
// message broker. Events are published after the transaction commits; a
// publishing failure never rolls a step back.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
