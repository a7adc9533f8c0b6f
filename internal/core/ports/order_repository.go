package ports

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
)

// ErrConcurrentUpdate is returned by OrderRepository.UpdateProgress when the
// stored order no longer matches the expected revision, i.e. another driver
// advanced it first.
var ErrConcurrentUpdate = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, origin
	// included. Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOpen retrieves every order that is neither delivered nor cancelled,
	// oldest first.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)

	// UpdateProgress writes status, progress, courier position and courier
	// assignment of the aggregate, but only if the stored status and progress
	// still equal expected. Otherwise nothing is written and ErrConcurrentUpdate
	// is returned (or errs.ObjectNotFoundError if the order vanished).
	UpdateProgress(ctx context.Context, aggregate *order.Order, expected order.Revision) error
}
