// Package ports defines the contracts between the application core and the
// infrastructure: repositories, the unit of work, and outbound event publishing.
package ports

import (
	"context"

	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for couriers.
type CourierRepository interface {
	// Add persists a new courier.
	Add(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by its unique identifier.
	// Returns errs.ObjectNotFoundError when no courier has that ID.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves the couriers that may be attached to an order at pickup.
	//
	// Business Rules:
	//   - The courier must be marked available
	//   - A courier already carrying a picked up order is busy
	//
	// The result is ordered by name then ID so selection is stable across calls.
	// An empty slice (not an error) is returned when nobody is free.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
