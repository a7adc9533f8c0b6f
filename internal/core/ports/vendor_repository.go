package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/vendor"
)

// VendorRepository gives read access to vendors, the origins of delivery routes.
type VendorRepository interface {
	// Add persists a new vendor.
	Add(ctx context.Context, v *vendor.Vendor) error

	// Get retrieves a vendor by its unique identifier.
	// Returns errs.ObjectNotFoundError when the vendor does not exist.
	Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error)
}
