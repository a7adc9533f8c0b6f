package courier

import (
	"errors"
	"strings"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is a courier-role actor that can be attached to an order when it is
// picked up. The simulator never moves couriers itself: the simulated position
// lives on the order, the courier only carries identity and availability.
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - Only available couriers are handed out by the courier lookup
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Alice")
//	if err != nil {
//	    // Handle construction error
//	}
//	c.GoOffline() // no longer offered for new pickups
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// available marks couriers willing to take new pickups
	available bool
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates an available courier.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	return RestoreCourier(id, name, true)
}

// RestoreCourier reconstructs a Courier from persistent storage.
func RestoreCourier(id kernel.UUID, name string, available bool) (*Courier, error) {
	courier := &Courier{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks if the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// IsAvailable reports whether the courier accepts new pickups.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// GoOnline makes the courier eligible for new pickups.
func (c *Courier) GoOnline() {
	c.available = true
}

// GoOffline withdraws the courier from new pickups. Orders already carried keep
// their assignment.
func (c *Courier) GoOffline() {
	c.available = false
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
