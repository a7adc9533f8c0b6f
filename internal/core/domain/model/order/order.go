package order

import (
	"errors"
	"fmt"
	"math"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsTerminal is returned when a delivered or cancelled order is asked to change.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Revision is the part of an order that changes on every tick. Persistence
// adapters use it as the expected value of a conditional update, so two
// drivers racing on the same order cannot both apply a step.
type Revision struct {
	Status   Status
	Progress float64
}

// Order is the aggregate advanced by the simulator. Origin (the vendor) and
// destination are fixed at creation; status, progress, courier position and
// courier assignment change as the order moves through its lifecycle.
//
// Invariants:
//   - Status only moves forward one step at a time (see Status.ValidateTransition)
//   - Progress stays within [0,1], never decreases while PickedUp, and is 0 on
//     entering PickedUp
//   - A courier position exists exactly for PickedUp and Delivered orders
//   - Delivered and Cancelled orders are never mutated
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	vendorID   kernel.UUID

	origin      kernel.Location
	destination kernel.Location

	status   Status
	progress float64

	// courierPosition is nil until the order is picked up
	courierPosition *kernel.Location

	// courierID is the assigned courier (nil if unassigned)
	courierID *kernel.UUID

	isConstructed bool
}

// NewOrder creates a Pending order with no courier and zero progress.
//
// Example:
//
//	vendor, _ := kernel.NewLocation(34.0, -118.4)
//	home, _ := kernel.NewLocation(34.02, -118.45)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, vendorID, vendor, home)
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	origin kernel.Location,
	destination kernel.Location,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setVendorID(vendorID),
		order.setOrigin(origin),
		order.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order loaded from persistence, re-checking every
// invariant so corrupted rows are rejected instead of simulated.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	origin kernel.Location,
	destination kernel.Location,
	status Status,
	progress float64,
	courierPosition *kernel.Location,
	courierID *kernel.UUID,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setVendorID(vendorID),
		order.setOrigin(origin),
		order.setDestination(destination),
		order.setStatus(status),
		order.setProgress(progress),
	); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveCourierPosition(courierPosition != nil); err != nil {
		return nil, err
	}

	if courierPosition != nil {
		if err := courierPosition.Validate(); err != nil {
			return nil, err
		}
		pos := *courierPosition
		order.courierPosition = &pos
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		order.courierID = &cID
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the user who owns the order and receives its notifications.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// VendorID returns the vendor preparing the order.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// Origin returns the vendor location the courier departs from.
func (o *Order) Origin() kernel.Location {
	return o.origin
}

// Destination returns the delivery location.
func (o *Order) Destination() kernel.Location {
	return o.destination
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Progress returns the fraction of the transit leg covered, in [0,1].
func (o *Order) Progress() float64 {
	return o.progress
}

// CourierPosition returns the simulated courier position, nil before pickup.
func (o *Order) CourierPosition() *kernel.Location {
	if o.courierPosition == nil {
		return nil
	}
	pos := *o.courierPosition
	return &pos
}

// Courier returns the assigned courier's ID, nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// Revision returns the current status and progress.
func (o *Order) Revision() Revision {
	return Revision{Status: o.status, Progress: o.progress}
}

// Apply moves the order to the next simulated state. It is the only mutator
// the simulation drivers use; the caller persists the result conditionally on
// the Revision read before the call.
//
// On error the order is left unchanged, so a failed step can simply be
// rolled back together with its transaction.
//
// Business Rules:
//   - The order must not be terminal
//   - next must be the successor of the current status, or PickedUp again while in transit
//   - progress must be in [0,1]; it must be 0 when entering PickedUp and must not
//     decrease while staying in PickedUp
//   - position is required for PickedUp and Delivered and forbidden otherwise
//
// Parameters:
//   - next: the status computed by the simulator
//   - progress: the fraction of the route covered, meaningful while PickedUp
//   - position: the courier position, copied so the caller may reuse it
//
// Returns:
//   - error: ErrOrderIsTerminal, a transition error from Status.ValidateTransition,
//     or a value error wrapping errs.ErrValueIsInvalid / errs.ErrValueIsOutOfRange
//
// Example:
//
//	step, err := simulator.Advance(services.StateOf(o))
//	if err != nil {
//	    return err
//	}
//	if err = o.Apply(step.Status, step.Progress, step.CourierPosition); err != nil {
//	    return err
//	}
func (o *Order) Apply(next Status, progress float64, position *kernel.Location) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsTerminal, o.status)
	}

	if err := o.status.ValidateTransition(next); err != nil {
		return err
	}

	if err := validateProgress(progress); err != nil {
		return err
	}

	if next == PickedUp && o.status == Preparing && progress != 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"progress is invalid",
			fmt.Errorf("%v must be 0 when the order is picked up", progress),
		)
	}

	if next == PickedUp && o.status == PickedUp && progress < o.progress {
		return errs.NewValueIsInvalidErrorWithCause(
			"progress is invalid",
			fmt.Errorf("%v is lower than current progress %v", progress, o.progress),
		)
	}

	if err := next.ValidateCanHaveCourierPosition(position != nil); err != nil {
		return err
	}

	if position != nil {
		if err := position.Validate(); err != nil {
			return err
		}
		pos := *position
		o.courierPosition = &pos
	}

	o.status = next
	o.progress = progress
	return nil
}

// AssignCourier records the courier carrying the order.
// Assignment is allowed on any non-terminal order; the simulator only does it
// at the Preparing -> PickedUp edge.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsTerminal, o.status)
	}

	o.courierID = &courierID
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vendor", err)
	}
	o.vendorID = id
	return nil
}

func (o *Order) setOrigin(origin kernel.Location) error {
	if err := origin.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("origin", err)
	}
	o.origin = origin
	return nil
}

func (o *Order) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination", err)
	}
	o.destination = destination
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setProgress(progress float64) error {
	if err := validateProgress(progress); err != nil {
		return err
	}
	o.progress = progress
	return nil
}

func validateProgress(progress float64) error {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return errs.NewValueIsOutOfRangeError("progress", progress, 0, 1)
	}
	return nil
}
