package commands

import (
	"errors"
	"math"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand asks for one simulation step of a single order (pull mode).
// It carries the caller's view of the order; the handler refuses to advance
// when that view no longer matches what is stored.
//
// Example:
//
//	cmd, err := NewAdvanceOrderCommand(orderID, order.PickedUp, vendor, home, 0.5)
//	if err != nil {
//	    return fmt.Errorf("invalid advance request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	status      order.Status
	origin      kernel.Location
	destination kernel.Location
	progress    float64

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand validates the caller's snapshot of an order.
// progress must be within [0,1]; it only matters while the order is picked up.
func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	status order.Status,
	origin kernel.Location,
	destination kernel.Location,
	progress float64,
) (AdvanceOrderCommand, error) {
	command := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setStatus(status),
		command.setOrigin(origin),
		command.setDestination(destination),
		command.setProgress(progress),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) Status() order.Status {
	return c.status
}

func (c AdvanceOrderCommand) Origin() kernel.Location {
	return c.origin
}

func (c AdvanceOrderCommand) Destination() kernel.Location {
	return c.destination
}

func (c AdvanceOrderCommand) Progress() float64 {
	return c.progress
}

func (c *AdvanceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AdvanceOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *AdvanceOrderCommand) setOrigin(origin kernel.Location) error {
	if err := origin.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("origin", err)
	}
	c.origin = origin
	return nil
}

func (c *AdvanceOrderCommand) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination", err)
	}
	c.destination = destination
	return nil
}

func (c *AdvanceOrderCommand) setProgress(progress float64) error {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return errs.NewValueIsOutOfRangeError("progress", progress, 0, 1)
	}
	c.progress = progress
	return nil
}
