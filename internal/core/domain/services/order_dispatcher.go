package services

import (
	"errors"
	"fmt"

	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// ErrCourierNotFound is returned when none of the offered couriers is available.
var ErrCourierNotFound = errors.New("courier not found")

// OrderDispatcher attaches a courier to an order at the moment it is picked up.
//
// Business rules:
//   - Orders must be valid and about to be picked up (Preparing) or already in transit
//   - Orders that already carry a courier keep it
//   - Only available couriers are considered; the first one in the given order wins,
//     so callers control preference through the ordering of couriers
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	c, err := dispatcher.Dispatch(o, couriers)
//	if errors.Is(err, services.ErrCourierNotFound) {
//	    // the order is picked up unassigned
//	}
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch assigns the first available courier to the order and returns it.
// When the order is already assigned, the assignment is left untouched and
// (nil, nil) is returned.
func (d OrderDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.Status() != order.Preparing && o.Status() != order.PickedUp {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot dispatch a courier to a %s order", o.Status()),
		)
	}

	if o.Courier() != nil {
		return nil, nil
	}

	chosen, err := d.findAvailableCourier(couriers)
	if err != nil {
		return nil, err
	}

	if err = o.AssignCourier(chosen.ID()); err != nil {
		return nil, err
	}

	return chosen, nil
}

func (d OrderDispatcher) findAvailableCourier(couriers []*courier.Courier) (*courier.Courier, error) {
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if c.IsAvailable() {
			return c, nil
		}
	}

	return nil, ErrCourierNotFound
}
