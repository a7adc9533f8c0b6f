// Package notification provides the user-facing record emitted once for every
// status transition produced by the simulator.
package notification

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

// TypeOrder is the notification type of every order status notification.
const TypeOrder = "order"

// ErrNotificationIsNotConstructed is returned when a Notification was not created via its constructor.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewOrderStatusNotification constructor")

type template struct {
	title   string
	message string
}

func getTemplates() map[order.Status]template {
	//nolint:exhaustive // pending and cancelled are never reached by the simulator
	return map[order.Status]template{
		order.Confirmed: {title: "Order Confirmed", message: "The vendor has confirmed your order."},
		order.Preparing: {title: "Order Preparing", message: "Your order is being prepared."},
		order.PickedUp:  {title: "Out for Delivery", message: "A courier has picked up your order and is on the way."},
		order.Delivered: {title: "Order Delivered", message: "Your order has been delivered. Enjoy!"},
	}
}

// Notification is an immutable message addressed to the owner of an order.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	orderID   kernel.UUID
	kind      string
	title     string
	message   string
	createdAt time.Time

	isConstructed bool
}

// NewOrderStatusNotification builds the notification for an order that has just
// entered status. Only statuses the simulator can produce have a template;
// any other status is rejected.
//
// Example:
//
//	n, err := notification.NewOrderStatusNotification(o.CustomerID(), o.ID(), order.PickedUp, time.Now())
//	// n.Title() == "Out for Delivery"
func NewOrderStatusNotification(
	userID kernel.UUID,
	orderID kernel.UUID,
	status order.Status,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		validateID("user", userID),
		validateID("order", orderID),
	); err != nil {
		return nil, err
	}

	tpl, ok := getTemplates()[status]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no notification template", status),
		)
	}

	return &Notification{
		id:            kernel.NewUUID(),
		userID:        userID,
		orderID:       orderID,
		kind:          TypeOrder,
		title:         tpl.title,
		message:       tpl.message,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// HasTemplate reports whether entering status produces a notification.
func HasTemplate(status order.Status) bool {
	_, ok := getTemplates()[status]
	return ok
}

// Validate ensures the Notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) UserID() kernel.UUID  { return n.userID }
func (n *Notification) OrderID() kernel.UUID { return n.orderID }
func (n *Notification) Type() string         { return n.kind }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

func validateID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
