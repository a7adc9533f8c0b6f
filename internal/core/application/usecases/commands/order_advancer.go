package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/notification"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// ErrNoFreeCouriersFound is logged when an order is picked up while every courier is busy.
// It never fails the step: the order travels without an assigned courier.
var ErrNoFreeCouriersFound = errors.New("no free couriers found")

// DefaultPublishTimeout bounds how long a step waits for event subscribers.
// A stalled broker or socket must not hold up the drivers.
const DefaultPublishTimeout = 2 * time.Second

// orderAdvancer is the part of a simulation step shared by both drivers:
// simulate, attach a courier at pickup, write the order conditionally and
// record the notification. It runs inside a transaction owned by the caller.
type orderAdvancer struct {
	simulator  services.OrderSimulator
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
	now        func() time.Time

	publishTimeout time.Duration
}

func newOrderAdvancer(simulator services.OrderSimulator, logger *slog.Logger) orderAdvancer {
	if logger == nil {
		logger = slog.Default()
	}
	return orderAdvancer{
		simulator:      simulator,
		dispatcher:     services.NewOrderDispatcher(),
		logger:         logger,
		now:            time.Now,
		publishTimeout: DefaultPublishTimeout,
	}
}

// advance moves o one step forward and stages the writes on uow.
// Terminal orders are left untouched and reported with written == false.
func (a orderAdvancer) advance(ctx context.Context, uow UoW, o *order.Order) (services.SimulationStep, bool, error) {
	previous := o.Status()
	expected := o.Revision()

	step, err := a.simulator.Advance(services.StateOf(o))
	if err != nil {
		return services.SimulationStep{}, false, err
	}

	if previous.IsTerminal() {
		return step, false, nil
	}

	if step.IsPickup(previous) {
		a.assignCourier(ctx, uow, o)
	}

	if err = o.Apply(step.Status, step.Progress, step.CourierPosition); err != nil {
		return services.SimulationStep{}, false, err
	}

	if err = uow.OrderRepository().UpdateProgress(ctx, o, expected); err != nil {
		return services.SimulationStep{}, false, err
	}

	if step.StatusChanged {
		if err = a.notify(ctx, uow, o); err != nil {
			return services.SimulationStep{}, false, err
		}
	}

	return step, true, nil
}

// assignCourier is best effort: a failed lookup or an empty pool is logged and
// the pickup proceeds unassigned.
func (a orderAdvancer) assignCourier(ctx context.Context, uow UoW, o *order.Order) {
	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		a.logger.WarnContext(ctx, "courier lookup failed, order picked up unassigned",
			"order_id", o.ID().String(), "error", err)
		return
	}

	assigned, err := a.dispatcher.Dispatch(o, couriers)
	if errors.Is(err, services.ErrCourierNotFound) {
		a.logger.InfoContext(ctx, "order picked up unassigned",
			"order_id", o.ID().String(), "reason", ErrNoFreeCouriersFound)
		return
	}
	if err != nil {
		a.logger.WarnContext(ctx, "courier dispatch failed, order picked up unassigned",
			"order_id", o.ID().String(), "error", err)
		return
	}

	if assigned != nil {
		a.logger.InfoContext(ctx, "courier assigned",
			"order_id", o.ID().String(), "courier_id", assigned.ID().String())
	}
}

func (a orderAdvancer) notify(ctx context.Context, uow UoW, o *order.Order) error {
	n, err := notification.NewOrderStatusNotification(o.CustomerID(), o.ID(), o.Status(), a.now())
	if err != nil {
		return err
	}
	return uow.NotificationRepository().Add(ctx, n)
}

func (a orderAdvancer) withPublishTimeout(timeout time.Duration) orderAdvancer {
	if timeout > 0 {
		a.publishTimeout = timeout
	}
	return a
}

// publish hands a committed step to the event publisher, waiting at most
// publishTimeout. The step is already durable, so failures are only logged.
func (a orderAdvancer) publish(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	o *order.Order,
	step services.SimulationStep,
) {
	if publisher == nil {
		return
	}
	event := ports.NewOrderEvent(o, step.StatusChanged, a.now())

	publishCtx, cancel := context.WithTimeout(ctx, a.publishTimeout)
	defer cancel()

	if err := publisher.Publish(publishCtx, event); err != nil {
		a.logger.WarnContext(ctx, "failed to publish order event",
			"order_id", o.ID().String(), "status", o.Status().String(), "error", err)
	}
}
