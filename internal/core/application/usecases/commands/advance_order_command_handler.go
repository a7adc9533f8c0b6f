package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// snapshotTolerance is how far the caller's coordinates and progress may
// drift from the stored values (JSON round trips) and still count as current.
const snapshotTolerance = 1e-9

// ErrStaleOrderState is returned when the caller's snapshot of the order does
// not match the stored order, typically because the sweep advanced it in between.
var ErrStaleOrderState = errors.New("order state is stale")

// AdvanceOrderResult is what the caller needs to render the next frame.
// CourierPosition is nil before pickup.
type AdvanceOrderResult struct {
	Status          order.Status
	CourierPosition *kernel.Location
	Progress        float64
	StatusChanged   bool
}

// AdvanceOrderCommandHandler is the pull-mode driver: it advances exactly one
// order by one step per call.
//
// The call is not idempotent. Every successful call moves the order forward,
// so a client polling twice with the same snapshot gets ErrStaleOrderState the
// second time. Persistence errors are returned as is, without retry.
//
// Example:
//
//	handler := NewAdvanceOrderCommandHandler(uowFactory, simulator, publisher, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrStaleOrderState), errors.Is(err, ports.ErrConcurrentUpdate):
//	    // reload the order and try again
//	case errors.Is(err, services.ErrPreconditionViolation):
//	    // the stored order is corrupt
//	}
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	advancer   orderAdvancer
	publisher  ports.OrderEventPublisher
}

// NewAdvanceOrderCommandHandler creates the pull-mode handler.
func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	simulator services.OrderSimulator,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AdvanceOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		advancer:   newOrderAdvancer(simulator, logger.With("component", "AdvanceOrderCommandHandler")),
		publisher:  publisher,
	}
}

// WithPublishTimeout returns a copy of the handler whose event publishing
// gives up after timeout. Non-positive values keep DefaultPublishTimeout.
func (h AdvanceOrderCommandHandler) WithPublishTimeout(timeout time.Duration) AdvanceOrderCommandHandler {
	h.advancer = h.advancer.withPublishTimeout(timeout)
	return h
}

// Handle loads the order, checks the caller's snapshot against it, applies one
// step and commits the order update together with its notification. The change
// is published after the commit.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (AdvanceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderResult{}, err
	}

	if err = checkSnapshot(o, cmd); err != nil {
		return AdvanceOrderResult{}, err
	}

	step, written, err := h.advancer.advance(ctx, uow, o)
	if err != nil {
		return AdvanceOrderResult{}, err
	}

	if written {
		if err = uow.Commit(ctx); err != nil {
			return AdvanceOrderResult{}, err
		}
		h.advancer.publish(ctx, h.publisher, o, step)
	}

	return AdvanceOrderResult{
		Status:          step.Status,
		CourierPosition: step.CourierPosition,
		Progress:        step.Progress,
		StatusChanged:   step.StatusChanged,
	}, nil
}

// checkSnapshot compares what the caller believes with what is stored.
// Progress is only compared while the order is picked up.
func checkSnapshot(o *order.Order, cmd AdvanceOrderCommand) error {
	if o.Status() != cmd.Status() {
		return fmt.Errorf("%w: order is %s, caller sent %s", ErrStaleOrderState, o.Status(), cmd.Status())
	}

	if o.Status() == order.PickedUp && math.Abs(o.Progress()-cmd.Progress()) > snapshotTolerance {
		return fmt.Errorf("%w: order progress is %v, caller sent %v", ErrStaleOrderState, o.Progress(), cmd.Progress())
	}

	if !sameLocation(o.Origin(), cmd.Origin()) {
		return fmt.Errorf("%w: origin %s does not match %s", ErrStaleOrderState, cmd.Origin(), o.Origin())
	}

	if !sameLocation(o.Destination(), cmd.Destination()) {
		return fmt.Errorf("%w: destination %s does not match %s", ErrStaleOrderState, cmd.Destination(), o.Destination())
	}

	return nil
}

func sameLocation(a, b kernel.Location) bool {
	return math.Abs(a.Lat()-b.Lat()) <= snapshotTolerance && math.Abs(a.Lng()-b.Lng()) <= snapshotTolerance
}
