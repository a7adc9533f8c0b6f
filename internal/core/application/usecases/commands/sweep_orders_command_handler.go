package commands

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// SweepReport summarizes one sweep tick.
type SweepReport struct {
	// Processed counts the open orders visited.
	Processed int
	// Advanced counts the orders whose step was committed.
	Advanced int
	// Failed counts the orders skipped because of an error.
	Failed int
}

// SweepOrdersCommandHandler is the sweep-mode driver. On each call it loads
// every open order and advances each one step in its own transaction, so one
// bad order never blocks the others.
//
// Errors of individual orders (persistence failures, corrupt rows, concurrent
// updates by the pull-mode driver) are logged and counted in the report. Only
// failing to load the open orders fails the whole call.
//
// Example:
//
//	handler := NewSweepOrdersCommandHandler(uowFactory, simulator, publisher, logger)
//	report, err := handler.Handle(ctx, NewSweepOrdersCommand())
//	if err != nil {
//	    return fmt.Errorf("sweep failed: %w", err)
//	}
//	log.Printf("advanced %d of %d orders", report.Advanced, report.Processed)
type SweepOrdersCommandHandler struct {
	uowFactory UoWFactory
	advancer   orderAdvancer
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewSweepOrdersCommandHandler creates the sweep-mode handler.
func NewSweepOrdersCommandHandler(
	uowFactory UoWFactory,
	simulator services.OrderSimulator,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) SweepOrdersCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "SweepOrdersCommandHandler")
	return SweepOrdersCommandHandler{
		uowFactory: uowFactory,
		advancer:   newOrderAdvancer(simulator, logger),
		publisher:  publisher,
		logger:     logger,
	}
}

// WithPublishTimeout returns a copy of the handler whose event publishing
// gives up after timeout. Non-positive values keep DefaultPublishTimeout.
func (h SweepOrdersCommandHandler) WithPublishTimeout(timeout time.Duration) SweepOrdersCommandHandler {
	h.advancer = h.advancer.withPublishTimeout(timeout)
	return h
}

// Handle runs one sweep tick. A cancelled context stops the sweep between
// orders and returns the partial report with the context error.
func (h SweepOrdersCommandHandler) Handle(ctx context.Context, cmd SweepOrdersCommand) (SweepReport, error) {
	var report SweepReport

	if err := cmd.Validate(); err != nil {
		return report, err
	}

	orders, err := h.loadOpenOrders(ctx)
	if err != nil {
		return report, err
	}

	for _, o := range orders {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		report.Processed++

		advanced, advanceErr := h.advanceOne(ctx, o)
		if advanceErr != nil {
			report.Failed++
			h.logger.ErrorContext(ctx, "failed to advance order",
				"order_id", o.ID().String(),
				"status", o.Status().String(),
				"error", advanceErr,
			)
			continue
		}

		if advanced {
			report.Advanced++
		}
	}

	return report, nil
}

func (h SweepOrdersCommandHandler) loadOpenOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllOpen(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h SweepOrdersCommandHandler) advanceOne(ctx context.Context, o *order.Order) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	step, written, err := h.advancer.advance(ctx, uow, o)
	if err != nil || !written {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.advancer.publish(ctx, h.publisher, o, step)
	return true, nil
}
