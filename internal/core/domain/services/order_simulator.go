package services

import (
	"errors"
	"fmt"
	"math"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"
)

const (
	// DefaultProgressStep is the fraction of the route covered per tick (20 ticks of transit).
	DefaultProgressStep = 0.05

	// progressEpsilon absorbs float accumulation so 20 steps of 0.05 reach 1.
	progressEpsilon = 1e-9
)

// ErrPreconditionViolation marks input the simulator refuses to advance:
// an unknown status, unconstructed origin or destination, or progress outside [0,1].
// It signals a bug in the caller, not a transient failure.
var ErrPreconditionViolation = errors.New("simulation precondition violated")

// SimulationState is everything the simulator needs to compute one tick.
// Progress is ignored unless Status is PickedUp.
type SimulationState struct {
	Status          order.Status
	Progress        float64
	Origin          kernel.Location
	Destination     kernel.Location
	CourierPosition *kernel.Location
}

// StateOf extracts the simulation state of an order.
func StateOf(o *order.Order) SimulationState {
	return SimulationState{
		Status:          o.Status(),
		Progress:        o.Progress(),
		Origin:          o.Origin(),
		Destination:     o.Destination(),
		CourierPosition: o.CourierPosition(),
	}
}

// SimulationStep is the result of one tick.
type SimulationStep struct {
	Status          order.Status
	Progress        float64
	CourierPosition *kernel.Location

	// StatusChanged is true when Status differs from the input status.
	StatusChanged bool
}

// IsPickup reports whether the step moved the order from Preparing into PickedUp.
func (s SimulationStep) IsPickup(previous order.Status) bool {
	return previous == order.Preparing && s.Status == order.PickedUp
}

// OrderSimulator is the order state machine. It is a pure function of its
// input: no I/O, no clock, no randomness, safe for concurrent use.
//
// Transition table (one step per Advance call):
//
//	pending    -> confirmed
//	confirmed  -> preparing
//	preparing  -> picked_up   courier at origin, progress 0
//	picked_up  -> picked_up   progress += step, courier interpolated
//	picked_up  -> delivered   once progress + step >= 1, courier at destination, progress 1
//	delivered, cancelled      no-op
//
// The courier position is a straight-line interpolation between origin and
// destination; it does not follow roads.
//
// Delivery happens on the tick where the accumulated progress would reach 1.
// An order in transit at 0.9 with a step of 0.05 therefore needs two more
// ticks: 0.95 stays in transit, the next tick delivers.
//
// Both drivers share one simulator: the sweep job calls Advance for every open
// order on each tick, the advance endpoint calls it for one order per request.
//
// Example:
//
//	simulator, err := NewOrderSimulator(0.05)
//	if err != nil {
//	    return err
//	}
//	step, err := simulator.Advance(StateOf(o))
type OrderSimulator struct {
	step float64
}

// NewOrderSimulator creates a simulator covering step of the route per tick.
//
// Parameters:
//   - step: the fraction of the route covered per tick, within (0, 1]
//
// Returns:
//   - OrderSimulator: a ready simulator
//   - error: errs.ErrValueIsOutOfRange if step is NaN, not positive or above 1
func NewOrderSimulator(step float64) (OrderSimulator, error) {
	if math.IsNaN(step) || step <= 0 || step > 1 {
		return OrderSimulator{}, errs.NewValueIsOutOfRangeError("step", step, "(0", "1]")
	}
	return OrderSimulator{step: step}, nil
}

// NewDefaultOrderSimulator creates a simulator using DefaultProgressStep.
func NewDefaultOrderSimulator() OrderSimulator {
	return OrderSimulator{step: DefaultProgressStep}
}

// Step returns the fraction of the route covered per tick.
func (s OrderSimulator) Step() float64 {
	if s.step == 0 {
		return DefaultProgressStep
	}
	return s.step
}

// TicksToDeliver returns how many Advance calls take a pending order to delivered.
func (s OrderSimulator) TicksToDeliver() int {
	return 3 + int(math.Ceil(1/s.Step()-progressEpsilon))
}

// Advance computes the next state of an order.
//
// Business Rules:
//   - Terminal input is a no-op: the returned step echoes the input with StatusChanged false
//   - Entering PickedUp places the courier at the origin with progress 0
//   - While PickedUp, progress grows by Step and never exceeds 1
//   - Delivered places the courier exactly at the destination
//
// Parameters:
//   - state: the order snapshot, usually built with StateOf
//
// Returns:
//   - SimulationStep: the next status, progress and courier position
//   - error: ErrPreconditionViolation for an unknown status, unconstructed
//     origin or destination, or progress outside [0,1]
func (s OrderSimulator) Advance(state SimulationState) (SimulationStep, error) {
	if err := validateState(state); err != nil {
		return SimulationStep{}, fmt.Errorf("%w: %w", ErrPreconditionViolation, err)
	}

	switch state.Status {
	case order.Delivered, order.Cancelled:
		return SimulationStep{
			Status:          state.Status,
			Progress:        state.Progress,
			CourierPosition: copyLocation(state.CourierPosition),
		}, nil

	case order.Pending, order.Confirmed:
		next, err := state.Status.Next()
		if err != nil {
			return SimulationStep{}, err
		}
		return SimulationStep{Status: next, StatusChanged: true}, nil

	case order.Preparing:
		origin := state.Origin
		return SimulationStep{
			Status:          order.PickedUp,
			Progress:        0,
			CourierPosition: &origin,
			StatusChanged:   true,
		}, nil

	case order.PickedUp:
		return s.travel(state)
	}

	return SimulationStep{}, fmt.Errorf("%w: %s", ErrPreconditionViolation, state.Status)
}

func (s OrderSimulator) travel(state SimulationState) (SimulationStep, error) {
	progress := state.Progress + s.Step()

	if progress >= 1-progressEpsilon {
		destination := state.Destination
		return SimulationStep{
			Status:          order.Delivered,
			Progress:        1,
			CourierPosition: &destination,
			StatusChanged:   true,
		}, nil
	}

	position, err := state.Origin.Interpolate(state.Destination, progress)
	if err != nil {
		return SimulationStep{}, fmt.Errorf("%w: %w", ErrPreconditionViolation, err)
	}

	return SimulationStep{
		Status:          order.PickedUp,
		Progress:        progress,
		CourierPosition: &position,
	}, nil
}

func validateState(state SimulationState) error {
	if err := state.Status.Validate(); err != nil {
		return err
	}

	if state.Status.IsTerminal() {
		return nil
	}

	if err := errors.Join(
		requireLocation("origin", state.Origin),
		requireLocation("destination", state.Destination),
	); err != nil {
		return err
	}

	if state.Status == order.PickedUp {
		if math.IsNaN(state.Progress) || state.Progress < 0 || state.Progress > 1 {
			return errs.NewValueIsOutOfRangeError("progress", state.Progress, 0, 1)
		}
	}

	return nil
}

func requireLocation(param string, loc kernel.Location) error {
	if err := loc.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

func copyLocation(loc *kernel.Location) *kernel.Location {
	if loc == nil {
		return nil
	}
	c := *loc
	return &c
}
