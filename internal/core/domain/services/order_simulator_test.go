package services_test

import (
	"math"
	"testing"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/services"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	vendor   = kernel.MustNewLocation(34.0, -118.4)
	customer = kernel.MustNewLocation(34.02, -118.45)
)

func stateOf(status order.Status, progress float64) services.SimulationState {
	return services.SimulationState{
		Status:      status,
		Progress:    progress,
		Origin:      vendor,
		Destination: customer,
	}
}

func mustSimulator(t *testing.T, step float64) services.OrderSimulator {
	t.Helper()
	sim, err := services.NewOrderSimulator(step)
	require.NoError(t, err)
	return sim
}

func TestNewOrderSimulator(t *testing.T) {
	t.Run("should accept steps within (0,1]", func(t *testing.T) {
		for _, step := range []float64{0.01, 0.05, 0.5, 1} {
			sim, err := services.NewOrderSimulator(step)

			require.NoError(t, err)
			assert.InDelta(t, step, sim.Step(), 0)
		}
	})

	t.Run("should reject steps outside (0,1]", func(t *testing.T) {
		for _, step := range []float64{0, -0.1, 1.01, math.NaN()} {
			_, err := services.NewOrderSimulator(step)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("zero value uses default step", func(t *testing.T) {
		var sim services.OrderSimulator

		assert.InDelta(t, services.DefaultProgressStep, sim.Step(), 0)
		assert.InDelta(t, services.DefaultProgressStep, services.NewDefaultOrderSimulator().Step(), 0)
	})
}

func TestOrderSimulator_Advance_StatusSequence(t *testing.T) {
	sim := services.NewDefaultOrderSimulator()

	t.Run("pending becomes confirmed without position", func(t *testing.T) {
		got, err := sim.Advance(stateOf(order.Pending, 0))

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, got.Status)
		assert.Zero(t, got.Progress)
		assert.Nil(t, got.CourierPosition)
		assert.True(t, got.StatusChanged)
	})

	t.Run("confirmed becomes preparing without position", func(t *testing.T) {
		got, err := sim.Advance(stateOf(order.Confirmed, 0))

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, got.Status)
		assert.Zero(t, got.Progress)
		assert.Nil(t, got.CourierPosition)
		assert.True(t, got.StatusChanged)
	})

	t.Run("preparing becomes picked up at the vendor", func(t *testing.T) {
		got, err := sim.Advance(stateOf(order.Preparing, 0))

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, got.Status)
		assert.Zero(t, got.Progress)
		require.NotNil(t, got.CourierPosition)
		assert.Equal(t, vendor, *got.CourierPosition)
		assert.True(t, got.StatusChanged)
		assert.True(t, got.IsPickup(order.Preparing))
	})

	t.Run("progress is ignored before pickup", func(t *testing.T) {
		got, err := sim.Advance(stateOf(order.Pending, 0.7))

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, got.Status)
		assert.Zero(t, got.Progress)
	})
}

func TestOrderSimulator_Advance_Transit(t *testing.T) {
	t.Run("half way moves by one step along the line", func(t *testing.T) {
		sim := services.NewDefaultOrderSimulator()

		got, err := sim.Advance(stateOf(order.PickedUp, 0.5))

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, got.Status)
		assert.InDelta(t, 0.55, got.Progress, 1e-9)
		require.NotNil(t, got.CourierPosition)
		assert.InDelta(t, 34.011, got.CourierPosition.Lat(), 1e-9)
		assert.InDelta(t, -118.4275, got.CourierPosition.Lng(), 1e-9)
		assert.False(t, got.StatusChanged)
		assert.False(t, got.IsPickup(order.PickedUp))
	})

	// Delivery needs progress + step to reach 1, so 0.9 with step 0.05 is
	// not yet delivered; it takes one more tick.
	t.Run("0.9 plus 0.05 stays in transit and delivers on the following tick", func(t *testing.T) {
		sim := services.NewDefaultOrderSimulator()

		got, err := sim.Advance(stateOf(order.PickedUp, 0.9))

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, got.Status)
		assert.InDelta(t, 0.95, got.Progress, 1e-9)

		got, err = sim.Advance(stateOf(order.PickedUp, got.Progress))

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status)
		assert.InDelta(t, 1.0, got.Progress, 0)
	})

	t.Run("reaching the finish line delivers at destination", func(t *testing.T) {
		sim := mustSimulator(t, 0.1)

		got, err := sim.Advance(stateOf(order.PickedUp, 0.9))

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status)
		assert.InDelta(t, 1.0, got.Progress, 0)
		require.NotNil(t, got.CourierPosition)
		assert.Equal(t, customer, *got.CourierPosition)
		assert.True(t, got.StatusChanged)
	})

	t.Run("last default step delivers", func(t *testing.T) {
		sim := services.NewDefaultOrderSimulator()

		got, err := sim.Advance(stateOf(order.PickedUp, 0.95))

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status)
		assert.InDelta(t, 1.0, got.Progress, 0)
		assert.Equal(t, customer, *got.CourierPosition)
	})

	t.Run("overshoot is clamped to 1", func(t *testing.T) {
		sim := mustSimulator(t, 0.3)

		got, err := sim.Advance(stateOf(order.PickedUp, 0.8))

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status)
		assert.InDelta(t, 1.0, got.Progress, 0)
	})

	t.Run("full progress in transit delivers", func(t *testing.T) {
		sim := services.NewDefaultOrderSimulator()

		got, err := sim.Advance(stateOf(order.PickedUp, 1))

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status)
	})
}

func TestOrderSimulator_Advance_Terminal(t *testing.T) {
	sim := services.NewDefaultOrderSimulator()

	t.Run("delivered is a no-op", func(t *testing.T) {
		dest := customer
		state := stateOf(order.Delivered, 1)
		state.CourierPosition = &dest

		got, err := sim.Advance(state)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, got.Status)
		assert.InDelta(t, 1.0, got.Progress, 0)
		require.NotNil(t, got.CourierPosition)
		assert.Equal(t, customer, *got.CourierPosition)
		assert.False(t, got.StatusChanged)
	})

	t.Run("cancelled is a no-op", func(t *testing.T) {
		got, err := sim.Advance(stateOf(order.Cancelled, 0))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, got.Status)
		assert.Nil(t, got.CourierPosition)
		assert.False(t, got.StatusChanged)
	})

	t.Run("terminal orders need no locations", func(t *testing.T) {
		got, err := sim.Advance(services.SimulationState{Status: order.Cancelled})

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, got.Status)
	})

	t.Run("returned position is a copy", func(t *testing.T) {
		dest := customer
		state := stateOf(order.Delivered, 1)
		state.CourierPosition = &dest

		got, err := sim.Advance(state)
		require.NoError(t, err)
		*got.CourierPosition = vendor

		assert.Equal(t, customer, dest)
	})
}

func TestOrderSimulator_Advance_Preconditions(t *testing.T) {
	sim := services.NewDefaultOrderSimulator()

	tests := []struct {
		name  string
		state services.SimulationState
	}{
		{name: "unknown status", state: stateOf(order.Unknown, 0)},
		{name: "status out of range", state: stateOf(order.Status(42), 0)},
		{name: "progress above 1", state: stateOf(order.PickedUp, 1.5)},
		{name: "negative progress", state: stateOf(order.PickedUp, -0.1)},
		{name: "NaN progress", state: stateOf(order.PickedUp, math.NaN())},
		{name: "missing origin", state: services.SimulationState{Status: order.Pending, Destination: customer}},
		{name: "missing destination", state: services.SimulationState{Status: order.Preparing, Origin: vendor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sim.Advance(tt.state)

			require.ErrorIs(t, err, services.ErrPreconditionViolation)
			assert.Zero(t, got)
		})
	}
}

func TestOrderSimulator_Advance_Lifecycle(t *testing.T) {
	steps := []float64{services.DefaultProgressStep, 0.1, 0.3, 1}

	for _, step := range steps {
		sim := mustSimulator(t, step)

		state := stateOf(order.Pending, 0)
		ticks := 0
		statuses := []order.Status{order.Pending}
		limit := 5 + int(math.Ceil(1/step))

		for !state.Status.IsTerminal() {
			got, err := sim.Advance(state)
			require.NoError(t, err)
			ticks++
			require.LessOrEqual(t, ticks, limit, "step %v did not deliver in time", step)

			if got.Status == order.PickedUp && state.Status == order.PickedUp {
				assert.GreaterOrEqual(t, got.Progress, state.Progress, "progress must not decrease")
			}

			if got.CourierPosition != nil {
				assertOnSegment(t, *got.CourierPosition)
			}

			if got.StatusChanged {
				statuses = append(statuses, got.Status)
			}

			state.Status = got.Status
			state.Progress = got.Progress
			state.CourierPosition = got.CourierPosition
		}

		assert.Equal(t, []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.PickedUp, order.Delivered,
		}, statuses, "step %v", step)
		assert.Equal(t, sim.TicksToDeliver(), ticks, "step %v", step)
		assert.Equal(t, customer, *state.CourierPosition)

		// Further ticks never move a delivered order.
		again, err := sim.Advance(state)
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, again.Status)
		assert.False(t, again.StatusChanged)
	}
}

func TestOrderSimulator_TicksToDeliver(t *testing.T) {
	assert.Equal(t, 23, services.NewDefaultOrderSimulator().TicksToDeliver())
	assert.Equal(t, 13, mustSimulator(t, 0.1).TicksToDeliver())
	assert.Equal(t, 4, mustSimulator(t, 1).TicksToDeliver())
	assert.Equal(t, 7, mustSimulator(t, 0.3).TicksToDeliver())
}

func TestOrderSimulator_Advance_IsDeterministic(t *testing.T) {
	sim := services.NewDefaultOrderSimulator()
	state := stateOf(order.PickedUp, 0.35)

	first, err := sim.Advance(state)
	require.NoError(t, err)
	second, err := sim.Advance(state)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStateOf(t *testing.T) {
	pos := kernel.MustNewLocation(34.01, -118.425)
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), vendor, customer, order.PickedUp, 0.5, &pos, nil)
	require.NoError(t, err)

	state := services.StateOf(o)

	assert.Equal(t, order.PickedUp, state.Status)
	assert.InDelta(t, 0.5, state.Progress, 0)
	assert.Equal(t, vendor, state.Origin)
	assert.Equal(t, customer, state.Destination)
	assert.Equal(t, pos, *state.CourierPosition)
}

func assertOnSegment(t *testing.T, loc kernel.Location) {
	t.Helper()
	const tolerance = 1e-9

	assert.GreaterOrEqual(t, loc.Lat(), math.Min(vendor.Lat(), customer.Lat())-tolerance)
	assert.LessOrEqual(t, loc.Lat(), math.Max(vendor.Lat(), customer.Lat())+tolerance)
	assert.GreaterOrEqual(t, loc.Lng(), math.Min(vendor.Lng(), customer.Lng())-tolerance)
	assert.LessOrEqual(t, loc.Lng(), math.Max(vendor.Lng(), customer.Lng())+tolerance)
}
