package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func a320Spec() AircraftSpec {
	return AircraftSpec{
		Model:              "A320neo",
		Registration:       "D-AIAB",
		EngineType:         EngineJet,
		EmptyWeightKg:      43000,
		MaxTakeoffWeightKg: 79000,
	}
}

func newA320(t *testing.T, ids *IDAllocator) *PassengerAircraft {
	t.Helper()
	ac, err := NewPassengerAircraft(ids, a320Spec(), 30, 6, 19000, 24)
	require.NoError(t, err)
	return ac
}

func newFreighter(t *testing.T, ids *IDAllocator) *CargoAircraft {
	t.Helper()
	ac, err := NewCargoAircraft(ids, AircraftSpec{
		Model:              "B747F",
		Registration:       "D-CARG",
		EngineType:         EngineJet,
		EmptyWeightKg:      180000,
		MaxTakeoffWeightKg: 396000,
	}, 700, 130000.7, 183000)
	require.NoError(t, err)
	return ac
}

func TestNewAircraft_InvalidWeights(t *testing.T) {
	tests := []struct {
		name  string
		empty float64
		mtow  float64
	}{
		{name: "equal weights", empty: 50000, mtow: 50000},
		{name: "empty heavier", empty: 60000, mtow: 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := NewIDAllocator()
			spec := a320Spec()
			spec.EmptyWeightKg = tt.empty
			spec.MaxTakeoffWeightKg = tt.mtow

			pax, err := NewPassengerAircraft(ids, spec, 30, 6, 19000, 24)
			assert.ErrorIs(t, err, ErrInvalidAircraftConfiguration)
			assert.Nil(t, pax)

			cargo, err := NewCargoAircraft(ids, spec, 700, 130000, 183000)
			assert.ErrorIs(t, err, ErrInvalidAircraftConfiguration)
			assert.Nil(t, cargo)
		})
	}
}

func TestPassengerAircraft(t *testing.T) {
	ids := NewIDAllocator()
	ac := newA320(t, ids)

	assert.Equal(t, 180, ac.Capacity())
	assert.InDelta(t, 19000.0/24*100, ac.RangeKm(), 1e-9)
	assert.Equal(t, "D-AIAB (A320neo)", ac.String())
	assert.True(t, IsPassenger(ac))

	noBurn, err := NewPassengerAircraft(ids, a320Spec(), 10, 4, 5000, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, noBurn.RangeKm())
}

func TestCargoAircraft(t *testing.T) {
	ids := NewIDAllocator()
	ac := newFreighter(t, ids)

	assert.Equal(t, 130000, ac.Capacity())
	assert.InDelta(t, 183000.0/5*0.85, ac.RangeKm(), 1e-9)
	assert.Equal(t, DefaultEfficiencyFactor, ac.EfficiencyFactor)
	assert.False(t, IsPassenger(ac))

	tuned, err := NewCargoAircraftWithFactor(ids, a320Spec(), 100, 20000, 10000, 1.0)
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, tuned.RangeKm(), 1e-9)
}

func TestIDAllocator_Monotonic(t *testing.T) {
	ids := NewIDAllocator()
	first := newA320(t, ids)
	second := newFreighter(t, ids)
	assert.Equal(t, 1, first.ID())
	assert.Equal(t, 2, second.ID())

	// A rejected aircraft consumes no id.
	spec := a320Spec()
	spec.EmptyWeightKg = spec.MaxTakeoffWeightKg
	_, err := NewPassengerAircraft(ids, spec, 1, 1, 1, 1)
	require.Error(t, err)
	assert.Equal(t, 3, newA320(t, ids).ID())

	g1 := NewGate(ids, "A1", 60)
	g2 := NewGate(ids, "A1", 52)
	assert.Equal(t, 1, g1.ID())
	assert.Equal(t, 2, g2.ID())

	other := NewIDAllocator()
	assert.Equal(t, 1, NewGate(other, "B1", 40).ID())
}

func TestGate_AssignRelease(t *testing.T) {
	g := NewGate(NewIDAllocator(), "A1", 60)
	assert.True(t, g.IsFree())

	require.NoError(t, g.Assign(7))
	holder, ok := g.OccupiedBy()
	assert.True(t, ok)
	assert.Equal(t, 7, holder)

	err := g.Assign(8)
	assert.ErrorIs(t, err, ErrGateOccupied)
	holder, _ = g.OccupiedBy()
	assert.Equal(t, 7, holder)

	g.Release()
	assert.True(t, g.IsFree())
	g.Release()
	assert.True(t, g.IsFree())
}

func TestRunway_OccupyRelease(t *testing.T) {
	r := NewRunway(NewIDAllocator(), "09L/27R", 3800)
	assert.True(t, r.IsAvailable())
	assert.Equal(t, RunwayFree, r.Status())

	require.NoError(t, r.Occupy(3))
	assert.Equal(t, RunwayInUse, r.Status())
	current, ok := r.CurrentFlight()
	assert.True(t, ok)
	assert.Equal(t, 3, current)

	assert.ErrorIs(t, r.Occupy(4), ErrRunwayUnavailable)
	assert.ErrorIs(t, r.EnterMaintenance(), ErrRunwayUnavailable)

	r.Release()
	r.Release()
	assert.Equal(t, RunwayFree, r.Status())
	_, ok = r.CurrentFlight()
	assert.False(t, ok)
}

func TestRunway_Maintenance(t *testing.T) {
	r := NewRunway(NewIDAllocator(), "09R/27L", 3650)
	require.NoError(t, r.EnterMaintenance())
	assert.False(t, r.IsAvailable())
	assert.ErrorIs(t, r.Occupy(1), ErrRunwayUnavailable)

	// Release always returns the runway to service.
	r.Release()
	assert.Equal(t, RunwayFree, r.Status())
	assert.True(t, r.IsAvailable())
}

func TestFlight_TakeLeaveGate(t *testing.T) {
	ids := NewIDAllocator()
	f := NewFlight(ids, FlightSpec{Number: "AB1"}, newA320(t, ids))
	a1 := NewGate(ids, "A1", 60)
	a2 := NewGate(ids, "A2", 52)

	require.NoError(t, f.TakeGate(a1))
	assert.ErrorIs(t, f.TakeGate(a2), ErrGateAlreadyHeld)
	assert.True(t, a2.IsFree())
	gateID, _ := f.GateID()
	assert.Equal(t, a1.ID(), gateID)

	// Leaving a gate the flight does not hold changes nothing.
	assert.False(t, f.LeaveGate(a2))
	assert.False(t, a1.IsFree())

	assert.True(t, f.LeaveGate(a1))
	assert.True(t, a1.IsFree())
	_, held := f.GateID()
	assert.False(t, held)

	other := NewFlight(ids, FlightSpec{Number: "AB2"}, newA320(t, ids))
	require.NoError(t, other.TakeGate(a1))
	assert.ErrorIs(t, f.TakeGate(a1), ErrGateOccupied)
	_, held = f.GateID()
	assert.False(t, held)
}

func TestFlight_TakeLeaveRunway(t *testing.T) {
	ids := NewIDAllocator()
	f := NewFlight(ids, FlightSpec{Number: "AB1"}, newA320(t, ids))
	r1 := NewRunway(ids, "09L/27R", 3800)
	r2 := NewRunway(ids, "09R/27L", 3650)

	require.NoError(t, f.TakeRunway(r1))
	assert.ErrorIs(t, f.TakeRunway(r2), ErrRunwayAlreadyHeld)
	assert.True(t, r2.IsAvailable())
	current, _ := r1.CurrentFlight()
	assert.Equal(t, f.ID(), current)

	assert.False(t, f.LeaveRunway(r2))
	assert.True(t, f.LeaveRunway(r1))
	assert.Equal(t, RunwayFree, r1.Status())
	_, held := f.RunwayID()
	assert.False(t, held)
}

func TestFlight_BoardPassengers(t *testing.T) {
	ids := NewIDAllocator()
	f := NewFlight(ids, FlightSpec{Number: "AB123", Origin: "DEMO", Destination: "LHR"}, newA320(t, ids))
	f.SetStatus(StatusBoarding)
	assert.True(t, f.CanBoard())

	require.NoError(t, f.BoardPassengers(100))
	assert.Equal(t, StatusBoarding, f.Status())
	require.NoError(t, f.BoardPassengers(80))
	assert.Equal(t, StatusReady, f.Status())
	assert.Equal(t, 180, f.PassengersCheckedIn())
	assert.True(t, f.IsFullyBoarded())

	err := f.BoardPassengers(1)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 180, f.PassengersCheckedIn())
	assert.Equal(t, StatusReady, f.Status())
}

func TestFlight_BoardPassengers_Errors(t *testing.T) {
	ids := NewIDAllocator()

	t.Run("capacity exceeded", func(t *testing.T) {
		f := NewFlight(ids, FlightSpec{Number: "AB1"}, newA320(t, ids))
		require.NoError(t, f.BoardPassengers(179))
		err := f.BoardPassengers(2)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 179, f.PassengersCheckedIn())
		assert.Equal(t, StatusPlanned, f.Status())
	})

	t.Run("cargo aircraft", func(t *testing.T) {
		f := NewFlight(ids, FlightSpec{Number: "CG900"}, newFreighter(t, ids))
		assert.ErrorIs(t, f.BoardPassengers(1), ErrNonPassengerAircraft)
		assert.False(t, f.CanBoard())
	})

	t.Run("wrong status", func(t *testing.T) {
		f := NewFlight(ids, FlightSpec{Number: "AB2"}, newA320(t, ids))
		f.SetStatus(StatusTaxi)
		err := f.BoardPassengers(1)
		assert.ErrorIs(t, err, ErrInvalidState)

		var stateErr *StateError
		require.True(t, errors.As(err, &stateErr))
		assert.Equal(t, StatusTaxi, stateErr.Status)
	})
}

func TestFlight_LoadCargo(t *testing.T) {
	ids := NewIDAllocator()
	f := NewFlight(ids, FlightSpec{Number: "CG900"}, newFreighter(t, ids))

	require.NoError(t, f.LoadCargo(100000))
	assert.ErrorIs(t, f.LoadCargo(30001), ErrCapacityExceeded)
	assert.Equal(t, 100000.0, f.CargoLoadedKg())

	pax := NewFlight(ids, FlightSpec{Number: "AB1"}, newA320(t, ids))
	assert.ErrorIs(t, pax.LoadCargo(10), ErrNonCargoAircraft)
}

func TestFlightStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to FlightStatus
		want     bool
	}{
		{StatusPlanned, StatusBoarding, true},
		{StatusBoarding, StatusReady, true},
		{StatusReady, StatusTaxi, true},
		{StatusTaxi, StatusAirborne, true},
		{StatusReady, StatusAirborne, true},
		{StatusAirborne, StatusLanded, true},
		{StatusTaxi, StatusCancelled, true},
		{StatusLanded, StatusBoarding, false},
		{StatusAirborne, StatusCancelled, false},
		{StatusCancelled, StatusPlanned, false},
		{StatusPlanned, StatusTaxi, false},
		{StatusLanded, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestFlightStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusLanded.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusAirborne.IsTerminal())
	assert.False(t, StatusPlanned.IsTerminal())
}

func TestParseFlightStatus(t *testing.T) {
	s, err := ParseFlightStatus("BOARDING")
	require.NoError(t, err)
	assert.Equal(t, StatusBoarding, s)

	_, err = ParseFlightStatus("boarding")
	assert.Error(t, err)
}

func TestFlight_String(t *testing.T) {
	ids := NewIDAllocator()
	f := NewFlight(ids, FlightSpec{Number: "AB123", Origin: "DEMO", Destination: "LHR"}, newA320(t, ids))
	assert.Equal(t, "Flight AB123 DEMO->LHR (PLANNED)", f.String())
}
