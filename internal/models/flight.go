package models

import "fmt"

// FlightStatus is a step in the flight lifecycle
type FlightStatus int

const (
	StatusPlanned FlightStatus = iota
	StatusBoarding
	StatusReady
	StatusTaxi
	StatusAirborne
	StatusLanded
	StatusCancelled
)

var flightStatusNames = map[FlightStatus]string{
	StatusPlanned:   "PLANNED",
	StatusBoarding:  "BOARDING",
	StatusReady:     "READY",
	StatusTaxi:      "TAXI",
	StatusAirborne:  "AIRBORNE",
	StatusLanded:    "LANDED",
	StatusCancelled: "CANCELLED",
}

func (s FlightStatus) String() string {
	if name, ok := flightStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FlightStatus(%d)", int(s))
}

// ParseFlightStatus maps an upper-case status name back to its value
func ParseFlightStatus(name string) (FlightStatus, error) {
	for s, n := range flightStatusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown flight status: %q", name)
}

// IsTerminal reports whether no further transitions leave this status
func (s FlightStatus) IsTerminal() bool {
	return s == StatusLanded || s == StatusCancelled
}

// legalTransitions lists the transitions allowed in strict mode
var legalTransitions = map[FlightStatus][]FlightStatus{
	StatusPlanned:  {StatusBoarding, StatusReady, StatusCancelled},
	StatusBoarding: {StatusReady, StatusCancelled},
	StatusReady:    {StatusTaxi, StatusAirborne, StatusCancelled},
	StatusTaxi:     {StatusAirborne, StatusCancelled},
	StatusAirborne: {StatusLanded},
}

// CanTransition reports whether from -> to is part of the canonical lifecycle
func CanTransition(from, to FlightStatus) bool {
	if from.IsTerminal() {
		return false
	}
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// FlightSpec holds the caller-supplied fields of a flight.
// Departure and arrival are opaque labels, not parsed times.
type FlightSpec struct {
	Number           string
	Origin           string
	Destination      string
	PlannedDeparture string
	PlannedArrival   string
}

// Flight tracks a lifecycle status and the resources it currently holds.
// The aircraft reference is fixed for the flight's lifetime.
type Flight struct {
	FlightSpec

	id                  int
	aircraft            Aircraft
	status              FlightStatus
	gateID              int // 0 when none
	runwayID            int // 0 when none
	passengersCheckedIn int
	cargoLoadedKg       float64
}

// NewFlight allocates a flight id; flights start PLANNED
func NewFlight(ids *IDAllocator, spec FlightSpec, aircraft Aircraft) *Flight {
	return &Flight{
		id:         ids.NextFlight(),
		FlightSpec: spec,
		aircraft:   aircraft,
		status:     StatusPlanned,
	}
}

func (f *Flight) ID() int                  { return f.id }
func (f *Flight) Aircraft() Aircraft       { return f.aircraft }
func (f *Flight) Status() FlightStatus     { return f.status }
func (f *Flight) PassengersCheckedIn() int { return f.passengersCheckedIn }
func (f *Flight) CargoLoadedKg() float64   { return f.cargoLoadedKg }

// GateID returns the held gate id, if any
func (f *Flight) GateID() (int, bool) {
	return f.gateID, f.gateID != 0
}

// RunwayID returns the held runway id, if any
func (f *Flight) RunwayID() (int, bool) {
	return f.runwayID, f.runwayID != 0
}

// TakeGate hands g to the flight. A flight holds at most one gate, so this
// fails with ErrGateAlreadyHeld before touching g if one is already held.
func (f *Flight) TakeGate(g *Gate) error {
	if f.gateID != 0 {
		return fmt.Errorf("%w: flight %s holds gate %d", ErrGateAlreadyHeld, f.Number, f.gateID)
	}
	if err := g.Assign(f.id); err != nil {
		return err
	}
	f.gateID = g.ID()
	return nil
}

// LeaveGate frees g if it is the gate this flight holds
func (f *Flight) LeaveGate(g *Gate) bool {
	if f.gateID == 0 || f.gateID != g.ID() {
		return false
	}
	g.Release()
	f.gateID = 0
	return true
}

// TakeRunway occupies r for the flight. It fails with ErrRunwayAlreadyHeld
// if the flight is already on a runway.
func (f *Flight) TakeRunway(r *Runway) error {
	if f.runwayID != 0 {
		return fmt.Errorf("%w: flight %s holds runway %d", ErrRunwayAlreadyHeld, f.Number, f.runwayID)
	}
	if err := r.Occupy(f.id); err != nil {
		return err
	}
	f.runwayID = r.ID()
	return nil
}

// LeaveRunway releases r if it is the runway this flight holds
func (f *Flight) LeaveRunway(r *Runway) bool {
	if f.runwayID == 0 || f.runwayID != r.ID() {
		return false
	}
	r.Release()
	f.runwayID = 0
	return true
}

// CanBoard is true while boarding a passenger aircraft
func (f *Flight) CanBoard() bool {
	return f.status == StatusBoarding && IsPassenger(f.aircraft)
}

// IsFullyBoarded reports whether the checked-in count equals the aircraft
// capacity. A cargo aircraft with zero payload capacity counts as boarded.
func (f *Flight) IsFullyBoarded() bool {
	return f.passengersCheckedIn == f.aircraft.Capacity()
}

// BoardPassengers checks in count passengers. When the total reaches the
// aircraft capacity exactly, the flight becomes READY.
func (f *Flight) BoardPassengers(count int) error {
	if !IsPassenger(f.aircraft) {
		return fmt.Errorf("%w: %s", ErrNonPassengerAircraft, f.aircraft)
	}
	if count < 0 {
		return fmt.Errorf("negative passenger count %d", count)
	}
	// Capacity is checked before status so a full READY flight reports
	// ErrCapacityExceeded.
	capacity := f.aircraft.Capacity()
	total := f.passengersCheckedIn + count
	if total > capacity {
		return fmt.Errorf("%w: %d checked in + %d exceeds %d seats", ErrCapacityExceeded, f.passengersCheckedIn, count, capacity)
	}
	if f.status != StatusPlanned && f.status != StatusBoarding {
		return stateError("boarding", f.status)
	}
	f.passengersCheckedIn = total
	if total == capacity {
		f.status = StatusReady
	}
	return nil
}

// LoadCargo adds payload to a cargo flight while it is still on the ground
func (f *Flight) LoadCargo(kg float64) error {
	if IsPassenger(f.aircraft) {
		return fmt.Errorf("%w: %s", ErrNonCargoAircraft, f.aircraft)
	}
	if f.status != StatusPlanned && f.status != StatusBoarding && f.status != StatusReady {
		return stateError("cargo loading", f.status)
	}
	if kg < 0 {
		return fmt.Errorf("negative cargo mass %.1f", kg)
	}
	capacity := float64(f.aircraft.Capacity())
	if f.cargoLoadedKg+kg > capacity {
		return fmt.Errorf("%w: %.0f kg loaded + %.0f kg exceeds %.0f kg payload", ErrCapacityExceeded, f.cargoLoadedKg, kg, capacity)
	}
	f.cargoLoadedKg += kg
	return nil
}

// SetStatus overwrites the status without checking legality.
// Use CanTransition when the caller wants the lifecycle enforced. Flight has
// no lock of its own; shared flights are mutated through airport.Airport.
func (f *Flight) SetStatus(status FlightStatus) {
	f.status = status
}

func (f *Flight) String() string {
	return fmt.Sprintf("Flight %s %s->%s (%s)", f.Number, f.Origin, f.Destination, f.status)
}
