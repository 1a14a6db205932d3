package airport

import (
	"fmt"
	"log/slog"
	"sync"

	"airport_ops/internal/models"
	"airport_ops/internal/schedule"
)

// Options tune policy choices of an Airport
type Options struct {
	// StrictTransitions makes SetFlightStatus reject transitions outside
	// the canonical lifecycle with ErrInvalidState.
	StrictTransitions bool
	// Sink receives operation events; nil discards them.
	Sink EventSink
}

// Airport owns the gates, runways and flights of one facility.
// Every mutation goes through its methods and holds the write lock for the
// whole validate-then-mutate sequence, so a pool scan and the assignment it
// leads to are atomic. Queries take the read lock.
type Airport struct {
	mu        sync.RWMutex
	name      string
	ids       *models.IDAllocator
	gates     []*models.Gate
	runways   []*models.Runway
	flights   *schedule.Schedule
	scheduler *schedule.Scheduler
	strict    bool
	sink      EventSink
}

// New creates an empty airport. ids is the allocator that the caller uses to
// build this airport's aircraft, gates, runways and flights.
func New(name string, ids *models.IDAllocator, opts Options) *Airport {
	if ids == nil {
		ids = models.NewIDAllocator()
	}
	sink := opts.Sink
	if sink == nil {
		sink = discardSink{}
	}
	flights := schedule.New()
	return &Airport{
		name:      name,
		ids:       ids,
		gates:     make([]*models.Gate, 0),
		runways:   make([]*models.Runway, 0),
		flights:   flights,
		scheduler: schedule.NewScheduler(flights),
		strict:    opts.StrictTransitions,
		sink:      sink,
	}
}

func (a *Airport) Name() string { return a.name }

// IDs returns the allocator owned by this airport
func (a *Airport) IDs() *models.IDAllocator { return a.ids }

// AddGate appends a gate to the pool; duplicate names are allowed
func (a *Airport) AddGate(g *models.Gate) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gates = append(a.gates, g)
}

// AddRunway appends a runway to the pool; duplicate names are allowed
func (a *Airport) AddRunway(r *models.Runway) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runways = append(a.runways, r)
}

// AddFlight registers a flight. Adding the same flight id twice fails with
// ErrDuplicateFlight.
func (a *Airport) AddFlight(f *models.Flight) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flights.AddFlight(f)
}

// FindFlight looks up a flight by id
func (a *Airport) FindFlight(flightID int) (*models.Flight, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flights.Get(flightID)
}

// FindByNumber returns all flights with the given number in registration order
func (a *Airport) FindByNumber(number string) []*models.Flight {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flights.FindByNumber(number)
}

// ListPlanned returns all PLANNED flights in registration order
func (a *Airport) ListPlanned() []*models.Flight {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flights.ListPlanned()
}

// Flights returns every registered flight in registration order
func (a *Airport) Flights() []*models.Flight {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flights.All()
}

// Gates returns the gate pool in registration order
func (a *Airport) Gates() []*models.Gate {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*models.Gate(nil), a.gates...)
}

// Runways returns the runway pool in registration order
func (a *Airport) Runways() []*models.Runway {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*models.Runway(nil), a.runways...)
}

// AssignGate gives the flight the first free gate in registration order.
// A flight that already holds a gate gets that gate back unchanged.
// Wingspan is not compared against the gate limit.
func (a *Airport) AssignGate(flightID int) (*models.Gate, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return nil, err
	}
	if gateID, ok := f.GateID(); ok {
		if g := a.gateLocked(gateID); g != nil {
			return g, nil
		}
	}
	for _, g := range a.gates {
		if !g.IsFree() {
			continue
		}
		if err := f.TakeGate(g); err != nil {
			return nil, err
		}
		slog.Info("Gate assigned", "flight_id", flightID, "flight_number", f.Number, "gate", g.Name)
		a.sink.Publish(models.NewOpsEvent(models.EventGateAssigned, f, g.Name))
		return g, nil
	}
	return nil, fmt.Errorf("%w: flight %s", models.ErrGateNotAvailable, f.Number)
}

// ReleaseGate frees the gate held by the flight, if any
func (a *Airport) ReleaseGate(flightID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	a.releaseGateLocked(f)
	return nil
}

func (a *Airport) gateLocked(gateID int) *models.Gate {
	for _, g := range a.gates {
		if g.ID() == gateID {
			return g
		}
	}
	return nil
}

func (a *Airport) runwayLocked(runwayID int) *models.Runway {
	for _, r := range a.runways {
		if r.ID() == runwayID {
			return r
		}
	}
	return nil
}

func (a *Airport) releaseGateLocked(f *models.Flight) {
	gateID, ok := f.GateID()
	if !ok {
		return
	}
	g := a.gateLocked(gateID)
	if g == nil || !f.LeaveGate(g) {
		return
	}
	slog.Info("Gate released", "flight_id", f.ID(), "gate", g.Name)
	a.sink.Publish(models.NewOpsEvent(models.EventGateReleased, f, g.Name))
}

func (a *Airport) releaseRunwayLocked(f *models.Flight) {
	runwayID, ok := f.RunwayID()
	if !ok {
		return
	}
	r := a.runwayLocked(runwayID)
	if r == nil || !f.LeaveRunway(r) {
		return
	}
	slog.Info("Runway released", "flight_id", f.ID(), "runway", r.Name)
	a.sink.Publish(models.NewOpsEvent(models.EventRunwayReleased, f, r.Name))
}

// AssignRunwayForDeparture occupies the first available runway in
// registration order and moves the flight to TAXI, whatever its status.
// A flight already on a runway gets that runway back unchanged.
func (a *Airport) AssignRunwayForDeparture(flightID int) (*models.Runway, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return nil, err
	}
	if runwayID, ok := f.RunwayID(); ok {
		if r := a.runwayLocked(runwayID); r != nil {
			return r, nil
		}
	}
	for _, r := range a.runways {
		if !r.IsAvailable() {
			continue
		}
		if err := f.TakeRunway(r); err != nil {
			return nil, err
		}
		f.SetStatus(models.StatusTaxi)
		slog.Info("Runway assigned", "flight_id", flightID, "flight_number", f.Number, "runway", r.Name)
		a.sink.Publish(models.NewOpsEvent(models.EventRunwayAssigned, f, r.Name))
		return r, nil
	}
	return nil, fmt.Errorf("%w: flight %s", models.ErrRunwayNotAvailable, f.Number)
}

// Depart takes off a READY or TAXI flight holding a runway. The runway and
// any held gate are released.
func (a *Airport) Depart(flightID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if s := f.Status(); s != models.StatusReady && s != models.StatusTaxi {
		return &models.StateError{Op: "departure", Status: s}
	}
	if _, ok := f.RunwayID(); !ok {
		return fmt.Errorf("%w: flight %s", models.ErrMissingRunway, f.Number)
	}

	f.SetStatus(models.StatusAirborne)
	a.releaseRunwayLocked(f)
	a.releaseGateLocked(f)
	slog.Info("Flight departed", "flight_id", flightID, "flight_number", f.Number)
	a.sink.Publish(models.NewOpsEvent(models.EventDeparted, f, ""))
	return nil
}

// Arrive lands an AIRBORNE flight. No gate or runway is assigned.
func (a *Airport) Arrive(flightID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if s := f.Status(); s != models.StatusAirborne {
		return &models.StateError{Op: "arrival", Status: s}
	}
	f.SetStatus(models.StatusLanded)
	slog.Info("Flight arrived", "flight_id", flightID, "flight_number", f.Number)
	a.sink.Publish(models.NewOpsEvent(models.EventArrived, f, ""))
	return nil
}

// StartBoarding opens boarding for a PLANNED flight
func (a *Airport) StartBoarding(flightID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if s := f.Status(); s != models.StatusPlanned {
		return &models.StateError{Op: "start boarding", Status: s}
	}
	f.SetStatus(models.StatusBoarding)
	a.sink.Publish(models.NewOpsEvent(models.EventStatusChanged, f, ""))
	return nil
}

// BoardPassengers checks passengers in on a flight; see Flight.BoardPassengers
func (a *Airport) BoardPassengers(flightID, count int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if err := f.BoardPassengers(count); err != nil {
		return err
	}
	slog.Debug("Passengers boarded",
		"flight_id", flightID,
		"count", count,
		"checked_in", f.PassengersCheckedIn(),
		"capacity", f.Aircraft().Capacity(),
		"status", f.Status(),
	)
	a.sink.Publish(models.NewOpsEvent(models.EventPassengersBoarded, f, ""))
	return nil
}

// LoadCargo adds payload to a cargo flight; see Flight.LoadCargo
func (a *Airport) LoadCargo(flightID int, kg float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if err := f.LoadCargo(kg); err != nil {
		return err
	}
	a.sink.Publish(models.NewOpsEvent(models.EventCargoLoaded, f, ""))
	return nil
}

// SetFlightStatus overwrites a flight's status. In strict mode only
// transitions allowed by models.CanTransition are accepted.
func (a *Airport) SetFlightStatus(flightID int, status models.FlightStatus) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if a.strict && !models.CanTransition(f.Status(), status) {
		return &models.StateError{Op: "transition to " + status.String(), Status: f.Status()}
	}
	f.SetStatus(status)
	a.sink.Publish(models.NewOpsEvent(models.EventStatusChanged, f, ""))
	return nil
}

// CancelFlight cancels a flight that has not left the ground and releases
// its runway and gate
func (a *Airport) CancelFlight(flightID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := a.flights.Get(flightID)
	if err != nil {
		return err
	}
	if !models.CanTransition(f.Status(), models.StatusCancelled) {
		return &models.StateError{Op: "cancellation", Status: f.Status()}
	}
	f.SetStatus(models.StatusCancelled)
	a.releaseRunwayLocked(f)
	a.releaseGateLocked(f)
	slog.Info("Flight cancelled", "flight_id", flightID, "flight_number", f.Number)
	a.sink.Publish(models.NewOpsEvent(models.EventCancelled, f, ""))
	return nil
}

// SetRunwayMaintenance takes a runway out of service
func (a *Airport) SetRunwayMaintenance(runwayID int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	r := a.runwayLocked(runwayID)
	if r == nil {
		return fmt.Errorf("%w: runway id %d", models.ErrRunwayNotFound, runwayID)
	}
	if err := r.EnterMaintenance(); err != nil {
		return err
	}
	slog.Info("Runway entered maintenance", "runway", r.Name)
	ev := models.NewOpsEvent(models.EventRunwayMaintenance, nil, r.Name)
	ev.Status = r.Status().String()
	a.sink.Publish(ev)
	return nil
}

// AutoReadyIfBoarded runs the consistency pass that promotes fully boarded
// BOARDING flights to READY. It returns the number of promoted flights.
func (a *Airport) AutoReadyIfBoarded() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	promoted := a.scheduler.AutoReadyIfBoarded()
	for _, f := range promoted {
		a.sink.Publish(models.NewOpsEvent(models.EventAutoReady, f, ""))
	}
	return len(promoted)
}
