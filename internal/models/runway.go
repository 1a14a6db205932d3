package models

import "fmt"

// RunwayStatus is the occupancy state of a runway
type RunwayStatus int

const (
	RunwayFree RunwayStatus = iota
	RunwayInUse
	RunwayMaintenance
)

func (s RunwayStatus) String() string {
	switch s {
	case RunwayFree:
		return "FREE"
	case RunwayInUse:
		return "IN_USE"
	case RunwayMaintenance:
		return "MAINTENANCE"
	default:
		return fmt.Sprintf("RunwayStatus(%d)", int(s))
	}
}

// Runway is an exclusive-use resource.
// status == RunwayInUse exactly when a current flight is set.
type Runway struct {
	id            int
	Name          string
	LengthM       int
	status        RunwayStatus
	currentFlight int // 0 when none
}

// NewRunway allocates a runway id; new runways start FREE
func NewRunway(ids *IDAllocator, name string, lengthM int) *Runway {
	return &Runway{
		id:      ids.NextRunway(),
		Name:    name,
		LengthM: lengthM,
		status:  RunwayFree,
	}
}

func (r *Runway) ID() int              { return r.id }
func (r *Runway) Status() RunwayStatus { return r.status }

// CurrentFlight returns the flight using the runway, if any
func (r *Runway) CurrentFlight() (int, bool) {
	return r.currentFlight, r.currentFlight != 0
}

// IsAvailable is true only for a FREE runway with no current flight.
// Runways under maintenance are never available.
func (r *Runway) IsAvailable() bool {
	return r.status == RunwayFree && r.currentFlight == 0
}

// Occupy marks the runway IN_USE by the given flight
func (r *Runway) Occupy(flightID int) error {
	if !r.IsAvailable() {
		return fmt.Errorf("%w: runway %s is %s", ErrRunwayUnavailable, r.Name, r.status)
	}
	r.currentFlight = flightID
	r.status = RunwayInUse
	return nil
}

// Release clears the current flight and always sets the runway FREE,
// including from MAINTENANCE. Operators re-enter maintenance explicitly.
func (r *Runway) Release() {
	r.currentFlight = 0
	r.status = RunwayFree
}

// EnterMaintenance takes a runway out of service. An IN_USE runway cannot
// enter maintenance until its flight has departed.
func (r *Runway) EnterMaintenance() error {
	if r.status == RunwayInUse {
		return fmt.Errorf("%w: runway %s is in use by flight %d", ErrRunwayUnavailable, r.Name, r.currentFlight)
	}
	r.status = RunwayMaintenance
	return nil
}
