package models

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names an airport operation that changed state
type EventKind string

const (
	EventGateAssigned      EventKind = "gate_assigned"
	EventGateReleased      EventKind = "gate_released"
	EventRunwayAssigned    EventKind = "runway_assigned"
	EventRunwayReleased    EventKind = "runway_released"
	EventRunwayMaintenance EventKind = "runway_maintenance"
	EventPassengersBoarded EventKind = "passengers_boarded"
	EventCargoLoaded       EventKind = "cargo_loaded"
	EventStatusChanged     EventKind = "status_changed"
	EventDeparted          EventKind = "departed"
	EventArrived           EventKind = "arrived"
	EventCancelled         EventKind = "cancelled"
	EventAutoReady         EventKind = "auto_ready"
)

// OpsEvent is one journal record of a successful airport operation
type OpsEvent struct {
	ID           string // random UUID
	Kind         EventKind
	FlightID     int // 0 for runway-only events
	FlightNumber string
	Resource     string // gate or runway name, if any
	Status       string // flight (or runway) status after the operation
	RecordedAt   time.Time
}

// NewOpsEvent stamps an event for a flight with a fresh id and the current time
func NewOpsEvent(kind EventKind, f *Flight, resource string) *OpsEvent {
	ev := &OpsEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Resource:   resource,
		RecordedAt: time.Now(),
	}
	if f != nil {
		ev.FlightID = f.ID()
		ev.FlightNumber = f.Number
		ev.Status = f.Status().String()
	}
	return ev
}
