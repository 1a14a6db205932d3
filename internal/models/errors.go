package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for every failure the airport core can report.
// Callers match them with errors.Is.
var (
	ErrInvalidAircraftConfiguration = errors.New("invalid aircraft configuration")
	ErrCapacityExceeded             = errors.New("capacity exceeded")
	ErrGateOccupied                 = errors.New("gate occupied")
	ErrGateAlreadyHeld              = errors.New("flight already holds a gate")
	ErrGateNotAvailable             = errors.New("no gate available")
	ErrRunwayUnavailable            = errors.New("runway unavailable")
	ErrRunwayNotAvailable           = errors.New("no runway available")
	ErrRunwayNotFound               = errors.New("runway not found")
	ErrRunwayAlreadyHeld            = errors.New("flight already holds a runway")
	ErrFlightNotFound               = errors.New("flight not found")
	ErrDuplicateFlight              = errors.New("duplicate flight")
	ErrNonPassengerAircraft         = errors.New("aircraft cannot board passengers")
	ErrNonCargoAircraft             = errors.New("aircraft cannot load cargo")
	ErrInvalidState                 = errors.New("invalid flight state")
	ErrMissingRunway                = errors.New("no runway assigned")
)

// StateError reports an operation attempted from an illegal flight status
type StateError struct {
	Op     string
	Status FlightStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not possible in status %s", e.Op, e.Status)
}

// Is lets errors.Is(err, ErrInvalidState) match a *StateError
func (e *StateError) Is(target error) bool {
	return target == ErrInvalidState
}

func stateError(op string, status FlightStatus) error {
	return &StateError{Op: op, Status: status}
}
