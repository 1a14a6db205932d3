package schedule

import (
	"fmt"

	"airport_ops/internal/models"
)

// Schedule is a registry of flights keyed by flight id.
// Listing preserves insertion order.
type Schedule struct {
	flights map[int]*models.Flight
	order   []int
}

// New creates an empty schedule
func New() *Schedule {
	return &Schedule{
		flights: make(map[int]*models.Flight),
		order:   make([]int, 0),
	}
}

// AddFlight registers a flight; an id already present is rejected and the
// existing entry is left untouched
func (s *Schedule) AddFlight(f *models.Flight) error {
	if _, ok := s.flights[f.ID()]; ok {
		return fmt.Errorf("%w: flight id %d", models.ErrDuplicateFlight, f.ID())
	}
	s.flights[f.ID()] = f
	s.order = append(s.order, f.ID())
	return nil
}

// RemoveFlight drops a flight from the schedule
func (s *Schedule) RemoveFlight(flightID int) error {
	if _, ok := s.flights[flightID]; !ok {
		return fmt.Errorf("%w: flight id %d", models.ErrFlightNotFound, flightID)
	}
	delete(s.flights, flightID)
	for i, id := range s.order {
		if id == flightID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get looks up a flight by id
func (s *Schedule) Get(flightID int) (*models.Flight, error) {
	f, ok := s.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("%w: flight id %d", models.ErrFlightNotFound, flightID)
	}
	return f, nil
}

// FindByNumber returns every flight with the given number, in insertion order.
// Flight numbers are not unique; no match yields an empty slice.
func (s *Schedule) FindByNumber(number string) []*models.Flight {
	return s.filter(func(f *models.Flight) bool { return f.Number == number })
}

// ListPlanned returns all flights still PLANNED
func (s *Schedule) ListPlanned() []*models.Flight {
	return s.filter(func(f *models.Flight) bool { return f.Status() == models.StatusPlanned })
}

// All returns every flight in insertion order
func (s *Schedule) All() []*models.Flight {
	return s.filter(func(*models.Flight) bool { return true })
}

func (s *Schedule) Len() int {
	return len(s.order)
}

func (s *Schedule) filter(keep func(*models.Flight) bool) []*models.Flight {
	out := make([]*models.Flight, 0, len(s.order))
	for _, id := range s.order {
		if f := s.flights[id]; keep(f) {
			out = append(out, f)
		}
	}
	return out
}
