package schedule

import (
	"log/slog"

	"airport_ops/internal/models"
)

// Scheduler runs consistency passes over a schedule
type Scheduler struct {
	schedule *Schedule
}

func NewScheduler(s *Schedule) *Scheduler {
	return &Scheduler{schedule: s}
}

// AutoReadyIfBoarded promotes every BOARDING flight that is fully boarded to
// READY and returns the promoted flights. Running it again is a no-op.
func (s *Scheduler) AutoReadyIfBoarded() []*models.Flight {
	promoted := make([]*models.Flight, 0)
	for _, f := range s.schedule.All() {
		if f.Status() != models.StatusBoarding || !f.IsFullyBoarded() {
			continue
		}
		f.SetStatus(models.StatusReady)
		promoted = append(promoted, f)
		slog.Debug("Flight promoted to READY", "flight_id", f.ID(), "flight_number", f.Number)
	}
	return promoted
}
