package tasks

import (
	"context"
	"log/slog"
	"time"
)

// readyPromoter is the part of the airport the task needs
type readyPromoter interface {
	AutoReadyIfBoarded() int
}

// AutoReadyTask periodically promotes fully boarded flights to READY
type AutoReadyTask struct {
	airport  readyPromoter
	interval time.Duration
}

func NewAutoReadyTask(airport readyPromoter, interval time.Duration) *AutoReadyTask {
	return &AutoReadyTask{airport: airport, interval: interval}
}

func (t *AutoReadyTask) Name() string            { return "auto_ready" }
func (t *AutoReadyTask) Interval() time.Duration { return t.interval }

func (t *AutoReadyTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n := t.airport.AutoReadyIfBoarded(); n > 0 {
		slog.Info("Consistency pass promoted flights", "promoted", n)
	}
	return nil
}
