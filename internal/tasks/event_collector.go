package tasks

import (
	"context"
	"log/slog"
	"time"

	"airport_ops/internal/database"
	"airport_ops/internal/models"
)

// EventCollector drains airport events from a channel and journals them in batches
type EventCollector struct {
	repo          database.EventRepository
	eventChan     <-chan *models.OpsEvent
	batchSize     int           // maximum number of events in a batch before committing
	flushInterval time.Duration // flush a partial batch after this long
}

// Default batch size is 100 events and flush interval is 1 second
func NewEventCollector(repo database.EventRepository, eventChan <-chan *models.OpsEvent) *EventCollector {
	return NewEventCollectorWithConfig(repo, eventChan, 100, 1*time.Second)
}

// NewEventCollectorWithConfig creates a collector with custom batch settings
func NewEventCollectorWithConfig(repo database.EventRepository, eventChan <-chan *models.OpsEvent, batchSize int, flushInterval time.Duration) *EventCollector {
	return &EventCollector{
		repo:          repo,
		eventChan:     eventChan,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Start collects events until the context is cancelled or the channel is
// closed, flushing whatever is pending on the way out. A batch is written when
// it is full or when flushInterval has elapsed, even if no new event arrives.
func (c *EventCollector) Start(ctx context.Context) error {
	batch := make([]*models.OpsEvent, 0, c.batchSize)

	flushBatch := func() {
		if len(batch) == 0 {
			return
		}
		if err := c.repo.InsertBatch(batch); err != nil {
			slog.Error("Error journaling batch of events", "batch_size", len(batch), "error", err)
		} else {
			slog.Debug("Journaled batch of events", "batch_size", len(batch))
		}
		batch = batch[:0]
	}

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			batch = c.drain(batch)
			flushBatch()
			return ctx.Err()

		case <-ticker.C:
			flushBatch()

		case ev, ok := <-c.eventChan:
			if !ok {
				flushBatch()
				return nil
			}
			if ev == nil {
				continue
			}

			batch = append(batch, ev)
			slog.Debug("Added event to batch",
				"kind", ev.Kind,
				"flight_id", ev.FlightID,
				"current_batch_size", len(batch),
				"max_batch_size", c.batchSize,
			)

			if len(batch) >= c.batchSize {
				flushBatch()
			}
		}
	}
}

// drain appends events already queued on the channel without waiting for more
func (c *EventCollector) drain(batch []*models.OpsEvent) []*models.OpsEvent {
	for {
		select {
		case ev, ok := <-c.eventChan:
			if !ok {
				return batch
			}
			if ev != nil {
				batch = append(batch, ev)
			}
		default:
			return batch
		}
	}
}
