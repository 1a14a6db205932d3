package airport

import (
	"log/slog"

	"airport_ops/internal/models"
)

// EventSink receives a journal event for every successful mutation.
// Publish is called while the airport lock is held and must not block.
type EventSink interface {
	Publish(ev *models.OpsEvent)
}

// ChannelSink forwards events to a channel without blocking.
// Events are dropped with a warning when the channel is full.
type ChannelSink chan<- *models.OpsEvent

func (c ChannelSink) Publish(ev *models.OpsEvent) {
	select {
	case c <- ev:
	default:
		slog.Warn("Event channel full, dropping event", "kind", ev.Kind, "flight_id", ev.FlightID)
	}
}

type discardSink struct{}

func (discardSink) Publish(*models.OpsEvent) {}
