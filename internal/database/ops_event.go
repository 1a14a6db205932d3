package database

import (
	"database/sql"
	"fmt"

	"airport_ops/internal/models"
)

type EventRepository interface {
	InsertBatch(events []*models.OpsEvent) error
	ListByFlight(flightID int) ([]*models.OpsEvent, error)
	Count() (int, error)
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

// InsertBatch writes events in a single transaction. Events whose id is
// already journaled are ignored.
func (r *eventRepository) InsertBatch(events []*models.OpsEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO ops_events (
		id, kind, flight_id, flight_number, resource, status, recorded_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(
			ev.ID,
			string(ev.Kind),
			ev.FlightID,
			ev.FlightNumber,
			ev.Resource,
			ev.Status,
			ev.RecordedAt,
		); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByFlight returns the journaled events of one flight, oldest first
func (r *eventRepository) ListByFlight(flightID int) ([]*models.OpsEvent, error) {
	rows, err := r.db.Query(`SELECT id, kind, flight_id, flight_number, resource, status, recorded_at
		FROM ops_events WHERE flight_id = ? ORDER BY recorded_at, rowid`, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.OpsEvent, 0)
	for rows.Next() {
		var (
			ev           models.OpsEvent
			kind         string
			flightNumber sql.NullString
			resource     sql.NullString
			status       sql.NullString
		)
		if err := rows.Scan(&ev.ID, &kind, &ev.FlightID, &flightNumber, &resource, &status, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Kind = models.EventKind(kind)
		ev.FlightNumber = flightNumber.String
		ev.Resource = resource.String
		ev.Status = status.String
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM ops_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}
