package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB owns the SQLite connection backing the operations journal
type DB struct {
	db *sql.DB
}

// New opens (or creates) the journal database and ensures its schema
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite tunes the connection for an append-mostly journal
func optimizeSQLite(db *sql.DB) error {
	pragmas := []struct {
		stmt string
		what string
	}{
		// WAL lets journal queries run while the collector writes
		{"PRAGMA journal_mode=WAL", "enable WAL mode"},
		{"PRAGMA synchronous=NORMAL", "set synchronous mode"},
		{"PRAGMA temp_store=MEMORY", "set temp_store"},
		{"PRAGMA busy_timeout=5000", "set busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			return fmt.Errorf("failed to %s: %w", p.what, err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// EventRepository returns the repository for journal events
func (d *DB) EventRepository() EventRepository {
	return NewEventRepository(d.db)
}

// initSchema creates the journal schema if it doesn't exist
func (d *DB) initSchema() error {
	eventsSchema := `CREATE TABLE IF NOT EXISTS ops_events (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		flight_id INTEGER NOT NULL DEFAULT 0,
		flight_number TEXT,
		resource TEXT,
		status TEXT,
		recorded_at TIMESTAMP NOT NULL
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_ops_events_flight ON ops_events(flight_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ops_events_recorded_at ON ops_events(recorded_at)`,
	}

	if _, err := d.db.Exec(eventsSchema); err != nil {
		return fmt.Errorf("failed to create ops_events table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
