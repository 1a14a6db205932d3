package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"airport_ops/internal/airport"
	"airport_ops/internal/database"
	"airport_ops/internal/layout"
	"airport_ops/internal/models"
	"airport_ops/internal/scheduler"
	"airport_ops/internal/tasks"
)

// Daemon runs one airport with its event journal and consistency pass
type Daemon struct {
	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *scheduler.Scheduler
	database  *database.DB
	airport   *airport.Airport
	eventChan chan *models.OpsEvent
}

// Config holds daemon configuration
type Config struct {
	AirportName       string        // used when no layout is given
	LayoutPath        string        // optional YAML facility layout
	DBPath            string        // path to the SQLite journal
	BatchSize         int           // events per journal transaction
	BatchTimeout      time.Duration // flush a partial batch after this long
	AutoReadyInterval time.Duration // period of the ready-promotion pass
	StrictTransitions bool
}

// New builds the airport and opens the journal. Nothing runs until Start.
func New(cfg Config) (*Daemon, error) {
	if cfg.LayoutPath == "" && cfg.AirportName == "" {
		return nil, fmt.Errorf("AirportName or LayoutPath is required")
	}

	batchSize := 100
	if cfg.BatchSize > 0 {
		batchSize = cfg.BatchSize
	}
	batchTimeout := 5 * time.Second
	if cfg.BatchTimeout > 0 {
		batchTimeout = cfg.BatchTimeout
	}
	autoReadyInterval := 10 * time.Second
	if cfg.AutoReadyInterval > 0 {
		autoReadyInterval = cfg.AutoReadyInterval
	}

	eventChan := make(chan *models.OpsEvent, 1000)
	opts := airport.Options{
		StrictTransitions: cfg.StrictTransitions,
		Sink:              airport.ChannelSink(eventChan),
	}

	var ap *airport.Airport
	if cfg.LayoutPath != "" {
		l, err := layout.Load(cfg.LayoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load layout: %w", err)
		}
		if l.Name == "" {
			l.Name = cfg.AirportName
		}
		if ap, err = l.Build(opts); err != nil {
			return nil, fmt.Errorf("failed to build airport: %w", err)
		}
	} else {
		ap = airport.New(cfg.AirportName, models.NewIDAllocator(), opts)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sched := scheduler.New(ctx)

	collector := tasks.NewEventCollectorWithConfig(db.EventRepository(), eventChan, batchSize, batchTimeout)
	sched.AddService("event_collector", collector.Start)
	sched.AddTask(tasks.NewAutoReadyTask(ap, autoReadyInterval))

	slog.Info("Airport ready",
		"airport", ap.Name(),
		"gates", len(ap.Gates()),
		"runways", len(ap.Runways()),
		"flights", len(ap.Flights()),
	)

	return &Daemon{
		ctx:       ctx,
		cancel:    cancel,
		scheduler: sched,
		database:  db,
		airport:   ap,
		eventChan: eventChan,
	}, nil
}

// Airport returns the airport operated by the daemon
func (d *Daemon) Airport() *airport.Airport {
	return d.airport
}

// Journal returns the event repository backing the daemon
func (d *Daemon) Journal() database.EventRepository {
	return d.database.EventRepository()
}

func (d *Daemon) Start() error {
	slog.Info("Starting daemon")
	d.scheduler.Start()
	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon, flushing pending journal events
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()

	if err := d.scheduler.Stop(); err != nil {
		slog.Error("Scheduler stopped with error", "error", err)
	}

	if err := d.database.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
		return err
	}

	slog.Info("Daemon stopped")
	return nil
}
