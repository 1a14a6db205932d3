package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task is a periodic job such as the ready-promotion consistency pass
type Task interface {
	Run(ctx context.Context) error
	Interval() time.Duration
	Name() string
}

// Service is a long-running job, such as the event collector, that returns
// when its context is cancelled
type Service func(ctx context.Context) error

type namedService struct {
	name string
	run  Service
}

// Scheduler runs periodic tasks and long-running services until stopped
type Scheduler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group
	tasks    []Task
	services []namedService
}

// New creates a scheduler bound to ctx
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		group:  group,
		tasks:  make([]Task, 0),
	}
}

// AddTask adds a periodic task; call before Start
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// AddService adds a long-running service; call before Start
func (s *Scheduler) AddService(name string, run Service) {
	s.services = append(s.services, namedService{name: name, run: run})
}

// Start launches every task and service in the background
func (s *Scheduler) Start() {
	slog.Info("Starting task scheduler")
	for _, task := range s.tasks {
		task := task
		s.group.Go(func() error {
			s.runTask(task)
			return nil
		})
	}
	for _, svc := range s.services {
		svc := svc
		s.group.Go(func() error {
			err := svc.run(s.ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Service stopped", "service", svc.name, "error", err)
				return err
			}
			return nil
		})
	}
	slog.Info("Task scheduler started", "task_count", len(s.tasks), "service_count", len(s.services))
}

// Stop cancels all tasks and services and waits for them. It returns the
// first service failure, if any.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping task scheduler")
	s.cancel()
	err := s.group.Wait()
	slog.Info("Task scheduler stopped")
	return err
}

// runTask runs a single task immediately and then on its interval
func (s *Scheduler) runTask(task Task) {
	ticker := time.NewTicker(task.Interval())
	defer ticker.Stop()

	s.runOnce(task)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(task)
		}
	}
}

func (s *Scheduler) runOnce(task Task) {
	start := time.Now()
	if err := task.Run(s.ctx); err != nil {
		if s.ctx.Err() != nil {
			return
		}
		slog.Error("Error running task", "task", task.Name(), "error", err)
		return
	}
	slog.Debug("Task completed", "task", task.Name(), "duration", time.Since(start))
}
