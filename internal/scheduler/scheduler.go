// Package scheduler serializes pipeline runs: a cron timer and the manual
// trigger share one guarded entry point, so at most one run executes at any
// instant regardless of trigger source.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner is one full pipeline run. Implemented by pipeline.Orchestrator.
type Runner interface {
	Run(ctx context.Context) error
}

// StatusStore exposes the state the status endpoint reports.
type StatusStore interface {
	EpisodeCount() int
	LastRun() *time.Time
}

// Status is the trigger surface's view of the pipeline.
type Status struct {
	Running      bool       `json:"running"`
	EpisodeCount int        `json:"episode_count"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
}

// Scheduler owns the run-in-progress flag and the recurring timer.
type Scheduler struct {
	runner  Runner
	store   StatusStore
	spec    string
	cron    *cron.Cron
	running atomic.Bool
	baseCtx context.Context
}

// New creates a scheduler firing the runner on the given cron spec
// (standard 5-field syntax). An empty spec disables the timer; manual
// triggers still work.
func New(runner Runner, store StatusStore, spec string) *Scheduler {
	return &Scheduler{
		runner:  runner,
		store:   store,
		spec:    spec,
		baseCtx: context.Background(),
	}
}

// Start registers the cron entry and begins ticking. Runs started by the
// timer (and by TriggerNow) use ctx as their base context so an HTTP
// request's cancellation never aborts a run mid-flight.
func (s *Scheduler) Start(ctx context.Context) error {
	if ctx != nil {
		s.baseCtx = ctx
	}
	if s.spec == "" {
		slog.Info("no schedule configured, manual triggers only")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, func() {
		if !s.TriggerNow() {
			slog.Info("scheduled run skipped, previous run still in progress")
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("scheduler started", "schedule", s.spec)
	return nil
}

// Stop halts the timer. An in-flight run drains on its own.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// TriggerNow starts a run unless one is already in progress, in which case
// it is a logged no-op (not queued, not retried). It returns immediately:
// true means a run was started, false that one was already running. Run
// errors are logged, never surfaced to the trigger's caller.
func (s *Scheduler) TriggerNow() bool {
	if !s.running.CompareAndSwap(false, true) {
		slog.Info("run already in progress, trigger ignored")
		return false
	}
	go s.run()
	return true
}

func (s *Scheduler) run() {
	defer s.running.Store(false)
	started := time.Now()
	slog.Info("run started")
	if err := s.runner.Run(s.baseCtx); err != nil {
		slog.Error("run failed", "error", err, "elapsed", time.Since(started).String())
		return
	}
	slog.Info("run finished", "elapsed", time.Since(started).String())
}

// Running reports whether a run is currently in flight.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Status reads the current pipeline status through the store.
func (s *Scheduler) Status() Status {
	return Status{
		Running:      s.running.Load(),
		EpisodeCount: s.store.EpisodeCount(),
		LastRunAt:    s.store.LastRun(),
	}
}
