package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron specs (with a seconds field). A job still
// running when its next tick fires, or when RunNow is called, is skipped.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context

	chain cron.Chain
	mu    sync.Mutex
	jobs  map[string]cron.Job
}

// NewScheduler creates a new Scheduler bound to ctx.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		Cron:  cron.New(cron.WithSeconds(), cron.WithLogger(logger)),
		Ctx:   ctx,
		chain: cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		jobs:  make(map[string]cron.Job),
	}
}

// Register adds job under name on the given spec.
func (s *Scheduler) Register(name, spec string, job Job) error {
	wrapped := s.chain.Then(cron.FuncJob(func() { s.run(name, job) }))
	if _, err := s.Cron.AddJob(spec, wrapped); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	s.mu.Lock()
	s.jobs[name] = wrapped
	s.mu.Unlock()
	log.Info().Str("task", name).Str("spec", spec).Msg("task registered")
	return nil
}

// RunNow runs a registered task on the calling goroutine. It shares the
// task's wrapper with the cron ticks, so it is skipped while a tick is
// still running and vice versa.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("task %s not registered", name)
	}
	job.Run()
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("tasks", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) run(name string, job Job) {
	if s.Ctx.Err() != nil {
		return
	}
	runID := uuid.NewString()
	logger := log.With().Str("task", name).Str("run_id", runID).Logger()
	ctx := logger.WithContext(s.Ctx)

	logger.Info().Msg("running task")
	if err := job(ctx); err != nil {
		logger.Error().Err(err).Msg("task failed")
		return
	}
	logger.Info().Msg("task finished")
}

// cronLogger routes cron's own logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
