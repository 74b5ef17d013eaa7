package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/trogers1052/lumber-futures/internal/importer"
)

// Importer is the import operation a refresh runs
type Importer interface {
	Import(ctx context.Context, path string) (importer.Result, error)
}

// Scheduler re-imports the source workbook on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	importer Importer
	source   string
	ctx      context.Context
	logger   zerolog.Logger

	// mu keeps refreshes serial so the store only ever sees one writer.
	mu sync.Mutex
}

// NewScheduler creates a Scheduler. ctx bounds every refresh run.
func NewScheduler(ctx context.Context, imp Importer, source string, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		importer: imp,
		source:   source,
		ctx:      ctx,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the refresh task. schedule uses the standard five-field
// cron syntax or a descriptor such as "@every 1h".
func (s *Scheduler) Register(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.Refresh); err != nil {
		return fmt.Errorf("failed to register refresh %q: %w", schedule, err)
	}
	s.logger.Info().Str("schedule", schedule).Str("source", s.source).Msg("refresh registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("scheduler stopped")
}

// Refresh runs one import. Failures are logged and the stored rows keep
// their previous values.
func (s *Scheduler) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}

	res, err := s.importer.Import(s.ctx, s.source)
	if err != nil {
		s.logger.Error().Err(err).Str("source", s.source).Msg("refresh failed")
		return
	}
	s.logger.Info().Int("rows", res.Rows).Int("skipped", res.Skipped).Msg("refresh complete")
}
