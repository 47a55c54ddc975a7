package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/usecase"
)

// ImportRunner is the part of the orchestrator the scheduler drives.
type ImportRunner interface {
	Run(ctx context.Context, input usecase.RunInput) (usecase.RunSummary, error)
}

// ImportScheduler runs the default data directory import on a cron schedule.
type ImportScheduler struct {
	cron    *cron.Cron
	runner  ImportRunner
	timeout time.Duration
	logger  *logging.Logger
}

// NewImportScheduler returns nil when schedule is empty. Overlapping ticks are skipped.
func NewImportScheduler(schedule string, runner ImportRunner, timeout time.Duration, logger *logging.Logger) (*ImportScheduler, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}

	s := &ImportScheduler{
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("parse IMPORT_SCHEDULE %q: %w", schedule, err)
	}

	return s, nil
}

func (s *ImportScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce performs one scheduled run and logs its outcome.
func (s *ImportScheduler) RunOnce(ctx context.Context) {
	summary, err := s.runner.Run(ctx, usecase.RunInput{})
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled import failed", "error", err)
		return
	}
	compact := summary.Compact()
	if !summary.OK {
		s.logger.WarnContext(ctx, "scheduled import finished with failures",
			"run_id", summary.RunID,
			"found", compact.Found,
			"message", summary.Message,
		)
		return
	}
	s.logger.InfoContext(ctx, "scheduled import finished",
		"run_id", summary.RunID,
		"found", compact.Found,
	)
}

// Run starts the cron loop and blocks until ctx is done, then waits for an active run.
func (s *ImportScheduler) Run(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("import scheduler started", "entries", len(s.cron.Entries()))
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("import scheduler stopped")
}
