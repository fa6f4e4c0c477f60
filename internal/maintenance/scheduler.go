package maintenance

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler wraps robfig/cron and fires the cleaner on a cron spec such as
// "@every 1h" or "0 * * * *".
type Scheduler struct {
	cron    *cron.Cron
	cleaner *Cleaner
	spec    string
	logger  *zap.Logger
}

func NewScheduler(cleaner *Cleaner, spec string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty cron spec")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	cl := cronLogger{s: logger.Named("cron").Sugar()}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		cleaner: cleaner,
		spec:    spec,
		logger:  logger.Named("maintenance"),
	}, nil
}

// Run blocks until ctx ends, then waits for a running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		_, _ = s.cleaner.CleanExpired(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cleanup scheduler started", zap.String("spec", s.spec))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("cleanup scheduler stopped")
	return nil
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
