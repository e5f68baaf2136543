// Package worker drives the notification pipeline: a timer-fired
// scheduler loop that processes due notifications and a slower
// retention sweep. A pass can also be fired once by an external
// trigger.
package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// ErrPassInProgress is returned when a pass is requested while another
// one is still running in this process.
var ErrPassInProgress = errors.New("scheduler pass already in progress")

//go:generate mockgen -source=scheduler.go -destination=../mocks/worker/mock.go -package=mocks

type dueProcessor interface {
	ProcessDue(ctx context.Context, strategy retry.Strategy) (int, error)
	CleanupExpired(ctx context.Context) error
}

// Scheduler periodically processes due notifications. The in-flight
// guard is scoped to this instance and only prevents overlapping passes
// within one process; cross-process exclusion comes from the claiming
// query's row locks.
type Scheduler struct {
	service         dueProcessor
	interval        time.Duration
	cleanupInterval time.Duration
	strategy        retry.Strategy

	inFlight atomic.Bool
}

// New creates a scheduler. Zero intervals fall back to 60s for
// dispatch passes and 24h for retention sweeps.
func New(service dueProcessor, interval, cleanupInterval time.Duration, strategy retry.Strategy) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 24 * time.Hour
	}

	return &Scheduler{
		service:         service,
		interval:        interval,
		cleanupInterval: cleanupInterval,
		strategy:        strategy,
	}
}

// Run blocks until ctx is cancelled, firing a dispatch pass every
// interval and a retention sweep every cleanupInterval. The first
// dispatch pass runs immediately so notifications already due at
// startup are not delayed by one tick.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	cleanup := time.NewTicker(s.cleanupInterval)
	defer cleanup.Stop()

	zlog.Logger.Info().Dur("interval", s.interval).Msg("scheduler started")

	s.pass(ctx)

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.pass(ctx)
		case <-cleanup.C:
			if err := s.service.CleanupExpired(ctx); err != nil {
				zlog.Logger.Error().Err(err).Msg("retention cleanup failed")
			}
		}
	}
}

// RunOnce fires a single dispatch pass, for external triggers. It
// returns ErrPassInProgress when a pass is already running.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return 0, ErrPassInProgress
	}
	defer s.inFlight.Store(false)

	return s.service.ProcessDue(ctx, s.strategy)
}

func (s *Scheduler) pass(ctx context.Context) {
	processed, err := s.RunOnce(ctx)
	if err != nil {
		if errors.Is(err, ErrPassInProgress) {
			zlog.Logger.Warn().Msg("previous pass still running, skipping tick")
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}

		zlog.Logger.Error().Err(err).Msg("scheduler pass failed")
		return
	}

	if processed > 0 {
		zlog.Logger.Info().Int("processed", processed).Msg("scheduler pass complete")
	}
}
