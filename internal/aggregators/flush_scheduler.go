package aggregators

import (
	"context"
	"sync"
	"time"

	"webstrate-analytics/internal/shared/loggers"
	"webstrate-analytics/internal/shared/ulid"
)

// FlushScheduler drives the periodic flush. It lives outside the engine so the
// engine's logic stays testable without real wall-clock waiting.
//
//go:generate mockgen -source=flush_scheduler.go -destination=./mocks/flush_scheduler_mock.go -package=mocks
type FlushScheduler interface {
	Start(ctx context.Context)
	Stop()
}

type flushScheduler struct {
	aggregationService AggregationService
	period             time.Duration

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewFlushScheduler(aggregationService AggregationService, period time.Duration, logger loggers.Logger) FlushScheduler {
	return &flushScheduler{
		aggregationService: aggregationService,
		period:             period,
		stopCh:             make(chan struct{}),
		logger:             logger,
	}
}

// Start spawns the ticker goroutine. Each tick triggers exactly one flush; a
// failed flush is logged and counted, never retried.
func (s *flushScheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop waits for the ticker goroutine to exit (best called during app shutdown).
func (s *flushScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *flushScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			flushCtx := s.logger.With().
				Str(loggers.FieldRequestID, ulid.NewULID()).
				Logger().WithContext(ctx)

			if svcErr := s.aggregationService.Flush(flushCtx); svcErr != nil {
				loggers.Ctx(flushCtx).Error().
					Err(svcErr.Cause).
					Str(loggers.FieldErrorCode, svcErr.Code).
					Msg("periodic flush failed")
			}
		}
	}
}
