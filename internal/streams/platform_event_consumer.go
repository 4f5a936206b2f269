package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"webstrate-analytics/internal/aggregators"
	"webstrate-analytics/internal/events"
	"webstrate-analytics/internal/shared/loggers"
	"webstrate-analytics/internal/shared/metrics"
	"webstrate-analytics/internal/shared/svcerrors"
)

//go:generate mockgen -source=platform_event_consumer.go -destination=./mocks/platform_event_consumer_mock.go -package=mocks
type PlatformEventConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type platformEventConsumer struct {
	queue              *PartitionedQueue[events.PlatformEvent]
	aggregationService aggregators.AggregationService

	wg sync.WaitGroup

	stopOnce sync.Once
	stopCh   chan struct{}

	logger loggers.Logger
}

func NewPlatformEventConsumer(queue *PartitionedQueue[events.PlatformEvent], aggregationService aggregators.AggregationService, logger loggers.Logger) PlatformEventConsumer {
	return &platformEventConsumer{
		queue:              queue,
		aggregationService: aggregationService,
		stopCh:             make(chan struct{}),
		logger:             logger,
	}
}

// Start spawns 1 worker goroutine per partition. Each partition is a
// single-writer lane for the webstrates routed to it by the producer.
func (consumer *platformEventConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.partitions[partitionIndex]
		consumer.wg.Add(1)
		go func(partitionIndex int, ch <-chan events.PlatformEvent) {
			defer consumer.wg.Done()

			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}(partitionIndex, ch)
	}
}

// Stop waits for workers to stop (best called during app shutdown).
func (consumer *platformEventConsumer) Stop() {
	consumer.stopOnce.Do(func() { close(consumer.stopCh) })
	consumer.wg.Wait()
}

func (consumer *platformEventConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.PlatformEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-consumer.stopCh:
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.consumeOne(ctx, partitionIndex, event)
		}
	}
}

// consumeOne records a single event with panic recovery so a bad event cannot
// take down its partition worker.
func (consumer *platformEventConsumer) consumeOne(ctx context.Context, partitionIndex int, event events.PlatformEvent) {
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("consumer panic recovered: %v", r)

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricPlatformEventConsumedTotal.WithLabelValues(streamPlatformEvents, svcErr.Code).Inc()
		}
	}()

	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, fmt.Sprintf("%d", partitionIndex)).
		Str(loggers.FieldWebstrateID, event.WebstrateID).
		Logger().WithContext(ctx)

	if svcErr := consumer.aggregationService.Record(ctx, event); svcErr != nil {
		loggers.Ctx(ctx).Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Str(loggers.FieldEventKind, string(event.Kind)).
			Msg("failed to record platform event")
		metricPlatformEventConsumedTotal.WithLabelValues(streamPlatformEvents, svcErr.Code).Inc()
		return
	}

	metricPlatformEventConsumedTotal.WithLabelValues(streamPlatformEvents, metrics.ValueNoError).Inc()
}
