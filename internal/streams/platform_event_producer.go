package streams

import (
	"context"

	"webstrate-analytics/internal/events"
)

// PlatformEventProducer publishes relay events onto the partitioned queue.
//
// The partition key is the webstrateId, so all events for one webstrate are
// routed to the same partition. Since the consumer runs a single worker per
// partition, per-webstrate arrival order is preserved end to end, and distinct
// webstrates still process in parallel.
//
//go:generate mockgen -source=platform_event_producer.go -destination=./mocks/platform_event_producer_mock.go -package=mocks
type PlatformEventProducer interface {
	Produce(ctx context.Context, event events.PlatformEvent) error
}

type platformEventProducer struct {
	queue *PartitionedQueue[events.PlatformEvent]
}

func NewPlatformEventProducer(queue *PartitionedQueue[events.PlatformEvent]) PlatformEventProducer {
	return &platformEventProducer{
		queue: queue,
	}
}

func (producer *platformEventProducer) Produce(ctx context.Context, event events.PlatformEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	producer.queue.Publish(event.WebstrateID, event)
	metricPlatformEventProducedTotal.WithLabelValues(streamPlatformEvents).Inc()
	return nil
}
