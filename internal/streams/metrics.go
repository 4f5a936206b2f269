package streams

import (
	"webstrate-analytics/internal/shared/metrics"
)

var (
	streamPlatformEvents             = "platform_events"
	metricPlatformEventProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "platform_event_published_total",
		},
		[]string{"stream_id"},
	)

	metricPlatformEventConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "platform_event_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
