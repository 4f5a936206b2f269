package aggregators

import (
	"webstrate-analytics/internal/shared/metrics"
)

const (
	dropReasonMalformed   = "malformed"
	dropReasonUnknownKind = "unknown_kind"
)

var (
	// metricEventsRecordedTotal counts ingested events by kind, after the
	// malformed/unknown filter. Counted kinds land in the accumulator,
	// transition kinds in the client event store.
	metricEventsRecordedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "events_recorded_total",
		},
		[]string{"kind"},
	)

	// metricEventsDroppedTotal counts silently dropped events. Dropping is the
	// designed behavior for bad input, so this counter is the only trace of it.
	metricEventsDroppedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "events_dropped_total",
		},
		[]string{"reason"},
	)

	metricFlushTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "flush_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricFlushedRecordsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "flushed_records_total",
		},
	)
)
