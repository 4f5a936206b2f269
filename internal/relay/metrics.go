package relay

import (
	"webstrate-analytics/internal/shared/metrics"
)

var (
	metricConnectsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRelay,
			Name:      "connects_total",
		},
	)

	metricDisconnectsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRelay,
			Name:      "disconnects_total",
		},
	)

	metricEventsReceivedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubRelay,
			Name:      "events_received_total",
		},
		[]string{"kind"},
	)
)
