package queries

import (
	"webstrate-analytics/internal/shared/metrics"
)

const (
	opHistory             = "history"
	opMonthData           = "month_data"
	opWebstrateActivities = "webstrate_activities"
	opRecentUserActivity  = "recent_user_activity"
)

var (
	metricQueriesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "queries_total",
		},
		[]string{"operation", metrics.FieldErrorCode},
	)

	metricQueryDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubQuery,
			Name:      "query_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"operation"},
	)
)
