package aggregators

import (
	"context"
	"time"

	"webstrate-analytics/internal/events"
	"webstrate-analytics/internal/models"
	"webstrate-analytics/internal/shared/loggers"
	"webstrate-analytics/internal/shared/metrics"
	"webstrate-analytics/internal/shared/svcerrors"
	"webstrate-analytics/internal/shared/timeid"
	"webstrate-analytics/internal/stores"
)

//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	// Record ingests one platform event: edit operations and presence signals
	// increment the accumulator, join/part transitions are persisted
	// immediately, malformed events are dropped silently.
	Record(ctx context.Context, event events.PlatformEvent) *svcerrors.ServiceError
	// Flush atomically takes the accumulated counters and persists one activity
	// record per webstrate with at least one active user, all in one batched
	// insert. A store failure loses the interval's counters; they are not
	// retried or replayed.
	Flush(ctx context.Context) *svcerrors.ServiceError
}

type aggregationService struct {
	accumulator      *Accumulator
	activityStore    stores.ActivityStore
	clientEventStore stores.ClientEventStore
	now              func() time.Time
}

func NewAggregationService(accumulator *Accumulator, activityStore stores.ActivityStore, clientEventStore stores.ClientEventStore) AggregationService {
	return &aggregationService{
		accumulator:      accumulator,
		activityStore:    activityStore,
		clientEventStore: clientEventStore,
		now:              time.Now,
	}
}

func (s *aggregationService) Record(ctx context.Context, event events.PlatformEvent) *svcerrors.ServiceError {
	if event.Malformed() {
		metricEventsDroppedTotal.WithLabelValues(dropReasonMalformed).Inc()
		return nil
	}

	switch {
	case event.Kind.IsCounted():
		s.accumulator.Add(event.WebstrateID, event.UserID, event.Kind)
		metricEventsRecordedTotal.WithLabelValues(string(event.Kind)).Inc()
		return nil

	case event.Kind.IsTransition():
		return s.recordTransition(ctx, event)

	default:
		metricEventsDroppedTotal.WithLabelValues(dropReasonUnknownKind).Inc()
		return nil
	}
}

func (s *aggregationService) recordTransition(ctx context.Context, event events.PlatformEvent) *svcerrors.ServiceError {
	id, err := timeid.New(s.now())
	if err != nil {
		return errInternalEventTimestampFailed(err)
	}

	record := &models.ClientEventRecord{
		ID:          id,
		Kind:        event.Kind,
		WebstrateID: event.WebstrateID,
		UserID:      event.UserID,
	}
	if err := s.clientEventStore.Insert(ctx, record); err != nil {
		return errInternalClientEventStoreFailed(err)
	}

	metricEventsRecordedTotal.WithLabelValues(string(event.Kind)).Inc()
	return nil
}

func (s *aggregationService) Flush(ctx context.Context) *svcerrors.ServiceError {
	taken := s.accumulator.Swap()

	records := make([]*models.ActivityRecord, 0, len(taken))
	for webstrateID, users := range taken {
		if len(users) == 0 {
			continue
		}

		userCounts := make(map[string]models.UserCounts, len(users))
		for userID, counts := range users {
			userCounts[userID] = *counts
		}

		id, err := timeid.New(s.now())
		if err != nil {
			svcErr := errInternalFlushTimestampFailed(err)
			metricFlushTotal.WithLabelValues(svcErr.Code).Inc()
			return svcErr
		}

		records = append(records, &models.ActivityRecord{
			ID:          id,
			WebstrateID: webstrateID,
			Users:       userCounts,
		})
	}

	if len(records) == 0 {
		metricFlushTotal.WithLabelValues(metrics.ValueNoError).Inc()
		return nil
	}

	if err := s.activityStore.InsertMany(ctx, records); err != nil {
		// The swapped counters are gone; the interval's aggregates are lost.
		svcErr := errInternalActivityStoreFailed(err)
		loggers.Ctx(ctx).Error().
			Err(err).
			Int("records", len(records)).
			Msg("flush insert failed, interval aggregates lost")
		metricFlushTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}

	metricFlushTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricFlushedRecordsTotal.Add(float64(len(records)))
	loggers.Ctx(ctx).Debug().Int("records", len(records)).Msg("flushed interval aggregates")
	return nil
}
