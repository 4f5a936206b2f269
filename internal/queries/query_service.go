package queries

import (
	"context"
	"sort"
	"time"

	"webstrate-analytics/internal/shared/metrics"
	"webstrate-analytics/internal/shared/svcerrors"
	"webstrate-analytics/internal/shared/timeid"
	"webstrate-analytics/internal/stores"
)

const (
	defaultMaxWebstrates = 20
	nearbyWindow         = 3 * time.Hour
)

// QueryService answers the analytical read operations. Every time-based lookup
// is expressed as an identifier range scan against the stores; ranking,
// grouping and correlation happen in memory on the scanned records.
//
//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	// GetHistory returns all activity records from the last sinceMinutes
	// minutes, each decorated with its decoded timestamp.
	GetHistory(ctx context.Context, sinceMinutes int) ([]*HistoryEntry, *svcerrors.ServiceError)
	// GetMonthData returns per-day activity scores for the top maxWebstrates
	// webstrates the user participated in during referenceDate's month. The
	// score of a record counts every participating user, so the ranking
	// reflects whole-webstrate activity, not just the querying user's share.
	GetMonthData(ctx context.Context, userID string, referenceDate time.Time, maxWebstrates int) (MonthData, *svcerrors.ServiceError)
	// GetWebstrateActivities returns client events on the given webstrates
	// strictly between fromDate and toDate, grouped per webstrate. A zero
	// toDate defaults to now.
	GetWebstrateActivities(ctx context.Context, webstrateIDs []string, fromDate, toDate time.Time) (WebstrateActivities, *svcerrors.ServiceError)
	// GetRecentUserActivity correlates the user's latest event per webstrate
	// with other users' subsequent activity on those webstrates.
	GetRecentUserActivity(ctx context.Context, userID string) (*RecentUserActivity, *svcerrors.ServiceError)
}

type queryService struct {
	activityStore    stores.ActivityStore
	clientEventStore stores.ClientEventStore
	laterFilter      LaterFilter
	now              func() time.Time
}

func NewQueryService(activityStore stores.ActivityStore, clientEventStore stores.ClientEventStore, laterFilter LaterFilter) QueryService {
	if laterFilter == nil {
		laterFilter = CompatLaterFilter
	}
	return &queryService{
		activityStore:    activityStore,
		clientEventStore: clientEventStore,
		laterFilter:      laterFilter,
		now:              time.Now,
	}
}

func (s *queryService) GetHistory(ctx context.Context, sinceMinutes int) (_ []*HistoryEntry, svcErr *svcerrors.ServiceError) {
	defer s.observe(opHistory, time.Now(), &svcErr)

	if sinceMinutes <= 0 {
		return nil, errMissingInput("sinceMinutes must be positive")
	}

	lower, err := timeid.Encode(s.now().Add(-time.Duration(sinceMinutes) * time.Minute))
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}

	records, err := s.activityStore.FindSince(ctx, lower)
	if err != nil {
		return nil, errInternalActivityStoreFailed(err)
	}

	entries := make([]*HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, &HistoryEntry{
			ActivityRecord: *record,
			Timestamp:      timeid.Decode(record.ID),
		})
	}
	return entries, nil
}

func (s *queryService) GetMonthData(ctx context.Context, userID string, referenceDate time.Time, maxWebstrates int) (_ MonthData, svcErr *svcerrors.ServiceError) {
	defer s.observe(opMonthData, time.Now(), &svcErr)

	if userID == "" {
		return nil, errMissingInput("no userId specified")
	}
	if referenceDate.IsZero() {
		referenceDate = s.now()
	}
	if maxWebstrates <= 0 {
		maxWebstrates = defaultMaxWebstrates
	}

	monthStart := time.Date(referenceDate.Year(), referenceDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	lower, err := timeid.Encode(monthStart)
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}
	upper, err := timeid.Encode(monthEnd)
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}

	records, err := s.activityStore.FindRangeForUser(ctx, lower, upper, userID)
	if err != nil {
		return nil, errInternalActivityStoreFailed(err)
	}

	// Per-day scores and per-webstrate month totals in one pass.
	dataDays := make(MonthData)
	monthTotals := make(map[string]int64)
	for _, record := range records {
		day := timeid.Decode(record.ID).Day()

		activity := int64(0)
		for _, counts := range record.Users {
			activity += counts.Total()
		}

		dayScores, ok := dataDays[day]
		if !ok {
			dayScores = make(map[string]int64)
			dataDays[day] = dayScores
		}
		dayScores[record.WebstrateID] += activity
		monthTotals[record.WebstrateID] += activity
	}

	// Rank webstrates by month total, ties broken by id for stable output, and
	// apply a single global cutoff across the whole month.
	ranked := make([]string, 0, len(monthTotals))
	for webstrateID := range monthTotals {
		ranked = append(ranked, webstrateID)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if monthTotals[ranked[i]] != monthTotals[ranked[j]] {
			return monthTotals[ranked[i]] > monthTotals[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > maxWebstrates {
		ranked = ranked[:maxWebstrates]
	}
	kept := make(map[string]bool, len(ranked))
	for _, webstrateID := range ranked {
		kept[webstrateID] = true
	}

	for day, dayScores := range dataDays {
		for webstrateID := range dayScores {
			if !kept[webstrateID] {
				delete(dayScores, webstrateID)
			}
		}
		if len(dayScores) == 0 {
			delete(dataDays, day)
		}
	}

	return dataDays, nil
}

func (s *queryService) GetWebstrateActivities(ctx context.Context, webstrateIDs []string, fromDate, toDate time.Time) (_ WebstrateActivities, svcErr *svcerrors.ServiceError) {
	defer s.observe(opWebstrateActivities, time.Now(), &svcErr)

	ids := make([]string, 0, len(webstrateIDs))
	for _, webstrateID := range webstrateIDs {
		if webstrateID != "" {
			ids = append(ids, webstrateID)
		}
	}
	if len(ids) == 0 {
		return nil, errMissingInput("no webstrateIds specified")
	}
	if fromDate.IsZero() {
		return nil, errMissingInput("no fromDate specified")
	}
	if toDate.IsZero() {
		toDate = s.now()
	}

	lower, err := timeid.Encode(fromDate)
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}
	upper, err := timeid.Encode(toDate)
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}

	records, err := s.clientEventStore.FindInRange(ctx, ids, lower, upper)
	if err != nil {
		return nil, errInternalClientEventStoreFailed(err)
	}

	activities := make(WebstrateActivities)
	for _, record := range records {
		activities[record.WebstrateID] = append(activities[record.WebstrateID], &ClientEventEntry{
			ClientEventRecord: *record,
			Timestamp:         timeid.Decode(record.ID),
		})
	}
	return activities, nil
}

func (s *queryService) GetRecentUserActivity(ctx context.Context, userID string) (_ *RecentUserActivity, svcErr *svcerrors.ServiceError) {
	defer s.observe(opRecentUserActivity, time.Now(), &svcErr)

	if userID == "" {
		return nil, errMissingInput("no userId specified")
	}

	ownLatest, err := s.clientEventStore.LatestByUser(ctx, userID)
	if err != nil {
		return nil, errInternalClientEventStoreFailed(err)
	}

	userActivity := make([]*UserActivityEntry, 0, len(ownLatest))
	for _, record := range ownLatest {
		userActivity = append(userActivity, &UserActivityEntry{
			WebstrateID: record.WebstrateID,
			Timestamp:   timeid.Decode(record.ID),
		})
	}
	sort.SliceStable(userActivity, func(i, j int) bool {
		if !userActivity[i].Timestamp.Equal(userActivity[j].Timestamp) {
			return userActivity[i].Timestamp.After(userActivity[j].Timestamp)
		}
		return userActivity[i].WebstrateID < userActivity[j].WebstrateID
	})

	result := &RecentUserActivity{
		UserActivity:      userActivity,
		WebstrateActivity: []*WebstrateActivityEntry{},
	}
	if len(userActivity) == 0 {
		return result, nil
	}

	webstrateIDs := make([]string, 0, len(userActivity))
	userTimestamps := make(map[string]time.Time, len(userActivity))
	for _, entry := range userActivity {
		webstrateIDs = append(webstrateIDs, entry.WebstrateID)
		userTimestamps[entry.WebstrateID] = entry.Timestamp
	}

	for _, entry := range userActivity {
		otherUsers, svcErr := s.recentWebstrateUsers(ctx, entry.WebstrateID, userID, entry.Timestamp)
		if svcErr != nil {
			return nil, svcErr
		}
		entry.OtherUsers = otherUsers
	}

	othersLatest, err := s.clientEventStore.LatestByOthers(ctx, webstrateIDs, userID)
	if err != nil {
		return nil, errInternalClientEventStoreFailed(err)
	}

	for _, record := range othersLatest {
		userTimestamp, ok := userTimestamps[record.WebstrateID]
		if !ok {
			continue
		}
		timestamp := timeid.Decode(record.ID)
		if !s.laterFilter(timestamp, userTimestamp) {
			continue
		}
		result.WebstrateActivity = append(result.WebstrateActivity, &WebstrateActivityEntry{
			WebstrateID:   record.WebstrateID,
			UserID:        record.UserID,
			Timestamp:     timestamp,
			UserTimestamp: userTimestamp,
		})
	}
	sort.SliceStable(result.WebstrateActivity, func(i, j int) bool {
		if !result.WebstrateActivity[i].Timestamp.Equal(result.WebstrateActivity[j].Timestamp) {
			return result.WebstrateActivity[i].Timestamp.After(result.WebstrateActivity[j].Timestamp)
		}
		return result.WebstrateActivity[i].WebstrateID < result.WebstrateActivity[j].WebstrateID
	})

	return result, nil
}

// recentWebstrateUsers returns the distinct other userIds active on the
// webstrate within the ±3h window around at (exclusive bounds). No matches is
// an empty set, never an error.
func (s *queryService) recentWebstrateUsers(ctx context.Context, webstrateID, userID string, at time.Time) ([]string, *svcerrors.ServiceError) {
	lower, err := timeid.Encode(at.Add(-nearbyWindow))
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}
	upper, err := timeid.Encode(at.Add(nearbyWindow))
	if err != nil {
		return nil, errInvalidTimestamp(err)
	}

	userIDs, err := s.clientEventStore.DistinctUsersInRange(ctx, webstrateID, lower, upper)
	if err != nil {
		return nil, errInternalClientEventStoreFailed(err)
	}

	otherUsers := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != userID {
			otherUsers = append(otherUsers, id)
		}
	}
	sort.Strings(otherUsers)
	return otherUsers, nil
}

func (s *queryService) observe(operation string, start time.Time, svcErr **svcerrors.ServiceError) {
	code := metrics.ValueNoError
	if *svcErr != nil {
		code = (*svcErr).Code
	}
	metricQueriesTotal.WithLabelValues(operation, code).Inc()
	metricQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
