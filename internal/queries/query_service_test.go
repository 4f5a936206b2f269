package queries

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"webstrate-analytics/internal/models"
	"webstrate-analytics/internal/shared/timeid"
	storemocks "webstrate-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, now time.Time) (*queryService, *storemocks.MockActivityStore, *storemocks.MockClientEventStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	activityStore := storemocks.NewMockActivityStore(ctrl)
	clientEventStore := storemocks.NewMockClientEventStore(ctrl)

	service := &queryService{
		activityStore:    activityStore,
		clientEventStore: clientEventStore,
		laterFilter:      CompatLaterFilter,
		now:              func() time.Time { return now },
	}
	return service, activityStore, clientEventStore
}

func mustNewID(t *testing.T, at time.Time) timeid.ID {
	t.Helper()
	id, err := timeid.New(at)
	require.NoError(t, err)
	return id
}

func activityRecordAt(t *testing.T, at time.Time, webstrateID string, users map[string]models.UserCounts) *models.ActivityRecord {
	t.Helper()
	return &models.ActivityRecord{
		ID:          mustNewID(t, at),
		WebstrateID: webstrateID,
		Users:       users,
	}
}

func clientEventAt(t *testing.T, at time.Time, kind models.EventKind, webstrateID, userID string) *models.ClientEventRecord {
	t.Helper()
	return &models.ClientEventRecord{
		ID:          mustNewID(t, at),
		Kind:        kind,
		WebstrateID: webstrateID,
		UserID:      userID,
	}
}

func TestGetHistory_WindowBound(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 15, 0, 0, 0, time.UTC)
	service, activityStore, _ := newTestService(t, now)
	ctx := context.Background()

	all := []*models.ActivityRecord{
		activityRecordAt(t, now.Add(-45*time.Minute), "a", map[string]models.UserCounts{"github:1": {Dom: 1}}),
		activityRecordAt(t, now.Add(-20*time.Minute), "a", map[string]models.UserCounts{"github:1": {Dom: 2}}),
		activityRecordAt(t, now.Add(-5*time.Minute), "b", map[string]models.UserCounts{"github:2": {Signal: 3}}),
	}

	// Replay the store's lower-bound comparison so the computed bound is what
	// decides which records come back.
	activityStore.EXPECT().
		FindSince(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, lower timeid.ID) ([]*models.ActivityRecord, error) {
			var matched []*models.ActivityRecord
			for _, record := range all {
				if bytes.Compare(record.ID[:], lower[:]) >= 0 {
					matched = append(matched, record)
				}
			}
			return matched, nil
		})

	entries, svcErr := service.GetHistory(ctx, 30)
	require.Nil(t, svcErr)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].WebstrateID)
	assert.Equal(t, now.Add(-20*time.Minute), entries[0].Timestamp)
	assert.Equal(t, "b", entries[1].WebstrateID)
	assert.Equal(t, now.Add(-5*time.Minute), entries[1].Timestamp)
}

func TestGetHistory_RejectsNonPositiveWindow(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, time.Now())

	_, svcErr := service.GetHistory(context.Background(), 0)
	require.NotNil(t, svcErr)
	assert.Equal(t, codeMissingInput, svcErr.Code)
}

func TestGetHistory_StoreFailure(t *testing.T) {
	t.Parallel()

	service, activityStore, _ := newTestService(t, time.Now())
	ctx := context.Background()

	activityStore.EXPECT().
		FindSince(ctx, gomock.Any()).
		Return(nil, errors.New("connection reset"))

	_, svcErr := service.GetHistory(ctx, 30)
	require.NotNil(t, svcErr)
	assert.Equal(t, codeInternalActivityStoreFailed, svcErr.Code)
}

func TestGetMonthData_RankingCutoffIsGlobal(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	service, activityStore, _ := newTestService(t, now)
	ctx := context.Background()

	day := func(d int) time.Time {
		return time.Date(2025, 12, d, 10, 0, 0, 0, time.UTC)
	}

	// "busy" scores 9 across three days, "quiet" scores 2 on one day. With a
	// cutoff of one webstrate, "quiet" is dropped everywhere and its only day
	// disappears, even though it had no competition that day.
	records := []*models.ActivityRecord{
		activityRecordAt(t, day(3), "busy", map[string]models.UserCounts{
			"github:1": {Signal: 1, Dom: 1},
			"github:2": {Dom: 1},
		}),
		activityRecordAt(t, day(10), "busy", map[string]models.UserCounts{"github:1": {Dom: 3}}),
		activityRecordAt(t, day(17), "busy", map[string]models.UserCounts{"github:3": {Signal: 3}}),
		activityRecordAt(t, day(24), "quiet", map[string]models.UserCounts{"github:1": {Dom: 2}}),
	}

	monthStart := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	lower, err := timeid.Encode(monthStart)
	require.NoError(t, err)
	upper, err := timeid.Encode(monthStart.AddDate(0, 1, 0))
	require.NoError(t, err)

	activityStore.EXPECT().
		FindRangeForUser(ctx, lower, upper, "github:1").
		Return(records, nil)

	data, svcErr := service.GetMonthData(ctx, "github:1", now, 1)
	require.Nil(t, svcErr)

	assert.Equal(t, MonthData{
		3:  {"busy": 3},
		10: {"busy": 3},
		17: {"busy": 3},
	}, data)
}

func TestGetMonthData_SumsAllUsersPerDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	service, activityStore, _ := newTestService(t, now)
	ctx := context.Background()

	// Two flush intervals on the same day add up, and every participating
	// user's counts contribute, not just the querying user's.
	at := time.Date(2025, 12, 5, 9, 0, 0, 0, time.UTC)
	records := []*models.ActivityRecord{
		activityRecordAt(t, at, "frontpage", map[string]models.UserCounts{
			"github:1": {Signal: 2},
			"github:2": {Dom: 4},
		}),
		activityRecordAt(t, at.Add(time.Minute), "frontpage", map[string]models.UserCounts{
			"github:1": {Dom: 1},
		}),
	}

	activityStore.EXPECT().
		FindRangeForUser(ctx, gomock.Any(), gomock.Any(), "github:1").
		Return(records, nil)

	data, svcErr := service.GetMonthData(ctx, "github:1", now, 0)
	require.Nil(t, svcErr)
	assert.Equal(t, MonthData{5: {"frontpage": 7}}, data)
}

func TestGetMonthData_RequiresUserID(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, time.Now())

	_, svcErr := service.GetMonthData(context.Background(), "", time.Now(), 0)
	require.NotNil(t, svcErr)
	assert.Equal(t, codeMissingInput, svcErr.Code)
}

func TestGetMonthData_ZeroReferenceDateDefaultsToCurrentMonth(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)
	service, activityStore, _ := newTestService(t, now)
	ctx := context.Background()

	lower, err := timeid.Encode(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	upper, err := timeid.Encode(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	activityStore.EXPECT().
		FindRangeForUser(ctx, lower, upper, "github:1").
		Return(nil, nil)

	data, svcErr := service.GetMonthData(ctx, "github:1", time.Time{}, 0)
	require.Nil(t, svcErr)
	assert.Empty(t, data)
}

func TestGetWebstrateActivities_ExclusiveBounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	service, _, clientEventStore := newTestService(t, now)
	ctx := context.Background()

	fromDate := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
	toDate := time.Date(2025, 12, 20, 11, 0, 0, 0, time.UTC)

	all := []*models.ClientEventRecord{
		clientEventAt(t, fromDate, models.KindClientJoin, "frontpage", "github:1"),
		clientEventAt(t, fromDate.Add(time.Second), models.KindClientJoin, "frontpage", "github:2"),
		clientEventAt(t, toDate.Add(-time.Second), models.KindClientPart, "frontpage", "github:2"),
		clientEventAt(t, toDate, models.KindClientPart, "frontpage", "github:1"),
	}

	// Replay the store's $gt/$lt comparison against the canonical bounds.
	clientEventStore.EXPECT().
		FindInRange(ctx, []string{"frontpage"}, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, lower, upper timeid.ID) ([]*models.ClientEventRecord, error) {
			var matched []*models.ClientEventRecord
			for _, record := range all {
				if bytes.Compare(record.ID[:], lower[:]) > 0 && bytes.Compare(record.ID[:], upper[:]) < 0 {
					matched = append(matched, record)
				}
			}
			return matched, nil
		})

	activities, svcErr := service.GetWebstrateActivities(ctx, []string{"frontpage"}, fromDate, toDate)
	require.Nil(t, svcErr)
	require.Len(t, activities["frontpage"], 2)
	assert.Equal(t, "github:2", activities["frontpage"][0].UserID)
	assert.Equal(t, models.KindClientJoin, activities["frontpage"][0].Kind)
	assert.Equal(t, "github:2", activities["frontpage"][1].UserID)
	assert.Equal(t, models.KindClientPart, activities["frontpage"][1].Kind)
}

func TestGetWebstrateActivities_GroupsPerWebstrate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	service, _, clientEventStore := newTestService(t, now)
	ctx := context.Background()

	fromDate := now.Add(-time.Hour)
	records := []*models.ClientEventRecord{
		clientEventAt(t, fromDate.Add(5*time.Minute), models.KindClientJoin, "a", "github:1"),
		clientEventAt(t, fromDate.Add(10*time.Minute), models.KindClientJoin, "b", "github:1"),
		clientEventAt(t, fromDate.Add(15*time.Minute), models.KindClientPart, "a", "github:1"),
	}

	clientEventStore.EXPECT().
		FindInRange(ctx, []string{"a", "b"}, gomock.Any(), gomock.Any()).
		Return(records, nil)

	activities, svcErr := service.GetWebstrateActivities(ctx, []string{"a", "b"}, fromDate, time.Time{})
	require.Nil(t, svcErr)
	require.Len(t, activities, 2)
	require.Len(t, activities["a"], 2)
	require.Len(t, activities["b"], 1)
	assert.True(t, activities["a"][0].Timestamp.Before(activities["a"][1].Timestamp))
}

func TestGetWebstrateActivities_RequiresInput(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, time.Now())
	ctx := context.Background()

	_, svcErr := service.GetWebstrateActivities(ctx, nil, time.Now(), time.Time{})
	require.NotNil(t, svcErr)
	assert.Equal(t, codeMissingInput, svcErr.Code)

	_, svcErr = service.GetWebstrateActivities(ctx, []string{""}, time.Now(), time.Time{})
	require.NotNil(t, svcErr)
	assert.Equal(t, codeMissingInput, svcErr.Code)

	_, svcErr = service.GetWebstrateActivities(ctx, []string{"frontpage"}, time.Time{}, time.Time{})
	require.NotNil(t, svcErr)
	assert.Equal(t, codeMissingInput, svcErr.Code)
}

func TestGetRecentUserActivity_CorrelatesOtherUsers(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	service, _, clientEventStore := newTestService(t, now)
	ctx := context.Background()

	ownA := now.Add(-2 * time.Hour)
	ownB := now.Add(-30 * time.Minute)

	clientEventStore.EXPECT().
		LatestByUser(ctx, "github:1").
		Return([]*models.ClientEventRecord{
			clientEventAt(t, ownA, models.KindClientPart, "a", "github:1"),
			clientEventAt(t, ownB, models.KindClientPart, "b", "github:1"),
		}, nil)

	clientEventStore.EXPECT().
		DistinctUsersInRange(ctx, "b", gomock.Any(), gomock.Any()).
		Return([]string{"github:1", "github:3", "github:2"}, nil)
	clientEventStore.EXPECT().
		DistinctUsersInRange(ctx, "a", gomock.Any(), gomock.Any()).
		Return([]string{"github:1"}, nil)

	clientEventStore.EXPECT().
		LatestByOthers(ctx, []string{"b", "a"}, "github:1").
		Return([]*models.ClientEventRecord{
			clientEventAt(t, ownA.Add(45*time.Minute), models.KindClientJoin, "a", "github:2"),
		}, nil)

	result, svcErr := service.GetRecentUserActivity(ctx, "github:1")
	require.Nil(t, svcErr)

	// Own trail sorted most recent first, with the user itself removed from
	// the nearby set.
	require.Len(t, result.UserActivity, 2)
	assert.Equal(t, "b", result.UserActivity[0].WebstrateID)
	assert.Equal(t, []string{"github:2", "github:3"}, result.UserActivity[0].OtherUsers)
	assert.Equal(t, "a", result.UserActivity[1].WebstrateID)
	assert.Empty(t, result.UserActivity[1].OtherUsers)

	require.Len(t, result.WebstrateActivity, 1)
	assert.Equal(t, "a", result.WebstrateActivity[0].WebstrateID)
	assert.Equal(t, "github:2", result.WebstrateActivity[0].UserID)
	assert.Equal(t, ownA.Add(45*time.Minute), result.WebstrateActivity[0].Timestamp)
	assert.Equal(t, ownA, result.WebstrateActivity[0].UserTimestamp)
}

func TestGetRecentUserActivity_StrictFilterDropsCloseEvents(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	service, _, clientEventStore := newTestService(t, now)
	service.laterFilter = StrictLaterFilter
	ctx := context.Background()

	own := now.Add(-time.Hour)

	clientEventStore.EXPECT().
		LatestByUser(ctx, "github:1").
		Return([]*models.ClientEventRecord{
			clientEventAt(t, own, models.KindClientPart, "a", "github:1"),
		}, nil)
	clientEventStore.EXPECT().
		DistinctUsersInRange(ctx, "a", gomock.Any(), gomock.Any()).
		Return(nil, nil)
	clientEventStore.EXPECT().
		LatestByOthers(ctx, []string{"a"}, "github:1").
		Return([]*models.ClientEventRecord{
			clientEventAt(t, own.Add(3*time.Minute), models.KindClientJoin, "a", "github:2"),
		}, nil)

	result, svcErr := service.GetRecentUserActivity(ctx, "github:1")
	require.Nil(t, svcErr)
	assert.Empty(t, result.WebstrateActivity)
}

func TestGetRecentUserActivity_NoOwnEvents(t *testing.T) {
	t.Parallel()

	service, _, clientEventStore := newTestService(t, time.Now())
	ctx := context.Background()

	clientEventStore.EXPECT().
		LatestByUser(ctx, "github:1").
		Return(nil, nil)

	result, svcErr := service.GetRecentUserActivity(ctx, "github:1")
	require.Nil(t, svcErr)
	assert.Empty(t, result.UserActivity)
	assert.Empty(t, result.WebstrateActivity)
}

func TestGetRecentUserActivity_RequiresUserID(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestService(t, time.Now())

	_, svcErr := service.GetRecentUserActivity(context.Background(), "")
	require.NotNil(t, svcErr)
	assert.Equal(t, codeMissingInput, svcErr.Code)
}

func TestGetRecentUserActivity_StoreFailure(t *testing.T) {
	t.Parallel()

	service, _, clientEventStore := newTestService(t, time.Now())
	ctx := context.Background()

	clientEventStore.EXPECT().
		LatestByUser(ctx, "github:1").
		Return(nil, errors.New("cursor timeout"))

	_, svcErr := service.GetRecentUserActivity(ctx, "github:1")
	require.NotNil(t, svcErr)
	assert.Equal(t, codeInternalClientEventStoreFailed, svcErr.Code)
}
