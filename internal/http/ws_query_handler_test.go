package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"webstrate-analytics/internal/queries"
	querymocks "webstrate-analytics/internal/queries/mocks"
	"webstrate-analytics/internal/shared/svcerrors"
)

func dialTestServer(t *testing.T, handler *WSQueryHandler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, url, nil) //nolint:bodyclose // closed by websocket.Conn
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req map[string]any) map[string]any {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, wsjson.Write(ctx, conn, req))

	var resp map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &resp))
	return resp
}

func TestWSQueryHandler_MonthQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	expectedDate := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	mockQueryService.EXPECT().
		GetMonthData(gomock.Any(), "github:1", expectedDate, 10).
		Return(queries.MonthData{3: {"frontpage": 7}}, nil)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":   "month",
		"token":  "tok-1",
		"userId": "github:1",
		"options": map[string]any{
			"year":          2025,
			"month":         12,
			"maxWebstrates": 10,
		},
	})

	assert.Equal(t, "tok-1", resp["token"])
	require.NotNil(t, resp["payload"])
	assert.Nil(t, resp["error"])
}

func TestWSQueryHandler_ActivitiesQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	fromDate := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
	toDate := fromDate.Add(time.Hour)
	mockQueryService.EXPECT().
		GetWebstrateActivities(gomock.Any(), []string{"frontpage"}, fromDate, toDate).
		Return(queries.WebstrateActivities{}, nil)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":   "activities",
		"token":  "tok-2",
		"userId": "github:1",
		"options": map[string]any{
			"webstrateId": "frontpage",
			"fromDate":    fromDate.UnixMilli(),
			"toDate":      toDate.Format(time.RFC3339),
		},
	})

	assert.Equal(t, "tok-2", resp["token"])
	assert.Nil(t, resp["error"])
}

func TestWSQueryHandler_ActivitiesMissingInput(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":   "activities",
		"token":  "tok-3",
		"userId": "github:1",
		"options": map[string]any{
			"webstrateId": "frontpage",
		},
	})

	assert.Equal(t, "tok-3", resp["token"])
	assert.Equal(t, "Missing input", resp["error"])
}

func TestWSQueryHandler_InvalidUserID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":   "webstrates",
		"token":  "tok-4",
		"userId": "not a valid id",
	})

	assert.Equal(t, "Invalid userId", resp["error"])
}

func TestWSQueryHandler_AnonymousDefault(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	mockQueryService.EXPECT().
		GetRecentUserActivity(gomock.Any(), "anonymous:").
		Return(&queries.RecentUserActivity{
			UserActivity:      []*queries.UserActivityEntry{},
			WebstrateActivity: []*queries.WebstrateActivityEntry{},
		}, nil)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":  "webstrates",
		"token": "tok-5",
	})

	assert.Equal(t, "tok-5", resp["token"])
	assert.Nil(t, resp["error"])
}

func TestWSQueryHandler_ServiceErrorIsClientSafe(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	mockQueryService.EXPECT().
		GetHistory(gomock.Any(), 30).
		Return(nil, svcerrors.NewInternalError("QRY_9000", assert.AnError))

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":    "history",
		"token":   "tok-6",
		"userId":  "github:1",
		"options": map[string]any{"minutes": 30},
	})

	assert.Equal(t, "tok-6", resp["token"])
	assert.Equal(t, "internal server error", resp["error"])
}

func TestWSQueryHandler_MalformedJSON(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))

	var resp map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &resp))
	assert.Equal(t, "Unable to parse JSON", resp["error"])
}

func TestWSQueryHandler_UnknownType(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockQueryService := querymocks.NewMockQueryService(ctrl)

	conn := dialTestServer(t, NewWSQueryHandler(mockQueryService))

	resp := roundTrip(t, conn, map[string]any{
		"type":   "nonsense",
		"token":  "tok-7",
		"userId": "github:1",
	})

	assert.Equal(t, "Unknown query type", resp["error"])
}
