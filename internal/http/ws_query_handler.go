package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"webstrate-analytics/internal/queries"
	"webstrate-analytics/internal/shared/loggers"
)

const anonymousUserID = "anonymous:"

// wsQueryOptions carries the per-type query arguments. FromDate and ToDate are
// untyped because clients send either RFC 3339 strings or epoch milliseconds.
type wsQueryOptions struct {
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	MaxWebstrates int    `json:"maxWebstrates"`
	WebstrateID   string `json:"webstrateId"`
	FromDate      any    `json:"fromDate"`
	ToDate        any    `json:"toDate"`
	Minutes       int    `json:"minutes"`
}

type wsQueryRequest struct {
	Type    string         `json:"type"`
	Token   string         `json:"token"`
	UserID  string         `json:"userId"`
	Options wsQueryOptions `json:"options"`
}

// wsQueryResponse echoes the request token so clients can match answers to
// in-flight queries over the shared connection.
type wsQueryResponse struct {
	Token   string `json:"token,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WSQueryHandler serves the WebSocket query endpoint. Each connection carries
// independent request/response pairs of the form
// {type, token, userId, options} -> {token, payload} | {token, error}.
type WSQueryHandler struct {
	queryService queries.QueryService
}

func NewWSQueryHandler(queryService queries.QueryService) *WSQueryHandler {
	return &WSQueryHandler{
		queryService: queryService,
	}
}

func (h *WSQueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.CloseNow()
	metricWSConnectionsTotal.Inc()

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			// Closed connection or cancelled request context.
			return
		}

		var req wsQueryRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.respond(ctx, conn, wsQueryResponse{Error: "Unable to parse JSON"})
			continue
		}

		h.respond(ctx, conn, h.answer(ctx, req))
	}
}

func (h *WSQueryHandler) answer(ctx context.Context, req wsQueryRequest) wsQueryResponse {
	userID := req.UserID
	if userID == "" {
		userID = anonymousUserID
	}
	// The id ends up inside store filters, so sanitize before dispatch.
	if !userIDPattern.MatchString(userID) {
		return wsQueryResponse{Token: req.Token, Error: "Invalid userId"}
	}

	metricWSQueriesTotal.WithLabelValues(req.Type).Inc()

	switch req.Type {
	case "history":
		entries, svcErr := h.queryService.GetHistory(ctx, req.Options.Minutes)
		if svcErr != nil {
			return wsQueryResponse{Token: req.Token, Error: svcErr.Message}
		}
		return wsQueryResponse{Token: req.Token, Payload: entries}

	case "month":
		now := time.Now().UTC()
		year := req.Options.Year
		if year == 0 {
			year = now.Year()
		}
		month := req.Options.Month
		if month == 0 {
			month = int(now.Month())
		}
		referenceDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

		data, svcErr := h.queryService.GetMonthData(ctx, userID, referenceDate, req.Options.MaxWebstrates)
		if svcErr != nil {
			return wsQueryResponse{Token: req.Token, Error: svcErr.Message}
		}
		return wsQueryResponse{Token: req.Token, Payload: data}

	case "activities":
		fromDate, okFrom := flexibleTime(req.Options.FromDate)
		toDate, okTo := flexibleTime(req.Options.ToDate)
		if req.Options.WebstrateID == "" || !okFrom || !okTo {
			return wsQueryResponse{Token: req.Token, Error: "Missing input"}
		}

		activities, svcErr := h.queryService.GetWebstrateActivities(ctx, []string{req.Options.WebstrateID}, fromDate, toDate)
		if svcErr != nil {
			return wsQueryResponse{Token: req.Token, Error: svcErr.Message}
		}
		return wsQueryResponse{Token: req.Token, Payload: activities}

	case "webstrates":
		result, svcErr := h.queryService.GetRecentUserActivity(ctx, userID)
		if svcErr != nil {
			return wsQueryResponse{Token: req.Token, Error: svcErr.Message}
		}
		return wsQueryResponse{Token: req.Token, Payload: result}

	default:
		return wsQueryResponse{Token: req.Token, Error: "Unknown query type"}
	}
}

func (h *WSQueryHandler) respond(ctx context.Context, conn *websocket.Conn, resp wsQueryResponse) {
	if err := wsjson.Write(ctx, conn, resp); err != nil {
		loggers.Ctx(ctx).Debug().Err(err).Msg("websocket write failed")
	}
}

// flexibleTime converts a decoded JSON date value into a time. Strings are
// parsed as RFC 3339 or epoch milliseconds, numbers as epoch milliseconds.
func flexibleTime(v any) (time.Time, bool) {
	switch value := v.(type) {
	case string:
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t, true
		}
		if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
			return time.UnixMilli(millis).UTC(), true
		}
		return time.Time{}, false
	case float64:
		return time.UnixMilli(int64(value)).UTC(), true
	default:
		return time.Time{}, false
	}
}
