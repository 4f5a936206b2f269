package http

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"webstrate-analytics/internal/queries"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// userIDPattern matches platform user ids of the form "provider:identifier",
// e.g. "github:1234" or "anonymous:".
var userIDPattern = regexp.MustCompile(`^[\w]{2,40}:[\w]{0,15}$`)

func parseIntParam(query url.Values, name string) (int, bool, error) {
	raw := query.Get(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

// parseTimeParam accepts RFC 3339 timestamps and epoch milliseconds.
func parseTimeParam(query url.Values, name string) (time.Time, bool, error) {
	raw := query.Get(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true, nil
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(millis).UTC(), true, nil
}

func sanitizedUserID(query url.Values) (string, error) {
	userID := query.Get("userId")
	if !userIDPattern.MatchString(userID) {
		return "", errInvalidUserID()
	}
	return userID, nil
}

type historyHandler struct {
	queryService queries.QueryService
}

func NewHistoryHandler(queryService queries.QueryService) AppHttpHandler {
	return &historyHandler{
		queryService: queryService,
	}
}

// Handle processes GET /history requests.
func (h *historyHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	minutes, ok, err := parseIntParam(r.URL.Query(), "minutes")
	if err != nil || !ok {
		return errInvalidQueryParam("minutes", err)
	}

	entries, svcErr := h.queryService.GetHistory(r.Context(), minutes)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, entries)
}

type monthDataHandler struct {
	queryService queries.QueryService
}

func NewMonthDataHandler(queryService queries.QueryService) AppHttpHandler {
	return &monthDataHandler{
		queryService: queryService,
	}
}

// Handle processes GET /month requests. Year and month default to the current
// ones when omitted; maxWebstrates defaults inside the query engine.
func (h *monthDataHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	userID, err := sanitizedUserID(query)
	if err != nil {
		return err
	}

	year, hasYear, err := parseIntParam(query, "year")
	if err != nil {
		return errInvalidQueryParam("year", err)
	}
	month, hasMonth, err := parseIntParam(query, "month")
	if err != nil {
		return errInvalidQueryParam("month", err)
	}
	maxWebstrates, _, err := parseIntParam(query, "maxWebstrates")
	if err != nil {
		return errInvalidQueryParam("maxWebstrates", err)
	}

	var referenceDate time.Time
	if hasYear || hasMonth {
		now := time.Now().UTC()
		if !hasYear {
			year = now.Year()
		}
		if !hasMonth {
			month = int(now.Month())
		}
		referenceDate = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	}

	data, svcErr := h.queryService.GetMonthData(r.Context(), userID, referenceDate, maxWebstrates)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, data)
}

type webstrateActivitiesHandler struct {
	queryService queries.QueryService
}

func NewWebstrateActivitiesHandler(queryService queries.QueryService) AppHttpHandler {
	return &webstrateActivitiesHandler{
		queryService: queryService,
	}
}

// Handle processes GET /activities requests. webstrateId may repeat.
func (h *webstrateActivitiesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	webstrateIDs := query["webstrateId"]
	fromDate, ok, err := parseTimeParam(query, "fromDate")
	if err != nil || !ok {
		return errInvalidQueryParam("fromDate", err)
	}
	toDate, _, err := parseTimeParam(query, "toDate")
	if err != nil {
		return errInvalidQueryParam("toDate", err)
	}

	activities, svcErr := h.queryService.GetWebstrateActivities(r.Context(), webstrateIDs, fromDate, toDate)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, activities)
}

type recentUserActivityHandler struct {
	queryService queries.QueryService
}

func NewRecentUserActivityHandler(queryService queries.QueryService) AppHttpHandler {
	return &recentUserActivityHandler{
		queryService: queryService,
	}
}

// Handle processes GET /recent-activity requests.
func (h *recentUserActivityHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	userID, err := sanitizedUserID(r.URL.Query())
	if err != nil {
		return err
	}

	result, svcErr := h.queryService.GetRecentUserActivity(r.Context(), userID)
	if svcErr != nil {
		return svcErr
	}
	return writeJSONResponse(w, http.StatusOK, result)
}
