package http

import (
	"net/http"

	"webstrate-analytics/internal/queries"
	"webstrate-analytics/internal/shared/loggers"
	"webstrate-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(queryService queries.QueryService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	historyHandler := NewHistoryHandler(queryService)
	monthDataHandler := NewMonthDataHandler(queryService)
	webstrateActivitiesHandler := NewWebstrateActivitiesHandler(queryService)
	recentUserActivityHandler := NewRecentUserActivityHandler(queryService)
	wsQueryHandler := NewWSQueryHandler(queryService)

	// Routes
	router.Get("/history", errorHandlingAdapter(historyHandler))
	router.Get("/month", errorHandlingAdapter(monthDataHandler))
	router.Get("/activities", errorHandlingAdapter(webstrateActivitiesHandler))
	router.Get("/recent-activity", errorHandlingAdapter(recentUserActivityHandler))
	router.Get("/ws", wsQueryHandler.ServeHTTP)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
