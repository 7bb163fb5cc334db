// internal/api/routes.go
package api

import "net/http"

// RegisterRoutes attaches all API routes to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Attempts
	mux.HandleFunc("POST /attempts", h.recordAttempt)
	mux.HandleFunc("GET /attempts", h.listRecentAttempts)

	// Stats
	mux.HandleFunc("GET /stats/daily", h.dailyStats)
	mux.HandleFunc("GET /stats/weekly", h.weeklyStats)
	mux.HandleFunc("GET /stats/accuracy-trend", h.accuracyTrend)
	mux.HandleFunc("GET /stats/study-time-trend", h.studyTimeTrend)
	mux.HandleFunc("GET /stats/categories", h.categoryPerformance)
	mux.HandleFunc("GET /stats/categories/{category}/trend", h.categoryTrend)

	// Diagnostic test
	mux.HandleFunc("POST /diagnostic", h.startDiagnostic)
	mux.HandleFunc("POST /diagnostic/score", h.scoreDiagnostic)

	// Recommendation
	mux.HandleFunc("GET /recommendation", h.getRecommendation)
	mux.HandleFunc("POST /recommendation/refresh", h.refreshRecommendation)
	mux.HandleFunc("DELETE /recommendation", h.deleteRecommendation)
	mux.HandleFunc("GET /recommendation/staleness", h.recommendationStaleness)

	// Export
	mux.HandleFunc("GET /export", h.exportJSON)
	mux.HandleFunc("GET /export/xlsx", h.exportXLSX)
}
