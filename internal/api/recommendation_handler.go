package api

import "net/http"

// ── Response types ──────────────────────────────────────────────────────────

type RecommendationResponse struct {
	Text      string `json:"text" example:"Focus on right-of-way rules this week."`
	Cached    bool   `json:"cached" example:"true"`
	Staleness string `json:"staleness" example:"3h ago"`
}

type RefreshResponse struct {
	Queued bool `json:"queued" example:"true"`
}

type StalenessResponse struct {
	Staleness string `json:"staleness" example:"Just now"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getRecommendation returns the current study recommendation.
// @Summary      Get the study recommendation
// @Description  Returns the cached recommendation when it is fresh (less than 24h old and accuracy has not drifted more than 5 points per category); otherwise generates a new one.
// @Tags         Recommendation
// @Produce      json
// @Success      200  {object}  RecommendationResponse
// @Failure      502  {object}  map[string]string
// @Router       /recommendation [get]
func (h *Handler) getRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	text, cached, err := h.recommendation.Current(ctx)
	if err != nil {
		h.logger.Error("failed to produce recommendation", "error", err)
		respondError(w, http.StatusBadGateway, "recommendation unavailable")
		return
	}

	respondJSON(w, http.StatusOK, RecommendationResponse{
		Text:      text,
		Cached:    cached,
		Staleness: h.recommendation.Staleness(ctx),
	})
}

// refreshRecommendation queues a background regeneration when
// accuracy has drifted from the cached snapshot.
// @Summary      Refresh the recommendation if stale
// @Tags         Recommendation
// @Produce      json
// @Success      202  {object}  RefreshResponse
// @Router       /recommendation/refresh [post]
func (h *Handler) refreshRecommendation(w http.ResponseWriter, r *http.Request) {
	queued := h.recommendation.RefreshIfStale(r.Context())
	respondJSON(w, http.StatusAccepted, RefreshResponse{Queued: queued})
}

// deleteRecommendation unconditionally purges the cached recommendation.
// @Summary      Invalidate the recommendation cache
// @Tags         Recommendation
// @Success      204
// @Router       /recommendation [delete]
func (h *Handler) deleteRecommendation(w http.ResponseWriter, r *http.Request) {
	h.recommendation.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// recommendationStaleness reports the age of the cached recommendation.
// @Summary      Recommendation staleness
// @Description  Human-readable age of the cached text: "Never", "Just now", "{m}m ago", "{h}h ago", or "{d}d ago".
// @Tags         Recommendation
// @Produce      json
// @Success      200  {object}  StalenessResponse
// @Router       /recommendation/staleness [get]
func (h *Handler) recommendationStaleness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, StalenessResponse{
		Staleness: h.recommendation.Staleness(r.Context()),
	})
}
