package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/permitprep/backend/internal/domain/attempt"
	"github.com/permitprep/backend/internal/domain/category"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecordAttemptRequest struct {
	Category     string `json:"category" example:"traffic_signs"`
	Correct      bool   `json:"correct" example:"true"`
	TimeTakenSec int    `json:"time_taken_sec" example:"14"`
}

func (r *RecordAttemptRequest) Validate() error {
	if r.Category == "" {
		return errors.New("category is required")
	}
	if r.TimeTakenSec < 0 {
		return errors.New("time_taken_sec must not be negative")
	}
	return nil
}

type AttemptResponse struct {
	ID           string    `json:"id" example:"a1b2c3d4e5f6g7h8"`
	Category     string    `json:"category" example:"traffic_signs"`
	Correct      bool      `json:"correct" example:"true"`
	TimeTakenSec int       `json:"time_taken_sec" example:"14"`
	AnsweredAt   time.Time `json:"answered_at"`
}

func toAttemptResponse(a attempt.Attempt) AttemptResponse {
	return AttemptResponse{
		ID:           a.ID,
		Category:     string(a.Category),
		Correct:      a.Correct,
		TimeTakenSec: a.TimeTakenSec,
		AnsweredAt:   a.AnsweredAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// recordAttempt appends one answered-question event.
// @Summary      Record an attempt
// @Description  Append one answered question (category, correctness, time taken). Attempts are immutable once written.
// @Tags         Attempts
// @Accept       json
// @Produce      json
// @Param        body  body      RecordAttemptRequest  true  "Attempt to record"
// @Success      201   {object}  AttemptResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /attempts [post]
func (h *Handler) recordAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RecordAttemptRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cat, err := category.Parse(req.Category)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	a := attempt.New(cat, req.Correct, req.TimeTakenSec)
	if err := h.store.SaveAttempt(ctx, a); h.handleStoreError(w, err, "attempt") {
		return
	}

	// Accuracy just moved; regenerate the recommendation in the
	// background if it drifted past the cached snapshot.
	if h.recommendation.RefreshIfStale(ctx) {
		h.logger.Info("recommendation refresh queued", "category", cat)
	}

	respondJSON(w, http.StatusCreated, toAttemptResponse(*a))
}

// listRecentAttempts returns the latest attempts, newest first.
// @Summary      List recent attempts
// @Tags         Attempts
// @Produce      json
// @Param        limit  query     int  false  "Max attempts to return (default 50)"
// @Success      200    {array}   AttemptResponse
// @Failure      500    {object}  map[string]string
// @Router       /attempts [get]
func (h *Handler) listRecentAttempts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	attempts, err := h.store.ListRecentAttempts(r.Context(), limit)
	if h.handleStoreError(w, err, "attempts") {
		return
	}

	out := make([]AttemptResponse, len(attempts))
	for i, a := range attempts {
		out[i] = toAttemptResponse(a)
	}
	respondJSON(w, http.StatusOK, out)
}

// queryInt reads an integer query parameter, falling back to def when
// absent or unparsable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
