package api

import (
	"net/http"

	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/domain/category"
)

// ── Response types ──────────────────────────────────────────────────────────

type DailyBucketResponse struct {
	Date              string  `json:"date" example:"2025-06-18"`
	QuestionsAnswered int     `json:"questions_answered" example:"24"`
	CorrectAnswers    int     `json:"correct_answers" example:"19"`
	Accuracy          float64 `json:"accuracy" example:"0.79"`
	TimeSpentSec      int     `json:"time_spent_sec" example:"480"`
}

type WeeklyBucketResponse struct {
	WeekStart         string  `json:"week_start" example:"2025-06-16"`
	QuestionsAnswered int     `json:"questions_answered" example:"120"`
	Accuracy          float64 `json:"accuracy" example:"0.81"`
	TimeSpentSec      int     `json:"time_spent_sec" example:"2700"`
	DaysStudied       int     `json:"days_studied" example:"5"`
}

type CategoryTrendPointResponse struct {
	Date     string  `json:"date" example:"2025-06-18"`
	Accuracy float64 `json:"accuracy" example:"0.67"`
	Attempts int     `json:"attempts" example:"6"`
}

type CategoryPerformanceResponse struct {
	Category string  `json:"category" example:"parking"`
	Name     string  `json:"name" example:"Parking"`
	Accuracy float64 `json:"accuracy" example:"0.72"`
	Attempts int     `json:"attempts" example:"31"`
}

const dateLayout = "2006-01-02"

func toDailyResponses(buckets []analytics.DailyBucket) []DailyBucketResponse {
	out := make([]DailyBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = DailyBucketResponse{
			Date:              b.Date.Format(dateLayout),
			QuestionsAnswered: b.QuestionsAnswered,
			CorrectAnswers:    b.CorrectAnswers,
			Accuracy:          b.Accuracy,
			TimeSpentSec:      int(b.TotalTimeSpent.Seconds()),
		}
	}
	return out
}

// ── Handlers ────────────────────────────────────────────────────────────────

// dailyStats returns one bucket per calendar day of the window,
// zero-filled for days without attempts.
// @Summary      Daily study stats
// @Description  Dense series: exactly `days` buckets, oldest first, zero-filled for idle days.
// @Tags         Stats
// @Produce      json
// @Param        days  query     int  false  "Window size in days (default 30)"
// @Success      200   {array}   DailyBucketResponse
// @Router       /stats/daily [get]
func (h *Handler) dailyStats(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", analytics.DefaultDailyWindow)
	respondJSON(w, http.StatusOK, toDailyResponses(h.stats.DailyStats(r.Context(), days)))
}

// weeklyStats returns per-week aggregates.
// @Summary      Weekly study stats
// @Description  Sparse series: weeks without attempts are not emitted (unlike /stats/daily).
// @Tags         Stats
// @Produce      json
// @Param        weeks  query     int  false  "Window size in weeks (default 12)"
// @Success      200    {array}   WeeklyBucketResponse
// @Router       /stats/weekly [get]
func (h *Handler) weeklyStats(w http.ResponseWriter, r *http.Request) {
	weeks := queryInt(r, "weeks", analytics.DefaultWeeklyWindow)

	buckets := h.stats.WeeklyStats(r.Context(), weeks)
	out := make([]WeeklyBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = WeeklyBucketResponse{
			WeekStart:         b.WeekStart.Format(dateLayout),
			QuestionsAnswered: b.QuestionsAnswered,
			Accuracy:          b.Accuracy,
			TimeSpentSec:      int(b.TimeSpent.Seconds()),
			DaysStudied:       b.DaysStudied,
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// accuracyTrend returns daily stats for days with at least one attempt.
// @Summary      Accuracy trend
// @Tags         Stats
// @Produce      json
// @Param        days  query     int  false  "Window size in days (default 30)"
// @Success      200   {array}   DailyBucketResponse
// @Router       /stats/accuracy-trend [get]
func (h *Handler) accuracyTrend(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", analytics.DefaultDailyWindow)
	respondJSON(w, http.StatusOK, toDailyResponses(h.stats.AccuracyTrend(r.Context(), days)))
}

// studyTimeTrend returns daily stats for days with recorded study time.
// @Summary      Study time trend
// @Tags         Stats
// @Produce      json
// @Param        days  query     int  false  "Window size in days (default 30)"
// @Success      200   {array}   DailyBucketResponse
// @Router       /stats/study-time-trend [get]
func (h *Handler) studyTimeTrend(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", analytics.DefaultDailyWindow)
	respondJSON(w, http.StatusOK, toDailyResponses(h.stats.StudyTimeTrend(r.Context(), days)))
}

// categoryPerformance returns lifetime accuracy per category.
// @Summary      Category performance
// @Description  One entry per category with at least one attempt, in canonical category order.
// @Tags         Stats
// @Produce      json
// @Success      200  {array}  CategoryPerformanceResponse
// @Router       /stats/categories [get]
func (h *Handler) categoryPerformance(w http.ResponseWriter, r *http.Request) {
	perf := h.stats.CategoryPerformance(r.Context())

	out := make([]CategoryPerformanceResponse, 0, len(perf))
	for _, cat := range category.All() {
		p, ok := perf[cat]
		if !ok {
			continue
		}
		out = append(out, CategoryPerformanceResponse{
			Category: string(cat),
			Name:     cat.DisplayName(),
			Accuracy: p.Accuracy,
			Attempts: p.Attempts,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// categoryTrend returns the per-day accuracy series for one category.
// @Summary      Category trend
// @Description  Sparse series: one point per day with at least one attempt in the category.
// @Tags         Stats
// @Produce      json
// @Param        category  path      string  true   "Category key, e.g. traffic_signs"
// @Param        days      query     int     false  "Window size in days (default 30)"
// @Success      200       {array}   CategoryTrendPointResponse
// @Failure      400       {object}  map[string]string
// @Router       /stats/categories/{category}/trend [get]
func (h *Handler) categoryTrend(w http.ResponseWriter, r *http.Request) {
	cat, err := category.Parse(r.PathValue("category"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	days := queryInt(r, "days", analytics.DefaultDailyWindow)

	points := h.stats.CategoryTrend(r.Context(), cat, days)
	out := make([]CategoryTrendPointResponse, len(points))
	for i, p := range points {
		out[i] = CategoryTrendPointResponse{
			Date:     p.Date.Format(dateLayout),
			Accuracy: p.Accuracy,
			Attempts: p.Attempts,
		}
	}
	respondJSON(w, http.StatusOK, out)
}
