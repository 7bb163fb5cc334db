package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/permitprep/backend/internal/diagnostic"
	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/domain/question"
)

// ── Request / Response types ────────────────────────────────────────────────

type DiagnosticQuestion struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Category     string   `json:"category"`
	Explanation  string   `json:"explanation,omitempty"`
	ImageName    string   `json:"image_name,omitempty"`
}

type StartDiagnosticResponse struct {
	Questions     []DiagnosticQuestion `json:"questions"`
	PassThreshold int                  `json:"pass_threshold" example:"12"`
}

type DiagnosticAnswer struct {
	QuestionID string `json:"question_id"`
	Category   string `json:"category" example:"parking"`
	Correct    bool   `json:"correct"`
}

type ScoreDiagnosticRequest struct {
	Answers      []DiagnosticAnswer `json:"answers"`
	TimeTakenSec int                `json:"time_taken_sec" example:"540"`
}

func (r *ScoreDiagnosticRequest) Validate() error {
	if len(r.Answers) == 0 {
		return errors.New("answers are required")
	}
	if r.TimeTakenSec < 0 {
		return errors.New("time_taken_sec must not be negative")
	}
	for i, a := range r.Answers {
		if _, err := category.Parse(a.Category); err != nil {
			return fmt.Errorf("answer %d: %w", i, err)
		}
	}
	return nil
}

type CategoryScoreResponse struct {
	Category string `json:"category" example:"parking"`
	Name     string `json:"name" example:"Parking"`
	Correct  int    `json:"correct" example:"1"`
	Total    int    `json:"total" example:"2"`
	IsWeak   bool   `json:"is_weak" example:"true"`
}

type DiagnosticResultResponse struct {
	Score          int                     `json:"score" example:"11"`
	TotalQuestions int                     `json:"total_questions" example:"15"`
	PassThreshold  int                     `json:"pass_threshold" example:"12"`
	Passed         bool                    `json:"passed" example:"false"`
	GapPoints      int                     `json:"gap_points" example:"1"`
	TimeTakenSec   int                     `json:"time_taken_sec" example:"540"`
	Breakdown      []CategoryScoreResponse `json:"breakdown"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startDiagnostic selects the questions for a new diagnostic test.
// @Summary      Start a diagnostic test
// @Description  Returns 15 questions: a shuffled sample of the dedicated diagnostic pool, or a per-category quota draw from the general pool when the dedicated pool is unavailable.
// @Tags         Diagnostic
// @Produce      json
// @Success      200  {object}  StartDiagnosticResponse
// @Failure      500  {object}  map[string]string
// @Router       /diagnostic [post]
func (h *Handler) startDiagnostic(w http.ResponseWriter, r *http.Request) {
	selected := diagnostic.SelectQuestions(h.diagnosticPool, h.generalPool)
	if len(selected) == 0 {
		h.logger.Error("no diagnostic questions available")
		respondError(w, http.StatusInternalServerError, "no questions available")
		return
	}

	out := make([]DiagnosticQuestion, len(selected))
	for i, q := range selected {
		out[i] = toDiagnosticQuestion(q)
	}
	respondJSON(w, http.StatusOK, StartDiagnosticResponse{
		Questions:     out,
		PassThreshold: diagnostic.PassThreshold,
	})
}

// scoreDiagnostic scores a completed diagnostic test.
// @Summary      Score a diagnostic test
// @Description  Counts correct answers against the fixed pass threshold and flags categories below 70% as weak.
// @Tags         Diagnostic
// @Accept       json
// @Produce      json
// @Param        body  body      ScoreDiagnosticRequest  true  "Answer batch"
// @Success      200   {object}  DiagnosticResultResponse
// @Failure      400   {object}  map[string]string
// @Router       /diagnostic/score [post]
func (h *Handler) scoreDiagnostic(w http.ResponseWriter, r *http.Request) {
	var req ScoreDiagnosticRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answers := make([]diagnostic.Answer, len(req.Answers))
	for i, a := range req.Answers {
		cat, _ := category.Parse(a.Category) // validated above
		answers[i] = diagnostic.Answer{
			Question: question.Question{ID: a.QuestionID, Category: cat},
			Correct:  a.Correct,
		}
	}

	result := diagnostic.Score(answers, time.Duration(req.TimeTakenSec)*time.Second)

	breakdown := make([]CategoryScoreResponse, len(result.Breakdown))
	for i, cs := range result.Breakdown {
		breakdown[i] = CategoryScoreResponse{
			Category: string(cs.Category),
			Name:     cs.Category.DisplayName(),
			Correct:  cs.Correct,
			Total:    cs.Total,
			IsWeak:   cs.IsWeak,
		}
	}

	respondJSON(w, http.StatusOK, DiagnosticResultResponse{
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		PassThreshold:  result.PassThreshold,
		Passed:         result.Passed(),
		GapPoints:      result.GapPoints(),
		TimeTakenSec:   int(result.TimeTaken.Seconds()),
		Breakdown:      breakdown,
	})
}

func toDiagnosticQuestion(q question.Question) DiagnosticQuestion {
	return DiagnosticQuestion{
		ID:           q.ID,
		Text:         q.Text,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Category:     string(q.Category),
		Explanation:  q.Explanation,
		ImageName:    q.ImageName,
	}
}
