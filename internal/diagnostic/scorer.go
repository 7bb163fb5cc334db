// Package diagnostic builds and scores the fixed 15-question placement
// test a learner takes before starting a study plan.
package diagnostic

import (
	"time"

	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/domain/question"
)

const (
	// TestLength is the fixed size of a diagnostic test.
	TestLength = 15

	// PassThreshold is the score needed to pass (12 of 15, the DMV's
	// 80% bar). The constant is applied verbatim even if an answer
	// batch of a different length is scored.
	PassThreshold = 12

	// weakCutoff marks a category as weak when its unrounded accuracy
	// ratio falls below it.
	weakCutoff = 0.70
)

// Answer is one answered diagnostic question.
type Answer struct {
	Question question.Question
	Correct  bool
}

// CategoryScore is the per-category slice of a diagnostic result.
type CategoryScore struct {
	Category category.Category `json:"category"`
	Correct  int               `json:"correct"`
	Total    int               `json:"total"`
	IsWeak   bool              `json:"is_weak"`
}

// Result is the outcome snapshot of one diagnostic test.
// Breakdown follows the canonical category order and contains only
// categories that appeared in the answer set.
type Result struct {
	Score          int             `json:"score"`
	TotalQuestions int             `json:"total_questions"`
	Breakdown      []CategoryScore `json:"breakdown"`
	TimeTaken      time.Duration   `json:"time_taken"`
	PassThreshold  int             `json:"pass_threshold"`
}

// Passed reports whether the score meets the pass threshold.
func (r Result) Passed() bool {
	return r.Score >= r.PassThreshold
}

// GapPoints is how many points short of passing the score fell.
// Zero when passed.
func (r Result) GapPoints() int {
	if r.Passed() {
		return 0
	}
	return r.PassThreshold - r.Score
}

// Score counts correct answers and flags weak categories. A category
// is weak when correct/total < 70%, compared on the unrounded ratio
// (a flat 70% is not weak). A category with zero answers scores 0%,
// never NaN.
func Score(answers []Answer, timeTaken time.Duration) Result {
	score := 0
	type catTally struct {
		correct int
		total   int
	}
	byCat := make(map[category.Category]*catTally)

	for _, a := range answers {
		tally, ok := byCat[a.Question.Category]
		if !ok {
			tally = &catTally{}
			byCat[a.Question.Category] = tally
		}
		tally.total++
		if a.Correct {
			tally.correct++
			score++
		}
	}

	var breakdown []CategoryScore
	for _, cat := range category.All() {
		tally, ok := byCat[cat]
		if !ok {
			continue
		}
		ratio := 0.0
		if tally.total > 0 {
			ratio = float64(tally.correct) / float64(tally.total)
		}
		breakdown = append(breakdown, CategoryScore{
			Category: cat,
			Correct:  tally.correct,
			Total:    tally.total,
			IsWeak:   ratio < weakCutoff,
		})
	}

	return Result{
		Score:          score,
		TotalQuestions: len(answers),
		Breakdown:      breakdown,
		TimeTaken:      timeTaken,
		PassThreshold:  PassThreshold,
	}
}
