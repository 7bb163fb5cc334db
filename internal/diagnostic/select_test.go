package diagnostic_test

import (
	"fmt"
	"testing"

	"github.com/permitprep/backend/internal/diagnostic"
	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/domain/question"
)

func poolWith(counts map[category.Category]int) *question.Pool {
	var questions []question.Question
	for cat, n := range counts {
		for i := 0; i < n; i++ {
			questions = append(questions, question.Question{
				ID:       fmt.Sprintf("%s-%d", cat, i),
				Text:     "q",
				Options:  []string{"a", "b"},
				Category: cat,
			})
		}
	}
	return &question.Pool{Questions: questions}
}

func evenPool(perCategory int) *question.Pool {
	counts := make(map[category.Category]int)
	for _, cat := range category.All() {
		counts[cat] = perCategory
	}
	return poolWith(counts)
}

func assertUnique(t *testing.T, questions []question.Question) {
	t.Helper()
	seen := make(map[string]struct{})
	for _, q := range questions {
		if _, dup := seen[q.ID]; dup {
			t.Errorf("duplicate question %q in selection", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
}

func TestSelectQuestions_UsesDiagnosticPool(t *testing.T) {
	diag := evenPool(5) // 30 questions, enough for the primary path
	general := evenPool(1)

	selected := diagnostic.SelectQuestions(diag, general)

	if len(selected) != diagnostic.TestLength {
		t.Fatalf("selected %d questions, want %d", len(selected), diagnostic.TestLength)
	}
	assertUnique(t, selected)
}

func TestSelectQuestions_FallsBackWhenPoolTooSmall(t *testing.T) {
	diag := evenPool(1) // 6 questions, below TestLength
	general := evenPool(10)

	selected := diagnostic.SelectQuestions(diag, general)

	if len(selected) != diagnostic.TestLength {
		t.Fatalf("selected %d questions, want %d", len(selected), diagnostic.TestLength)
	}
	assertUnique(t, selected)

	// With ample supply the quota distribution should hold exactly.
	perCat := make(map[category.Category]int)
	for _, q := range selected {
		perCat[q.Category]++
	}
	want := map[category.Category]int{
		category.TrafficSigns: 3,
		category.TrafficLaws:  3,
		category.SafeDriving:  3,
		category.RightOfWay:   2,
		category.AlcoholDrugs: 2,
		category.Parking:      2,
	}
	for cat, n := range want {
		if perCat[cat] != n {
			t.Errorf("category %s: got %d questions, want %d", cat, perCat[cat], n)
		}
	}
}

func TestSelectQuestions_BackfillCoversEmptyCategory(t *testing.T) {
	// Parking has no questions at all; backfill must compensate from
	// the rest of the pool.
	general := poolWith(map[category.Category]int{
		category.TrafficSigns: 6,
		category.TrafficLaws:  6,
		category.SafeDriving:  6,
		category.RightOfWay:   6,
		category.AlcoholDrugs: 6,
	})

	selected := diagnostic.SelectQuestions(nil, general)

	if len(selected) != diagnostic.TestLength {
		t.Fatalf("selected %d questions, want %d", len(selected), diagnostic.TestLength)
	}
	assertUnique(t, selected)
}

func TestSelectQuestions_NilDiagnosticPool(t *testing.T) {
	selected := diagnostic.SelectQuestions(nil, evenPool(5))

	if len(selected) != diagnostic.TestLength {
		t.Fatalf("selected %d questions, want %d", len(selected), diagnostic.TestLength)
	}
}

func TestSelectQuestions_RandomizesOrder(t *testing.T) {
	diag := evenPool(10)

	first := diagnostic.SelectQuestions(diag, nil)
	different := false
	for i := 0; i < 10; i++ {
		next := diagnostic.SelectQuestions(diag, nil)
		if !sameOrder(first, next) {
			different = true
			break
		}
	}
	if !different {
		t.Error("expected selection order to vary across runs")
	}
}

func sameOrder(a, b []question.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
