package diagnostic

import (
	"math/rand"

	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/domain/question"
)

// fallbackQuota distributes the 15 diagnostic slots across categories
// when no dedicated diagnostic pool is available. Quotas sum to 15.
var fallbackQuota = map[category.Category]int{
	category.TrafficSigns: 3,
	category.TrafficLaws:  3,
	category.SafeDriving:  3,
	category.RightOfWay:   2,
	category.AlcoholDrugs: 2,
	category.Parking:      2,
}

// SelectQuestions picks the questions for one diagnostic test.
//
// Primary path: a uniformly shuffled sample of TestLength questions
// from the dedicated diagnostic pool, when it holds enough. Fallback
// (pool missing or too small): sample up to each category's quota from
// the general pool, then backfill with random unique questions from
// the whole general pool until TestLength is reached, and shuffle the
// final list. Selection is seeded by runtime randomness and is
// unordered by design.
func SelectQuestions(diagnosticPool, generalPool *question.Pool) []question.Question {
	if diagnosticPool.Size() >= TestLength {
		sample := shuffled(diagnosticPool.Questions)
		return sample[:TestLength]
	}
	return selectWithQuotas(generalPool)
}

func selectWithQuotas(pool *question.Pool) []question.Question {
	selected := make([]question.Question, 0, TestLength)
	used := make(map[string]struct{})

	for _, cat := range category.All() {
		quota := fallbackQuota[cat]
		available := shuffled(pool.ByCategory(cat))
		if quota > len(available) {
			quota = len(available)
		}
		for _, q := range available[:quota] {
			selected = append(selected, q)
			used[q.ID] = struct{}{}
		}
	}

	// Backfill from the whole pool when quotas came up short.
	if len(selected) < TestLength {
		for _, q := range shuffled(pool.Questions) {
			if len(selected) >= TestLength {
				break
			}
			if _, taken := used[q.ID]; taken {
				continue
			}
			selected = append(selected, q)
			used[q.ID] = struct{}{}
		}
	}

	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

// shuffled returns a shuffled copy, leaving the pool untouched.
func shuffled(questions []question.Question) []question.Question {
	out := make([]question.Question, len(questions))
	copy(out, questions)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
