package attempt

import (
	"time"

	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/id"
)

// Attempt is one answered-question event. Attempts are append-only:
// once recorded they are never mutated or deleted, and every aggregate
// (daily stats, weekly stats, category trends) is recomputed from them
// on demand.
type Attempt struct {
	ID           string
	Category     category.Category
	Correct      bool
	TimeTakenSec int
	AnsweredAt   time.Time
}

// New creates an Attempt stamped with the current time.
func New(cat category.Category, correct bool, timeTakenSec int) *Attempt {
	if timeTakenSec < 0 {
		timeTakenSec = 0
	}
	return &Attempt{
		ID:           id.GenerateID(),
		Category:     cat,
		Correct:      correct,
		TimeTakenSec: timeTakenSec,
		AnsweredAt:   time.Now().UTC(),
	}
}
