package advisor

import "context"

// Advisor turns a performance summary into study-recommendation text.
// Implementations may call an LLM or return canned results (for tests).
type Advisor interface {
	// Recommend returns a short plain-text study recommendation for
	// the given per-category performance summary.
	Recommend(ctx context.Context, summary string) (string, error)
}
