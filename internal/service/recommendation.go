// internal/service/recommendation.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/permitprep/backend/internal/advisor"
	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/recommend"
	"github.com/permitprep/backend/internal/worker"
)

// RecommendationService sits between the HTTP layer and the
// recommendation cache. The cache only gates; this service is what
// actually calls the advisor when the cache comes up empty, and it
// owns the background regeneration that runs after a quiz when
// accuracy has drifted.
type RecommendationService struct {
	cache  *recommend.Cache
	llm    advisor.Advisor
	stats  *analytics.Aggregator
	logger *slog.Logger

	pool *worker.Pool[generation]

	mu       sync.Mutex
	inflight bool
	closed   bool
}

type generation struct {
	Text string
	Err  error
}

// NewRecommendationService wires the cache, advisor, and aggregator
// together and starts the background worker that persists regenerated
// recommendations.
func NewRecommendationService(cache *recommend.Cache, llm advisor.Advisor, stats *analytics.Aggregator, logger *slog.Logger) *RecommendationService {
	s := &RecommendationService{
		cache:  cache,
		llm:    llm,
		stats:  stats,
		logger: logger,
		pool:   worker.NewPool[generation](1, 4),
	}
	go s.collect()
	return s
}

// Current returns the recommendation to show right now. Cached text
// wins; otherwise a new one is generated synchronously, cached, and
// returned. The cached flag tells the caller which path was taken.
func (s *RecommendationService) Current(ctx context.Context) (text string, cached bool, err error) {
	if text, ok := s.cache.Get(ctx); ok {
		return text, true, nil
	}

	text, err = s.generate(ctx)
	if err != nil {
		return "", false, err
	}
	return text, false, nil
}

// RefreshIfStale regenerates the recommendation in the background when
// per-category accuracy has drifted since the cached snapshot. Called
// after a quiz completes. Returns true when a regeneration was queued.
func (s *RecommendationService) RefreshIfStale(ctx context.Context) bool {
	if !s.cache.ShouldForceRefresh(ctx) {
		return false
	}

	// Submit happens under the same lock Close takes, so a request
	// racing shutdown can never hit a closed jobs channel.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.inflight {
		return false
	}
	s.inflight = true

	s.pool.Submit("refresh", func() generation {
		// Generation outlives the HTTP request that triggered it.
		text, err := s.generateText(context.Background())
		return generation{Text: text, Err: err}
	})
	return true
}

// Close stops the background worker. Pending generations finish and
// are persisted before the collector goroutine exits.
func (s *RecommendationService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.pool.Close()
}

// Invalidate drops the cached recommendation unconditionally.
func (s *RecommendationService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

// Staleness returns the human-readable age of the cached text.
func (s *RecommendationService) Staleness(ctx context.Context) string {
	return s.cache.TimeSinceLastUpdate(ctx)
}

// collect drains worker results and persists successful generations.
func (s *RecommendationService) collect() {
	for result := range s.pool.Results() {
		gen := result.Output

		s.mu.Lock()
		s.inflight = false
		s.mu.Unlock()

		if gen.Err != nil {
			s.logger.Error("background recommendation generation failed", "error", gen.Err)
			continue
		}
		if err := s.cache.Put(context.Background(), gen.Text); err != nil {
			s.logger.Error("failed to cache recommendation", "error", err)
		}
	}
}

func (s *RecommendationService) generate(ctx context.Context) (string, error) {
	text, err := s.generateText(ctx)
	if err != nil {
		return "", err
	}
	if err := s.cache.Put(ctx, text); err != nil {
		// The text is still usable; a failed cache write only costs a
		// regeneration next time.
		s.logger.Error("failed to cache recommendation", "error", err)
	}
	return text, nil
}

func (s *RecommendationService) generateText(ctx context.Context) (string, error) {
	summary := s.performanceSummary(ctx)
	text, err := s.llm.Recommend(ctx, summary)
	if err != nil {
		return "", fmt.Errorf("generate recommendation: %w", err)
	}
	return text, nil
}

// performanceSummary renders per-category accuracy as prompt input,
// weakest categories first.
func (s *RecommendationService) performanceSummary(ctx context.Context) string {
	perf := s.stats.CategoryPerformance(ctx)
	if len(perf) == 0 {
		return "The learner has not answered any questions yet."
	}

	type line struct {
		name     string
		accuracy float64
		attempts int
	}
	lines := make([]line, 0, len(perf))
	for cat, p := range perf {
		lines = append(lines, line{cat.DisplayName(), p.Accuracy, p.Attempts})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].accuracy != lines[j].accuracy {
			return lines[i].accuracy < lines[j].accuracy
		}
		return lines[i].name < lines[j].name
	})

	var b strings.Builder
	b.WriteString("Per-category accuracy so far:\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "- %s: %.0f%% over %d questions\n", l.name, l.accuracy*100, l.attempts)
	}
	return b.String()
}
