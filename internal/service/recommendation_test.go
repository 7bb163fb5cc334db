package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/domain/attempt"
	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/recommend"
	"github.com/permitprep/backend/internal/service"
)

type stubEntryStore struct {
	mu    sync.Mutex
	entry *recommend.Entry
	put   chan struct{}
}

func (s *stubEntryStore) GetRecommendation(context.Context) (*recommend.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == nil {
		return nil, recommend.ErrNoRecommendation
	}
	cp := *s.entry
	return &cp, nil
}

func (s *stubEntryStore) PutRecommendation(_ context.Context, entry recommend.Entry) error {
	s.mu.Lock()
	s.entry = &entry
	s.mu.Unlock()
	if s.put != nil {
		s.put <- struct{}{}
	}
	return nil
}

func (s *stubEntryStore) DeleteRecommendation(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = nil
	return nil
}

type stubPerf struct {
	mu       sync.Mutex
	accuracy map[category.Category]float64
}

func (s *stubPerf) CategoryPerformance(context.Context) map[category.Category]analytics.Performance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[category.Category]analytics.Performance, len(s.accuracy))
	for cat, acc := range s.accuracy {
		out[cat] = analytics.Performance{Accuracy: acc, Attempts: 10}
	}
	return out
}

func (s *stubPerf) set(cat category.Category, acc float64) {
	s.mu.Lock()
	s.accuracy[cat] = acc
	s.mu.Unlock()
}

type stubAdvisor struct {
	text string
}

func (s *stubAdvisor) Recommend(context.Context, string) (string, error) {
	return s.text, nil
}

func newTestService(t *testing.T) (*service.RecommendationService, *stubEntryStore, *stubPerf) {
	t.Helper()
	entries := &stubEntryStore{put: make(chan struct{}, 1)}
	perf := &stubPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cache := recommend.NewCache(entries, perf, logger)
	// Drift checks read stubPerf through the cache; the aggregator
	// only feeds the prompt summary and can stay empty.
	svc := service.NewRecommendationService(cache, &stubAdvisor{text: "Practice parking"}, analytics.New(attemptless{}, logger), logger)
	return svc, entries, perf
}

// attemptless satisfies analytics.AttemptSource with no data, so the
// summary builder reports that no questions have been answered yet.
type attemptless struct{}

func (attemptless) ListAttempts(context.Context, time.Time, time.Time) ([]attempt.Attempt, error) {
	return nil, nil
}

func (attemptless) ListAttemptsByCategory(context.Context, category.Category, time.Time, time.Time) ([]attempt.Attempt, error) {
	return nil, nil
}

func (attemptless) ListAllAttempts(context.Context) ([]attempt.Attempt, error) {
	return nil, nil
}

func TestCurrent_GeneratesWhenCacheEmpty(t *testing.T) {
	svc, entries, _ := newTestService(t)
	defer svc.Close()

	text, cached, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cached {
		t.Error("empty cache must not report cached")
	}
	if text != "Practice parking" {
		t.Errorf("text = %q", text)
	}

	entries.mu.Lock()
	stored := entries.entry
	entries.mu.Unlock()
	if stored == nil || stored.Text != "Practice parking" {
		t.Error("generated text was not cached")
	}
}

func TestCurrent_ServesCachedText(t *testing.T) {
	svc, _, _ := newTestService(t)
	defer svc.Close()
	ctx := context.Background()

	if _, _, err := svc.Current(ctx); err != nil {
		t.Fatalf("first Current: %v", err)
	}
	_, cached, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("second Current: %v", err)
	}
	if !cached {
		t.Error("second read should hit the cache")
	}
}

func TestRefreshIfStale_QueuesOnDrift(t *testing.T) {
	svc, entries, perf := newTestService(t)
	defer svc.Close()
	ctx := context.Background()

	if _, _, err := svc.Current(ctx); err != nil {
		t.Fatalf("Current: %v", err)
	}
	<-entries.put // initial synchronous generation

	if svc.RefreshIfStale(ctx) {
		t.Error("fresh snapshot must not queue a refresh")
	}

	perf.set(category.Parking, 0.5)
	if !svc.RefreshIfStale(ctx) {
		t.Fatal("20-point drop should queue a refresh")
	}

	select {
	case <-entries.put:
	case <-time.After(2 * time.Second):
		t.Fatal("background regeneration never persisted")
	}
}

func TestRefreshIfStale_AfterCloseDoesNotQueue(t *testing.T) {
	svc, _, perf := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Current(ctx); err != nil {
		t.Fatalf("Current: %v", err)
	}
	perf.set(category.Parking, 0.3)

	svc.Close()

	// Must return false without panicking on the closed worker pool.
	if svc.RefreshIfStale(ctx) {
		t.Error("closed service must not queue work")
	}
}
