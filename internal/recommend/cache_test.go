package recommend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/domain/category"
)

type memStore struct {
	entry  *Entry
	getErr error // when set, Get fails with this instead
}

func (m *memStore) GetRecommendation(context.Context) (*Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.entry == nil {
		return nil, ErrNoRecommendation
	}
	cp := *m.entry
	return &cp, nil
}

func (m *memStore) PutRecommendation(_ context.Context, entry Entry) error {
	m.entry = &entry
	return nil
}

func (m *memStore) DeleteRecommendation(context.Context) error {
	m.entry = nil
	return nil
}

type fixedPerf struct {
	accuracy map[category.Category]float64
}

func (f *fixedPerf) CategoryPerformance(context.Context) map[category.Category]analytics.Performance {
	out := make(map[category.Category]analytics.Performance, len(f.accuracy))
	for cat, acc := range f.accuracy {
		out[cat] = analytics.Performance{Accuracy: acc, Attempts: 10}
	}
	return out
}

func newTestCache(perf *fixedPerf) (*Cache, *memStore, *time.Time) {
	entries := &memStore{}
	cache := NewCache(entries, perf, slog.New(slog.NewTextHandler(io.Discard, nil)))
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	return cache, entries, &now
}

func TestCache_PutThenGet(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, _, _ := newTestCache(perf)
	ctx := context.Background()

	if err := cache.Put(ctx, "Focus on parking"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	text, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("expected cached text right after Put")
	}
	if text != "Focus on parking" {
		t.Errorf("Get = %q", text)
	}
}

func TestCache_EmptyReturnsAbsent(t *testing.T) {
	cache, _, _ := newTestCache(&fixedPerf{})

	if _, ok := cache.Get(context.Background()); ok {
		t.Error("expected absent on empty cache")
	}
}

func TestCache_TTLExpiryIsIdempotent(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, entries, now := newTestCache(perf)
	ctx := context.Background()

	if err := cache.Put(ctx, "X"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	*now = now.Add(24*time.Hour + time.Second)

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected absent after 24h")
	}
	if entries.entry != nil {
		t.Error("expected stale entry to be purged")
	}
	// Second read stays absent.
	if _, ok := cache.Get(ctx); ok {
		t.Error("expected repeated Get to stay absent")
	}
}

func TestCache_JustUnderTTLStillFresh(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, _, now := newTestCache(perf)
	ctx := context.Background()

	cache.Put(ctx, "X")
	*now = now.Add(24*time.Hour - time.Minute)

	if _, ok := cache.Get(ctx); !ok {
		t.Error("expected entry to survive just under the TTL")
	}
}

func TestCache_DriftBoundary(t *testing.T) {
	cases := []struct {
		name       string
		before     float64
		after      float64
		invalidate bool
	}{
		{"exactly 0.05 stays", 0.70, 0.75, false},
		{"0.0501 purges", 0.70, 0.7501, true},
		{"downward drift purges", 0.70, 0.64, true},
		{"no movement stays", 0.70, 0.70, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perf := &fixedPerf{accuracy: map[category.Category]float64{category.TrafficSigns: tc.before}}
			cache, _, _ := newTestCache(perf)
			ctx := context.Background()

			cache.Put(ctx, "X")
			perf.accuracy[category.TrafficSigns] = tc.after

			_, ok := cache.Get(ctx)
			if tc.invalidate && ok {
				t.Errorf("drift %v→%v should invalidate", tc.before, tc.after)
			}
			if !tc.invalidate && !ok {
				t.Errorf("drift %v→%v should not invalidate", tc.before, tc.after)
			}
		})
	}
}

func TestCache_NewCategoryInvalidates(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, _, _ := newTestCache(perf)
	ctx := context.Background()

	cache.Put(ctx, "X")

	// First attempts in a category unseen at snapshot time.
	perf.accuracy[category.AlcoholDrugs] = 0.5

	if _, ok := cache.Get(ctx); ok {
		t.Error("a new category must invalidate the cache")
	}
}

func TestCache_ShouldForceRefresh(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, _, _ := newTestCache(perf)
	ctx := context.Background()

	if cache.ShouldForceRefresh(ctx) {
		t.Error("no entry: nothing to drift from")
	}

	cache.Put(ctx, "X")
	if cache.ShouldForceRefresh(ctx) {
		t.Error("fresh snapshot should not need a refresh")
	}

	perf.accuracy[category.Parking] = 0.6
	if !cache.ShouldForceRefresh(ctx) {
		t.Error("20-point drop should force a refresh")
	}
}

func TestCache_Invalidate(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, entries, _ := newTestCache(perf)
	ctx := context.Background()

	cache.Put(ctx, "X")
	cache.Invalidate(ctx)

	if entries.entry != nil {
		t.Error("expected entry gone after Invalidate")
	}
	if _, ok := cache.Get(ctx); ok {
		t.Error("expected absent after Invalidate")
	}
}

func TestCache_TimeSinceLastUpdate(t *testing.T) {
	perf := &fixedPerf{accuracy: map[category.Category]float64{category.Parking: 0.8}}
	cache, _, now := newTestCache(perf)
	ctx := context.Background()

	if got := cache.TimeSinceLastUpdate(ctx); got != "Never" {
		t.Errorf("empty cache: got %q, want Never", got)
	}

	cache.Put(ctx, "X")

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{60 * time.Second, "1m ago"},
		{59*time.Minute + 30*time.Second, "59m ago"},
		{time.Hour, "1h ago"},
		{23*time.Hour + 59*time.Minute, "23h ago"},
		{24 * time.Hour, "1d ago"},
		{71 * time.Hour, "2d ago"},
	}

	base := *now
	for _, tc := range cases {
		*now = base.Add(tc.elapsed)
		if got := cache.TimeSinceLastUpdate(ctx); got != tc.want {
			t.Errorf("elapsed %v: got %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}

func TestCache_TimeSinceLastUpdate_StoreFailureLogged(t *testing.T) {
	perf := &fixedPerf{}
	cache, entries, _ := newTestCache(perf)

	var logs bytes.Buffer
	cache.logger = slog.New(slog.NewTextHandler(&logs, nil))
	entries.getErr = errors.New("disk read failed")

	if got := cache.TimeSinceLastUpdate(context.Background()); got != "Never" {
		t.Errorf("got %q, want Never", got)
	}
	if !strings.Contains(logs.String(), "failed to read recommendation cache") {
		t.Errorf("store failure was not logged: %s", logs.String())
	}
}
