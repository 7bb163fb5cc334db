// Package recommend holds the cached AI study recommendation and the
// rules for when it goes stale. The cache never generates text itself;
// it only decides whether the stored recommendation is still worth
// showing. Invalidation is lazy: staleness is detected on access,
// there is no background sweep.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/domain/category"
)

// ErrNoRecommendation is returned by an EntryStore when no
// recommendation is cached.
var ErrNoRecommendation = errors.New("no cached recommendation")

const (
	// TTL is how long a recommendation stays fresh regardless of
	// accuracy movement.
	TTL = 24 * time.Hour

	// driftThreshold invalidates the cache when any category's
	// accuracy moves more than 5 percentage points from the snapshot
	// taken at generation time. The bound is strict: exactly 0.05 is
	// not drift.
	driftThreshold = 0.05

	// driftEpsilon absorbs float noise right at the boundary.
	driftEpsilon = 1e-9
)

// Entry is the single cached recommendation with the accuracy
// snapshot it was generated against.
type Entry struct {
	Text     string
	CachedAt time.Time
	Accuracy map[category.Category]float64
}

// EntryStore persists the singleton cache entry. Put must be atomic:
// text, timestamp, and snapshot land together or not at all.
type EntryStore interface {
	GetRecommendation(ctx context.Context) (*Entry, error)
	PutRecommendation(ctx context.Context, entry Entry) error
	DeleteRecommendation(ctx context.Context) error
}

// AccuracySource supplies current per-category accuracy. Satisfied by
// *analytics.Aggregator.
type AccuracySource interface {
	CategoryPerformance(ctx context.Context) map[category.Category]analytics.Performance
}

// Cache gates access to the stored recommendation.
type Cache struct {
	entries EntryStore
	perf    AccuracySource
	logger  *slog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewCache creates a Cache over the given entry store and accuracy source.
func NewCache(entries EntryStore, perf AccuracySource, logger *slog.Logger) *Cache {
	return &Cache{
		entries: entries,
		perf:    perf,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the cached recommendation if it is still fresh. Two
// guards run in order on every read: TTL first (24h from CachedAt),
// then accuracy drift against the stored snapshot. A stale entry is
// purged before returning absent, so a second Get stays absent.
func (c *Cache) Get(ctx context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.entries.GetRecommendation(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoRecommendation) {
			c.logger.Error("failed to read recommendation cache", "error", err)
		}
		return "", false
	}

	if c.now().Sub(entry.CachedAt) >= TTL {
		c.purge(ctx)
		return "", false
	}

	if c.drifted(ctx, entry.Accuracy) {
		c.purge(ctx)
		return "", false
	}

	return entry.Text, true
}

// Put stores a freshly generated recommendation together with the
// current time and a snapshot of per-category accuracy, as one
// transactional write.
func (c *Cache) Put(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(map[category.Category]float64)
	for cat, p := range c.perf.CategoryPerformance(ctx) {
		snapshot[cat] = p.Accuracy
	}

	entry := Entry{
		Text:     text,
		CachedAt: c.now(),
		Accuracy: snapshot,
	}
	if err := c.entries.PutRecommendation(ctx, entry); err != nil {
		return fmt.Errorf("store recommendation: %w", err)
	}
	return nil
}

// Invalidate unconditionally purges the cached recommendation.
func (c *Cache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purge(ctx)
}

// ShouldForceRefresh reports whether accuracy has drifted from the
// stored snapshot. Callers use it after a quiz to regenerate
// proactively instead of waiting for a lazy read. With no entry (or
// no snapshot) there is nothing to drift from, so it reports false.
func (c *Cache) ShouldForceRefresh(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.entries.GetRecommendation(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoRecommendation) {
			c.logger.Error("failed to read recommendation cache", "error", err)
		}
		return false
	}
	return c.drifted(ctx, entry.Accuracy)
}

// TimeSinceLastUpdate formats the age of the cached recommendation
// for display. Units are floor-truncated, never rounded.
func (c *Cache) TimeSinceLastUpdate(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.entries.GetRecommendation(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoRecommendation) {
			c.logger.Error("failed to read recommendation cache", "error", err)
		}
		return "Never"
	}

	elapsed := c.now().Sub(entry.CachedAt)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours())/24)
	}
}

// drifted compares current accuracy against the snapshot. An empty
// snapshot is "no prior snapshot" and is not itself a drift signal. A
// category present now but absent from the snapshot counts as drift.
func (c *Cache) drifted(ctx context.Context, snapshot map[category.Category]float64) bool {
	if len(snapshot) == 0 {
		return false
	}

	for cat, p := range c.perf.CategoryPerformance(ctx) {
		prev, ok := snapshot[cat]
		if !ok {
			return true
		}
		if math.Abs(p.Accuracy-prev) > driftThreshold+driftEpsilon {
			return true
		}
	}
	return false
}

func (c *Cache) purge(ctx context.Context) {
	if err := c.entries.DeleteRecommendation(ctx); err != nil && !errors.Is(err, ErrNoRecommendation) {
		c.logger.Error("failed to purge recommendation cache", "error", err)
	}
}
