// Package analytics recomputes study aggregates from the append-only
// attempt log. Nothing here is memoized: every call re-reads the
// window it needs and rebuilds its buckets, which is fine at a single
// learner's volume.
//
// Note the deliberate asymmetry carried over from the product:
// DailyStats is dense (one zero-filled bucket per calendar day in the
// window) while WeeklyStats and CategoryTrend are sparse (periods with
// no attempts are not emitted). Consumers must not assume uniform
// semantics across the three.
package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/permitprep/backend/internal/domain/attempt"
	"github.com/permitprep/backend/internal/domain/category"
)

const (
	// DefaultDailyWindow is the day window used when a caller does not ask
	// for a specific one.
	DefaultDailyWindow = 30
	// DefaultWeeklyWindow is the equivalent for weekly stats.
	DefaultWeeklyWindow = 12
)

// AttemptSource is the read side of the attempt store. Range queries
// return attempts sorted ascending by timestamp. A failing source is
// logged and treated as empty; aggregation never propagates store
// errors to its caller.
type AttemptSource interface {
	ListAttempts(ctx context.Context, from, to time.Time) ([]attempt.Attempt, error)
	ListAttemptsByCategory(ctx context.Context, cat category.Category, from, to time.Time) ([]attempt.Attempt, error)
	ListAllAttempts(ctx context.Context) ([]attempt.Attempt, error)
}

// DailyBucket summarizes one calendar day of study activity.
type DailyBucket struct {
	Date              time.Time     `json:"date"`
	QuestionsAnswered int           `json:"questions_answered"`
	CorrectAnswers    int           `json:"correct_answers"`
	Accuracy          float64       `json:"accuracy"`
	TotalTimeSpent    time.Duration `json:"total_time_spent"`
}

// WeeklyBucket summarizes one ISO week (Monday start, UTC).
type WeeklyBucket struct {
	WeekStart         time.Time     `json:"week_start"`
	QuestionsAnswered int           `json:"questions_answered"`
	Accuracy          float64       `json:"accuracy"`
	TimeSpent         time.Duration `json:"time_spent"`
	DaysStudied       int           `json:"days_studied"`
}

// CategoryTrendPoint is one day of activity within a single category.
type CategoryTrendPoint struct {
	Category category.Category `json:"category"`
	Date     time.Time         `json:"date"`
	Accuracy float64           `json:"accuracy"`
	Attempts int               `json:"attempts"`
}

// Performance is the lifetime accuracy of one category.
type Performance struct {
	Accuracy float64 `json:"accuracy"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
}

// Aggregator computes study statistics over an AttemptSource.
type Aggregator struct {
	source AttemptSource
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Aggregator over the given source.
func New(source AttemptSource, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// DailyStats returns exactly `days` buckets, oldest-first, covering
// the calendar days [today-days+1, today]. Days without attempts are
// zero-filled; accuracy is 0.0 when a day has no attempts.
func (a *Aggregator) DailyStats(ctx context.Context, days int) []DailyBucket {
	if days <= 0 {
		return []DailyBucket{}
	}

	today := startOfDay(a.now().UTC())
	windowStart := today.AddDate(0, 0, -(days - 1))

	// Single range fetch for the whole window.
	attempts := a.fetch(ctx, windowStart, today.AddDate(0, 0, 1))

	type dayAgg struct {
		answered int
		correct  int
		seconds  int
	}
	byDay := make(map[time.Time]*dayAgg)
	for _, at := range attempts {
		day := startOfDay(at.AnsweredAt.UTC())
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{}
			byDay[day] = agg
		}
		agg.answered++
		if at.Correct {
			agg.correct++
		}
		agg.seconds += at.TimeTakenSec
	}

	buckets := make([]DailyBucket, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		bucket := DailyBucket{Date: day}
		if agg, ok := byDay[day]; ok {
			bucket.QuestionsAnswered = agg.answered
			bucket.CorrectAnswers = agg.correct
			bucket.Accuracy = ratio(agg.correct, agg.answered)
			bucket.TotalTimeSpent = time.Duration(agg.seconds) * time.Second
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// WeeklyStats returns buckets for the `weeks` ISO weeks ending at the
// current one, oldest-first. Unlike DailyStats, weeks with zero
// attempts are not emitted.
func (a *Aggregator) WeeklyStats(ctx context.Context, weeks int) []WeeklyBucket {
	if weeks <= 0 {
		return []WeeklyBucket{}
	}

	now := a.now().UTC()
	currentWeek := startOfWeek(now)
	windowStart := currentWeek.AddDate(0, 0, -7*(weeks-1))

	attempts := a.fetch(ctx, windowStart, now)

	type weekAgg struct {
		answered int
		correct  int
		seconds  int
		days     map[time.Time]struct{}
	}
	byWeek := make(map[time.Time]*weekAgg)
	for _, at := range attempts {
		ts := at.AnsweredAt.UTC()
		week := startOfWeek(ts)
		agg, ok := byWeek[week]
		if !ok {
			agg = &weekAgg{days: make(map[time.Time]struct{})}
			byWeek[week] = agg
		}
		agg.answered++
		if at.Correct {
			agg.correct++
		}
		agg.seconds += at.TimeTakenSec
		agg.days[startOfDay(ts)] = struct{}{}
	}

	weekStarts := make([]time.Time, 0, len(byWeek))
	for w := range byWeek {
		weekStarts = append(weekStarts, w)
	}
	sort.Slice(weekStarts, func(i, j int) bool { return weekStarts[i].Before(weekStarts[j]) })

	buckets := make([]WeeklyBucket, 0, len(weekStarts))
	for _, w := range weekStarts {
		agg := byWeek[w]
		buckets = append(buckets, WeeklyBucket{
			WeekStart:         w,
			QuestionsAnswered: agg.answered,
			Accuracy:          ratio(agg.correct, agg.answered),
			TimeSpent:         time.Duration(agg.seconds) * time.Second,
			DaysStudied:       len(agg.days),
		})
	}
	return buckets
}

// AccuracyTrend is DailyStats restricted to days with at least one attempt.
func (a *Aggregator) AccuracyTrend(ctx context.Context, days int) []DailyBucket {
	var out []DailyBucket
	for _, b := range a.DailyStats(ctx, days) {
		if b.QuestionsAnswered > 0 {
			out = append(out, b)
		}
	}
	return out
}

// StudyTimeTrend is DailyStats restricted to days with recorded study time.
func (a *Aggregator) StudyTimeTrend(ctx context.Context, days int) []DailyBucket {
	var out []DailyBucket
	for _, b := range a.DailyStats(ctx, days) {
		if b.TotalTimeSpent > 0 {
			out = append(out, b)
		}
	}
	return out
}

// CategoryTrend returns one point per day that has at least one
// attempt in the given category, sorted by date ascending.
func (a *Aggregator) CategoryTrend(ctx context.Context, cat category.Category, days int) []CategoryTrendPoint {
	if days <= 0 {
		return []CategoryTrendPoint{}
	}

	today := startOfDay(a.now().UTC())
	windowStart := today.AddDate(0, 0, -(days - 1))

	attempts, err := a.source.ListAttemptsByCategory(ctx, cat, windowStart, today.AddDate(0, 0, 1))
	if err != nil {
		a.logger.Error("failed to load category attempts", "category", cat, "error", err)
		attempts = nil
	}

	type dayAgg struct {
		answered int
		correct  int
	}
	byDay := make(map[time.Time]*dayAgg)
	for _, at := range attempts {
		day := startOfDay(at.AnsweredAt.UTC())
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{}
			byDay[day] = agg
		}
		agg.answered++
		if at.Correct {
			agg.correct++
		}
	}

	dates := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	points := make([]CategoryTrendPoint, 0, len(dates))
	for _, d := range dates {
		agg := byDay[d]
		points = append(points, CategoryTrendPoint{
			Category: cat,
			Date:     d,
			Accuracy: ratio(agg.correct, agg.answered),
			Attempts: agg.answered,
		})
	}
	return points
}

// CategoryPerformance returns lifetime accuracy per category, with an
// entry only for categories that have at least one attempt. This is
// the accuracy source consulted by the recommendation cache's drift
// check.
func (a *Aggregator) CategoryPerformance(ctx context.Context) map[category.Category]Performance {
	attempts, err := a.source.ListAllAttempts(ctx)
	if err != nil {
		a.logger.Error("failed to load attempts", "error", err)
		return map[category.Category]Performance{}
	}

	type catAgg struct {
		answered int
		correct  int
	}
	byCat := make(map[category.Category]*catAgg)
	for _, at := range attempts {
		agg, ok := byCat[at.Category]
		if !ok {
			agg = &catAgg{}
			byCat[at.Category] = agg
		}
		agg.answered++
		if at.Correct {
			agg.correct++
		}
	}

	perf := make(map[category.Category]Performance, len(byCat))
	for cat, agg := range byCat {
		perf[cat] = Performance{
			Accuracy: ratio(agg.correct, agg.answered),
			Attempts: agg.answered,
			Correct:  agg.correct,
		}
	}
	return perf
}

func (a *Aggregator) fetch(ctx context.Context, from, to time.Time) []attempt.Attempt {
	attempts, err := a.source.ListAttempts(ctx, from, to)
	if err != nil {
		a.logger.Error("failed to load attempts", "from", from, "to", to, "error", err)
		return nil
	}
	return attempts
}

func ratio(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(correct) / float64(total)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Monday 00:00 UTC of t's ISO week.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
