// internal/store/sql.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/permitprep/backend/internal/domain/attempt"
	"github.com/permitprep/backend/internal/domain/category"
	"github.com/permitprep/backend/internal/recommend"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    correct BOOLEAN NOT NULL,
    time_taken_sec INTEGER NOT NULL,
    answered_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_answered_at ON attempts(answered_at);
CREATE INDEX IF NOT EXISTS idx_attempts_category ON attempts(category, answered_at);

CREATE TABLE IF NOT EXISTS recommendation_cache (
    id INTEGER PRIMARY KEY,
    text TEXT NOT NULL,
    cached_at TIMESTAMP NOT NULL,
    accuracy_snapshot TEXT NOT NULL
);
`

// DB is the SQL-backed attempt store and recommendation-cache store.
// The driver is either sqlite (default, local file) or postgres;
// queries are written with ? placeholders and rebound per driver.
type DB struct {
	db *sqlx.DB
}

// Compile-time check: *DB persists recommendation cache entries.
var _ recommend.EntryStore = (*DB)(nil)

// Open connects with the given driver and DSN and applies the schema.
func Open(driver, dsn string) (*DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer; keep the pool at one
		// connection so writes serialize instead of erroring.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &DB{db: db}, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

// ============================================================================
// Attempts
// ============================================================================

type attemptRow struct {
	ID           string    `db:"id"`
	Category     string    `db:"category"`
	Correct      bool      `db:"correct"`
	TimeTakenSec int       `db:"time_taken_sec"`
	AnsweredAt   time.Time `db:"answered_at"`
}

func (r attemptRow) toDomain() attempt.Attempt {
	return attempt.Attempt{
		ID:           r.ID,
		Category:     category.Category(r.Category),
		Correct:      r.Correct,
		TimeTakenSec: r.TimeTakenSec,
		AnsweredAt:   r.AnsweredAt.UTC(),
	}
}

// SaveAttempt appends one attempt. Attempts are never updated or
// deleted afterwards.
func (s *DB) SaveAttempt(ctx context.Context, a *attempt.Attempt) error {
	query := s.db.Rebind(`
        INSERT INTO attempts (id, category, correct, time_taken_sec, answered_at)
        VALUES (?, ?, ?, ?, ?)
    `)
	_, err := s.db.ExecContext(ctx, query,
		a.ID, string(a.Category), a.Correct, a.TimeTakenSec, a.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

// ListAttempts returns attempts with answered_at in [from, to),
// sorted ascending by timestamp.
func (s *DB) ListAttempts(ctx context.Context, from, to time.Time) ([]attempt.Attempt, error) {
	query := s.db.Rebind(`
        SELECT id, category, correct, time_taken_sec, answered_at
        FROM attempts
        WHERE answered_at >= ? AND answered_at < ?
        ORDER BY answered_at ASC
    `)
	var rows []attemptRow
	if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return toDomainSlice(rows), nil
}

// ListAttemptsByCategory is ListAttempts restricted to one category.
func (s *DB) ListAttemptsByCategory(ctx context.Context, cat category.Category, from, to time.Time) ([]attempt.Attempt, error) {
	query := s.db.Rebind(`
        SELECT id, category, correct, time_taken_sec, answered_at
        FROM attempts
        WHERE category = ? AND answered_at >= ? AND answered_at < ?
        ORDER BY answered_at ASC
    `)
	var rows []attemptRow
	if err := s.db.SelectContext(ctx, &rows, query, string(cat), from, to); err != nil {
		return nil, fmt.Errorf("list attempts by category: %w", err)
	}
	return toDomainSlice(rows), nil
}

// ListAllAttempts returns every recorded attempt, oldest first.
func (s *DB) ListAllAttempts(ctx context.Context) ([]attempt.Attempt, error) {
	var rows []attemptRow
	err := s.db.SelectContext(ctx, &rows, `
        SELECT id, category, correct, time_taken_sec, answered_at
        FROM attempts
        ORDER BY answered_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("list all attempts: %w", err)
	}
	return toDomainSlice(rows), nil
}

// ListRecentAttempts returns the most recent attempts, newest first.
func (s *DB) ListRecentAttempts(ctx context.Context, limit int) ([]attempt.Attempt, error) {
	query := s.db.Rebind(`
        SELECT id, category, correct, time_taken_sec, answered_at
        FROM attempts
        ORDER BY answered_at DESC
        LIMIT ?
    `)
	var rows []attemptRow
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list recent attempts: %w", err)
	}
	return toDomainSlice(rows), nil
}

func toDomainSlice(rows []attemptRow) []attempt.Attempt {
	out := make([]attempt.Attempt, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// ============================================================================
// Recommendation cache (singleton row, id = 1)
// ============================================================================

type recommendationRow struct {
	Text     string    `db:"text"`
	CachedAt time.Time `db:"cached_at"`
	Snapshot string    `db:"accuracy_snapshot"`
}

// GetRecommendation loads the cached recommendation entry.
func (s *DB) GetRecommendation(ctx context.Context) (*recommend.Entry, error) {
	var row recommendationRow
	err := s.db.GetContext(ctx, &row, `
        SELECT text, cached_at, accuracy_snapshot
        FROM recommendation_cache
        WHERE id = 1
    `)
	if err == sql.ErrNoRows {
		// Both sentinels match: cache callers check ErrNoRecommendation,
		// generic store callers check ErrNotFound.
		return nil, fmt.Errorf("%w: %w", recommend.ErrNoRecommendation, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get recommendation: %w", err)
	}

	snapshot := make(map[category.Category]float64)
	if err := json.Unmarshal([]byte(row.Snapshot), &snapshot); err != nil {
		// A corrupt snapshot reads as "no prior snapshot"; the drift
		// check treats that as not-drifted rather than failing.
		snapshot = nil
	}

	return &recommend.Entry{
		Text:     row.Text,
		CachedAt: row.CachedAt.UTC(),
		Accuracy: snapshot,
	}, nil
}

// PutRecommendation upserts the singleton entry in one statement, so
// text, timestamp, and snapshot are stored atomically.
func (s *DB) PutRecommendation(ctx context.Context, entry recommend.Entry) error {
	snapshot, err := json.Marshal(entry.Accuracy)
	if err != nil {
		return fmt.Errorf("encode accuracy snapshot: %w", err)
	}

	query := s.db.Rebind(`
        INSERT INTO recommendation_cache (id, text, cached_at, accuracy_snapshot)
        VALUES (1, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            text = excluded.text,
            cached_at = excluded.cached_at,
            accuracy_snapshot = excluded.accuracy_snapshot
    `)
	if _, err := s.db.ExecContext(ctx, query, entry.Text, entry.CachedAt, string(snapshot)); err != nil {
		return fmt.Errorf("put recommendation: %w", err)
	}
	return nil
}

// DeleteRecommendation purges the cached entry. Deleting an absent
// entry is a no-op.
func (s *DB) DeleteRecommendation(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recommendation_cache WHERE id = 1`); err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}
