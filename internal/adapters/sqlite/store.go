// Package sqlite persists the opt-in completion history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	// WAL lets history reads proceed while a completion is being recorded.
	db.Exec("PRAGMA journal_mode=WAL")

	// Block up to 5 seconds on a locked database rather than erroring.
	db.Exec("PRAGMA busy_timeout=5000")

	// Concurrent requests all record through this store; a single
	// connection keeps SQLite from ever seeing two writers.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS completions (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			user_prompt TEXT NOT NULL,
			system_prompt TEXT,
			content TEXT,
			exit_code INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`)
	return err
}

func (s *Store) RecordCompletion(ctx context.Context, rec *domain.CompletionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completions (id, model, user_prompt, system_prompt, content, exit_code, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Model, rec.UserPrompt, rec.SystemPrompt, rec.Content,
		rec.ExitCode, string(rec.Outcome), formatTime(rec.CreatedAt),
	)
	return err
}

// ListCompletions returns the most recent completions, newest first.
func (s *Store) ListCompletions(ctx context.Context, limit int) ([]*domain.CompletionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model, user_prompt, system_prompt, content, exit_code, outcome, created_at
		 FROM completions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.CompletionRecord
	for rows.Next() {
		rec := &domain.CompletionRecord{}
		var outcome, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Model, &rec.UserPrompt, &rec.SystemPrompt,
			&rec.Content, &rec.ExitCode, &outcome, &createdAt); err != nil {
			return nil, err
		}
		rec.Outcome = domain.OutcomeKind(outcome)
		rec.CreatedAt = parseTime(createdAt)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
