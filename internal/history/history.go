// Package history keeps an append-only log of per-file outcomes in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amanzav/scribe/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS outcomes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	processed_at TIMESTAMP NOT NULL,
	source_path TEXT NOT NULL,
	target_path TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	course_code TEXT NOT NULL DEFAULT '',
	resolution_source TEXT NOT NULL DEFAULT '',
	classifier_source TEXT NOT NULL DEFAULT '',
	dry_run INTEGER NOT NULL DEFAULT 0,
	note TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_outcomes_processed_at ON outcomes(processed_at);
`

// Store is the SQLite-backed outcome log.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the history database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one outcome.
func (s *Store) Append(ctx context.Context, o model.Outcome) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (
			processed_at, source_path, target_path, action, category,
			course_code, resolution_source, classifier_source, dry_run, note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ProcessedAt.UTC(), o.SourcePath, o.TargetPath, string(o.Action),
		o.Category, o.CourseCode, string(o.Source), string(o.Classifier),
		o.DryRun, o.Note)
	if err != nil {
		return fmt.Errorf("failed to append outcome: %w", err)
	}
	return nil
}

// Recent returns up to limit outcomes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.Outcome, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT processed_at, source_path, target_path, action, category,
		       course_code, resolution_source, classifier_source, dry_run, note
		FROM outcomes
		ORDER BY processed_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var outcomes []model.Outcome
	for rows.Next() {
		var o model.Outcome
		var processedAt time.Time
		var action, source, classifier string
		if err := rows.Scan(&processedAt, &o.SourcePath, &o.TargetPath,
			&action, &o.Category, &o.CourseCode, &source, &classifier,
			&o.DryRun, &o.Note); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.ProcessedAt = processedAt
		o.Action = model.Action(action)
		o.Source = model.ResolutionSource(source)
		o.Classifier = model.ClassificationSource(classifier)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outcomes: %w", err)
	}

	return outcomes, nil
}
