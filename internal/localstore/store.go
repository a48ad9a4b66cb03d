// Package localstore keeps labeled examples in a local SQLite file so the CLI
// works without a PostgreSQL server.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultPath is where the CLI keeps its database when none is configured.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".resume_matcher", "examples.db")
}

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `CREATE TABLE IF NOT EXISTS labeled_examples (
	id               TEXT PRIMARY KEY,
	job_title        TEXT NOT NULL,
	industry         TEXT NOT NULL DEFAULT '',
	role_level       TEXT NOT NULL DEFAULT '',
	outcome_type     TEXT NOT NULL CHECK (outcome_type IN ('positive', 'negative')),
	content_patterns TEXT NOT NULL,
	embedding        TEXT,
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_labeled_examples_filter ON labeled_examples (industry, role_level);`

// Store is a SQLite-backed example store.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("localstore: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("localstore: init schema: %w", err)
	}
	return &Store{db: db, logger: zap.NewNop()}, nil
}

// WithLogger sets the logger used to report skipped rows.
func (s *Store) WithLogger(l *zap.Logger) *Store {
	s.logger = logger.OrNop(l)
	return s
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertExample stores a labeled example.
func (s *Store) InsertExample(ctx context.Context, ex types.StoredExample) error {
	if !ex.OutcomeType.Valid() {
		return fmt.Errorf("localstore: invalid outcome type %q", ex.OutcomeType)
	}
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	patterns, err := json.Marshal(ex.ContentPatterns)
	if err != nil {
		return fmt.Errorf("localstore: marshal content patterns: %w", err)
	}
	var embedding sql.NullString
	if len(ex.Embedding) > 0 {
		data, err := json.Marshal(ex.Embedding)
		if err != nil {
			return fmt.Errorf("localstore: marshal embedding: %w", err)
		}
		embedding = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO labeled_examples (id, job_title, industry, role_level, outcome_type, content_patterns, embedding, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ex.ID.String(), ex.JobTitle, ex.Industry, ex.RoleLevel, string(ex.OutcomeType),
		string(patterns), embedding, ex.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("localstore: insert example: %w", err)
	}
	return nil
}

// QueryExamples returns examples matching filter, newest first. Rows that
// cannot be decoded are skipped.
func (s *Store) QueryExamples(ctx context.Context, filter learning.ExampleFilter) ([]types.StoredExample, error) {
	var conditions []string
	var args []any
	if filter.Industry != "" {
		conditions = append(conditions, "industry = ?")
		args = append(args, filter.Industry)
	}
	if filter.RoleLevel != "" {
		conditions = append(conditions, "role_level = ?")
		args = append(args, filter.RoleLevel)
	}
	if filter.OutcomeType != "" {
		conditions = append(conditions, "outcome_type = ?")
		args = append(args, string(filter.OutcomeType))
	}
	if filter.HasEmbedding {
		conditions = append(conditions, "embedding IS NOT NULL AND embedding != '[]'")
	}

	query := `SELECT id, job_title, industry, role_level, outcome_type, content_patterns, embedding, created_at FROM labeled_examples`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("localstore: query examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	examples := make([]types.StoredExample, 0)
	for rows.Next() {
		ex, err := scanExample(rows)
		if err != nil {
			s.logger.Debug("skipping undecodable example", zap.Error(err))
			continue
		}
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// GetExample retrieves an example by ID. It returns nil, nil when none exists.
func (s *Store) GetExample(ctx context.Context, id uuid.UUID) (*types.StoredExample, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, job_title, industry, role_level, outcome_type, content_patterns, embedding, created_at
		 FROM labeled_examples WHERE id = ?`, id.String())
	ex, err := scanExample(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ex, nil
}

// Count returns the number of stored examples per outcome.
func (s *Store) Count(ctx context.Context) (map[types.OutcomeType]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT outcome_type, COUNT(*) FROM labeled_examples GROUP BY outcome_type`)
	if err != nil {
		return nil, fmt.Errorf("localstore: count examples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := map[types.OutcomeType]int{types.OutcomePositive: 0, types.OutcomeNegative: 0}
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("localstore: scan count: %w", err)
		}
		counts[types.OutcomeType(outcome)] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExample(row scanner) (types.StoredExample, error) {
	var (
		ex                    types.StoredExample
		id, outcome, patterns string
		embedding             sql.NullString
		createdAt             string
	)
	if err := row.Scan(&id, &ex.JobTitle, &ex.Industry, &ex.RoleLevel, &outcome, &patterns, &embedding, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ex, err
		}
		return ex, fmt.Errorf("localstore: scan example: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return ex, fmt.Errorf("localstore: bad example id %q: %w", id, err)
	}
	ex.ID = parsed
	ex.OutcomeType = types.OutcomeType(outcome)

	if err := json.Unmarshal([]byte(patterns), &ex.ContentPatterns); err != nil {
		return ex, fmt.Errorf("localstore: decode content patterns for %s: %w", id, err)
	}
	if embedding.Valid && embedding.String != "" {
		// A corrupt vector leaves Embedding empty; retrieval skips such rows.
		_ = json.Unmarshal([]byte(embedding.String), &ex.Embedding)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		ex.CreatedAt = t
	}
	return ex, nil
}
