package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/types"
)

const exampleColumns = `id, job_title, industry, role_level, outcome_type, content_patterns, embedding, created_at`

// ExampleCount is the number of examples for one industry and role level.
type ExampleCount struct {
	Industry         string `json:"industry"`
	RoleLevel        string `json:"role_level"`
	Positive         int    `json:"positive"`
	Negative         int    `json:"negative"`
	MissingEmbedding int    `json:"missing_embedding"`
}

// InsertExample stores a labeled example. A nil ID or zero CreatedAt is filled in.
func (db *DB) InsertExample(ctx context.Context, ex types.StoredExample) error {
	if !ex.OutcomeType.Valid() {
		return fmt.Errorf("invalid outcome type %q", ex.OutcomeType)
	}
	if ex.ID == uuid.Nil {
		ex.ID = uuid.New()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}

	patterns, err := json.Marshal(ex.ContentPatterns)
	if err != nil {
		return fmt.Errorf("failed to marshal content patterns: %w", err)
	}

	var embedding []float32
	if len(ex.Embedding) > 0 {
		embedding = ex.Embedding
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO labeled_examples (id, job_title, industry, role_level, outcome_type, content_patterns, embedding, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ex.ID, ex.JobTitle, ex.Industry, ex.RoleLevel, string(ex.OutcomeType), patterns, embedding, ex.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert example: %w", err)
	}
	return nil
}

// QueryExamples returns examples matching filter, newest first. Rows whose
// content patterns cannot be decoded are skipped.
func (db *DB) QueryExamples(ctx context.Context, filter learning.ExampleFilter) ([]types.StoredExample, error) {
	query, args := buildExampleQuery(filter)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query examples: %w", err)
	}
	defer rows.Close()

	examples := make([]types.StoredExample, 0)
	for rows.Next() {
		raw, err := scanExampleRow(rows)
		if err != nil {
			return nil, err
		}
		ex, err := raw.decode()
		if err != nil {
			db.logger.Debug("skipping undecodable example", zap.Error(err))
			continue
		}
		examples = append(examples, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate examples: %w", err)
	}
	return examples, nil
}

// GetExample retrieves an example by ID. It returns nil, nil when none exists.
func (db *DB) GetExample(ctx context.Context, id uuid.UUID) (*types.StoredExample, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+exampleColumns+` FROM labeled_examples WHERE id = $1`, id)
	raw, err := scanExampleRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ex, err := raw.decode()
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// DeleteExample removes an example. It reports whether a row was deleted.
func (db *DB) DeleteExample(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM labeled_examples WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete example: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountExamples returns example counts grouped by industry and role level.
func (db *DB) CountExamples(ctx context.Context) ([]ExampleCount, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT industry, role_level, positive, negative, missing_embedding
		 FROM labeled_example_counts
		 ORDER BY industry, role_level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count examples: %w", err)
	}
	defer rows.Close()

	counts := make([]ExampleCount, 0)
	for rows.Next() {
		var c ExampleCount
		if err := rows.Scan(&c.Industry, &c.RoleLevel, &c.Positive, &c.Negative, &c.MissingEmbedding); err != nil {
			return nil, fmt.Errorf("failed to scan example count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// buildExampleQuery turns a filter into SQL with positional arguments.
func buildExampleQuery(filter learning.ExampleFilter) (string, []any) {
	var conditions []string
	var args []any
	argIndex := 1

	if filter.Industry != "" {
		conditions = append(conditions, fmt.Sprintf("industry = $%d", argIndex))
		args = append(args, filter.Industry)
		argIndex++
	}
	if filter.RoleLevel != "" {
		conditions = append(conditions, fmt.Sprintf("role_level = $%d", argIndex))
		args = append(args, filter.RoleLevel)
		argIndex++
	}
	if filter.OutcomeType != "" {
		conditions = append(conditions, fmt.Sprintf("outcome_type = $%d", argIndex))
		args = append(args, string(filter.OutcomeType))
		argIndex++
	}
	if filter.HasEmbedding {
		conditions = append(conditions, "embedding IS NOT NULL AND cardinality(embedding) > 0")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(exampleColumns)
	sb.WriteString(" FROM labeled_examples")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id")
	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, filter.Limit)
	}
	return sb.String(), args
}

// exampleRow holds one scanned row before its JSON and array columns are decoded.
type exampleRow struct {
	ex        types.StoredExample
	outcome   string
	patterns  []byte
	embedding []pgtype.Float4
}

func scanExampleRow(row pgx.Row) (exampleRow, error) {
	var r exampleRow
	if err := row.Scan(&r.ex.ID, &r.ex.JobTitle, &r.ex.Industry, &r.ex.RoleLevel, &r.outcome, &r.patterns, &r.embedding, &r.ex.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan example: %w", err)
	}
	return r, nil
}

func (r exampleRow) decode() (types.StoredExample, error) {
	ex := r.ex
	ex.OutcomeType = types.OutcomeType(r.outcome)
	if len(r.patterns) > 0 {
		if err := json.Unmarshal(r.patterns, &ex.ContentPatterns); err != nil {
			return ex, fmt.Errorf("failed to decode content patterns for %s: %w", ex.ID, err)
		}
	}
	ex.Embedding = embeddingFromArray(r.embedding)
	return ex, nil
}

// embeddingFromArray converts a REAL[] value. An array with a NULL element is
// not a usable vector and yields nil.
func embeddingFromArray(arr []pgtype.Float4) []float32 {
	if len(arr) == 0 {
		return nil
	}
	vec := make([]float32, len(arr))
	for i, v := range arr {
		if !v.Valid {
			return nil
		}
		vec[i] = v.Float32
	}
	return vec
}
