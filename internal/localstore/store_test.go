package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "examples.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func storedExample(industry string, outcome types.OutcomeType, vec []float32, created time.Time) types.StoredExample {
	return types.StoredExample{
		ID:          uuid.New(),
		JobTitle:    "Engineer",
		Industry:    industry,
		RoleLevel:   "mid",
		OutcomeType: outcome,
		ContentPatterns: types.ContentPatterns{
			Quantification: types.Quantification{MetricsCount: 3, MetricsPerBullet: 0.75},
			ActionVerbs:    types.ActionVerbs{StrongCount: 2, StrongVerbsUsed: []string{"built", "led"}},
			Structure:      types.Structure{BulletCount: 4, SectionOrder: []string{"experience", "skills"}},
		},
		Embedding: vec,
		CreatedAt: created,
	}
}

func TestInsertAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	ex := storedExample("fintech", types.OutcomePositive, []float32{0.25, -0.5}, created)
	require.NoError(t, store.InsertExample(ctx, ex))

	got, err := store.GetExample(ctx, ex.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, ex.ID, got.ID)
	assert.Equal(t, ex.ContentPatterns, got.ContentPatterns)
	assert.Equal(t, ex.Embedding, got.Embedding)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestGetExample_Missing(t *testing.T) {
	got, err := openTestStore(t).GetExample(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInsertExample_InvalidOutcome(t *testing.T) {
	ex := storedExample("fintech", "maybe", nil, time.Time{})
	assert.Error(t, openTestStore(t).InsertExample(context.Background(), ex))
}

func TestInsertExample_FillsDefaults(t *testing.T) {
	store := openTestStore(t)
	ex := storedExample("fintech", types.OutcomeNegative, nil, time.Time{})
	ex.ID = uuid.Nil
	require.NoError(t, store.InsertExample(context.Background(), ex))

	all, err := store.QueryExamples(context.Background(), learning.ExampleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.NotEqual(t, uuid.Nil, all[0].ID)
	assert.False(t, all[0].CreatedAt.IsZero())
	assert.Nil(t, all[0].Embedding)
}

func TestQueryExamples_Filters(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	a := storedExample("fintech", types.OutcomePositive, []float32{1, 0}, base)
	b := storedExample("fintech", types.OutcomeNegative, []float32{0, 1}, base.Add(time.Hour))
	c := storedExample("fintech", types.OutcomePositive, nil, base.Add(2*time.Hour))
	d := storedExample("media", types.OutcomePositive, []float32{1, 1}, base.Add(3*time.Hour))
	for _, ex := range []types.StoredExample{a, b, c, d} {
		require.NoError(t, store.InsertExample(ctx, ex))
	}

	ids := func(exs []types.StoredExample) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(exs))
		for _, ex := range exs {
			out = append(out, ex.ID)
		}
		return out
	}

	all, err := store.QueryExamples(ctx, learning.ExampleFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d.ID, c.ID, b.ID, a.ID}, ids(all))

	fintech, err := store.QueryExamples(ctx, learning.ExampleFilter{Industry: "fintech", HasEmbedding: true})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, ids(fintech))

	positive, err := store.QueryExamples(ctx, learning.ExampleFilter{OutcomeType: types.OutcomePositive, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{d.ID, c.ID}, ids(positive))
}

func TestCount(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	counts, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[types.OutcomeType]int{types.OutcomePositive: 0, types.OutcomeNegative: 0}, counts)

	require.NoError(t, store.InsertExample(ctx, storedExample("x", types.OutcomePositive, nil, time.Time{})))
	require.NoError(t, store.InsertExample(ctx, storedExample("x", types.OutcomePositive, nil, time.Time{})))
	require.NoError(t, store.InsertExample(ctx, storedExample("x", types.OutcomeNegative, nil, time.Time{})))

	counts, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.OutcomePositive])
	assert.Equal(t, 1, counts[types.OutcomeNegative])
}

func TestStore_WorksWithRetriever(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.InsertExample(ctx, storedExample("fintech", types.OutcomePositive, []float32{1, 0}, time.Time{})))
	require.NoError(t, store.InsertExample(ctx, storedExample("fintech", types.OutcomeNegative, nil, time.Time{})))

	var _ learning.ExampleStore = store

	rows, err := store.QueryExamples(ctx, learning.ExampleFilter{HasEmbedding: true})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type fixedEmbedder []float32

func (f fixedEmbedder) Embed(context.Context, string) ([]float32, error) { return f, nil }

func TestQueryExamples_SkipsUndecodableRows(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := openTestStore(t).WithLogger(zap.New(core))
	ctx := context.Background()

	good := storedExample("fintech", types.OutcomePositive, []float32{1, 0}, time.Time{})
	require.NoError(t, store.InsertExample(ctx, good))
	_, err := store.db.ExecContext(ctx,
		`INSERT INTO labeled_examples (id, job_title, industry, role_level, outcome_type, content_patterns, embedding, created_at)
		 VALUES (?, 'Broken', 'fintech', 'mid', 'negative', '{broken', '[1,0]', ?)`,
		uuid.New().String(), time.Now().UTC().Format(timeLayout))
	require.NoError(t, err)

	rows, err := store.QueryExamples(ctx, learning.ExampleFilter{HasEmbedding: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, good.ID, rows[0].ID)
	assert.Equal(t, 1, logs.FilterMessage("skipping undecodable example").Len())

	similar, err := learning.NewRetriever(fixedEmbedder{1, 0}, store).
		FindSimilarJobs(ctx, "Go engineer", learning.RetrieveOptions{})
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, good.ID, similar[0].ID)
}
