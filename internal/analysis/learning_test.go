package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/types"
)

type fakeStore struct {
	examples []types.StoredExample
	err      error
}

func (f fakeStore) QueryExamples(context.Context, learning.ExampleFilter) ([]types.StoredExample, error) {
	return f.examples, f.err
}

func example(outcome types.OutcomeType, metricsPerBullet float64, bullets int) types.StoredExample {
	return types.StoredExample{
		ID:          uuid.New(),
		JobTitle:    "Backend Engineer",
		OutcomeType: outcome,
		Embedding:   []float32{1, 0},
		ContentPatterns: types.ContentPatterns{
			Quantification: types.Quantification{
				MetricsPerBullet: metricsPerBullet,
				MetricsCount:     int(metricsPerBullet * float64(bullets)),
			},
			Structure: types.Structure{BulletCount: bullets},
			Keywords:  types.KeywordCoverage{Found: []string{"go", "kafka"}},
		},
	}
}

func learningStore() fakeStore {
	return fakeStore{examples: []types.StoredExample{
		example(types.OutcomePositive, 1.2, 10),
		example(types.OutcomePositive, 1.0, 10),
		example(types.OutcomeNegative, 0.1, 10),
		example(types.OutcomeNegative, 0.2, 10),
	}}
}

func TestLearningReport(t *testing.T) {
	svc := NewService(Dependencies{Embedder: constEmbedder{vec: []float32{1, 0}}, Store: learningStore()})

	report, err := svc.LearningReport(context.Background(), InsightsRequest{ResumeText: testResume, JobDescription: testJD})
	require.NoError(t, err)

	assert.Len(t, report.SimilarJobs, 4)
	require.NotNil(t, report.Patterns)
	assert.Equal(t, 2, report.Patterns.PositiveCount)
	assert.ElementsMatch(t, []string{"go", "kafka"}, report.Patterns.MustHaveSkills)

	assert.True(t, report.Contrastive.HasContrastiveData)
	require.NotEmpty(t, report.Contrastive.Insights)
	assert.Equal(t, learning.MetricMetricsPerBullet, report.Contrastive.Insights[0].Metric)

	assert.Equal(t, 2, report.UserPatterns.Structure.BulletCount)
	assert.Zero(t, report.UserPatterns.Quantification.MetricsCount)

	var metrics []string
	for _, s := range report.Suggestions {
		metrics = append(metrics, s.Metric)
	}
	assert.Contains(t, metrics, learning.MetricMetricsPerBullet)
	assert.Empty(t, report.Summary)
}

func TestLearningReport_WithoutResume(t *testing.T) {
	svc := NewService(Dependencies{Embedder: constEmbedder{vec: []float32{1, 0}}, Store: learningStore()})

	report, err := svc.LearningReport(context.Background(), InsightsRequest{JobDescription: testJD})
	require.NoError(t, err)

	assert.NotNil(t, report.Suggestions)
	assert.Empty(t, report.Suggestions)
	assert.NotEmpty(t, report.Contrastive.Insights)
}

func TestLearningReport_Summary(t *testing.T) {
	svc := NewService(Dependencies{
		Embedder: constEmbedder{vec: []float32{1, 0}},
		Store:    learningStore(),
		LLM:      fakeLLM{response: `{"summary": "Add numbers to your bullets."}`},
	})

	report, err := svc.LearningReport(context.Background(), InsightsRequest{ResumeText: testResume, JobDescription: testJD, Summarize: true})
	require.NoError(t, err)
	assert.Equal(t, "Add numbers to your bullets.", report.Summary)
}

func TestLearningReport_NoPositives(t *testing.T) {
	store := fakeStore{examples: []types.StoredExample{example(types.OutcomeNegative, 0.1, 4)}}
	svc := NewService(Dependencies{Embedder: constEmbedder{vec: []float32{1, 0}}, Store: store})

	report, err := svc.LearningReport(context.Background(), InsightsRequest{JobDescription: testJD})
	require.NoError(t, err)

	assert.Nil(t, report.Patterns)
	assert.False(t, report.Contrastive.HasContrastiveData)
	assert.NotEmpty(t, report.Contrastive.Summary)
}

func TestLearningReport_StoreError(t *testing.T) {
	svc := NewService(Dependencies{Embedder: constEmbedder{vec: []float32{1, 0}}, Store: fakeStore{err: errors.New("db down")}})

	_, err := svc.LearningReport(context.Background(), InsightsRequest{JobDescription: testJD})
	require.Error(t, err)

	var retrievalErr *learning.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
}

func TestLearningReport_Unavailable(t *testing.T) {
	_, err := NewService(Dependencies{Embedder: constEmbedder{vec: []float32{1}}}).LearningReport(context.Background(), InsightsRequest{JobDescription: testJD})
	assert.ErrorIs(t, err, ErrLearningUnavailable)

	_, err = NewService(Dependencies{Store: learningStore()}).LearningReport(context.Background(), InsightsRequest{JobDescription: testJD})
	assert.ErrorIs(t, err, ErrLearningUnavailable)
}
