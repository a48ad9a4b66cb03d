package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func example(outcome types.OutcomeType, mpb float64, metrics, bullets int, verbs, found, missing []string) types.SimilarJob {
	return types.SimilarJob{
		OutcomeType: outcome,
		ContentPatterns: types.ContentPatterns{
			Quantification: types.Quantification{MetricsCount: metrics, MetricsPerBullet: mpb},
			ActionVerbs:    types.ActionVerbs{StrongVerbsUsed: verbs},
			Structure:      types.Structure{BulletCount: bullets},
			Keywords:       types.KeywordCoverage{Found: found, Missing: missing},
		},
	}
}

func categories(insights []LearnedInsight) []InsightCategory {
	out := make([]InsightCategory, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Category)
	}
	return out
}

func TestGetLearnedPatterns_NoPositives(t *testing.T) {
	assert.Nil(t, GetLearnedPatterns(nil))
	assert.Nil(t, GetLearnedPatterns([]types.SimilarJob{
		example(types.OutcomeNegative, 0.5, 3, 6, nil, nil, nil),
	}))
}

func TestGetLearnedPatterns_PositiveAndNegative(t *testing.T) {
	similar := []types.SimilarJob{
		example(types.OutcomePositive, 1.0, 5, 5, []string{"led", "built", "reduced"}, []string{"go", "kafka"}, []string{"rust"}),
		example(types.OutcomePositive, 0.6, 3, 5, []string{"Led", "designed"}, []string{"go", "sql"}, nil),
		example(types.OutcomeNegative, 0.2, 1, 10, nil, []string{"sql"}, []string{"kafka", "go"}),
	}

	lp := GetLearnedPatterns(similar)

	require.NotNil(t, lp)
	assert.Equal(t, 2, lp.PositiveCount)
	assert.Equal(t, 1, lp.NegativeCount)
	assert.InDelta(t, 0.8, lp.MetricsPerBullet.Positive, 1e-9)
	assert.InDelta(t, 0.2, lp.MetricsPerBullet.Negative, 1e-9)
	assert.InDelta(t, 4.0, lp.MetricsCount.Positive, 1e-9)
	assert.InDelta(t, 10.0, lp.BulletCount.Negative, 1e-9)

	assert.Equal(t, []TermCount{
		{Term: "led", Count: 2},
		{Term: "built", Count: 1},
		{Term: "designed", Count: 1},
		{Term: "reduced", Count: 1},
	}, lp.CommonStrongVerbs)
	assert.Equal(t, []string{"go", "kafka", "sql"}, lp.MustHaveSkills)
	assert.Equal(t, []TermCount{{Term: "go", Count: 1}, {Term: "kafka", Count: 1}}, lp.CommonMissingSkills)

	assert.Equal(t, []InsightCategory{CategoryQuantification, CategorySkills, CategoryStructure}, categories(lp.Insights))
	assert.Contains(t, lp.Insights[2].Message, "fewer")
}

func TestGetLearnedPatterns_MustHaveNeedsHalf(t *testing.T) {
	similar := []types.SimilarJob{
		example(types.OutcomePositive, 0, 0, 0, nil, []string{"go"}, nil),
		example(types.OutcomePositive, 0, 0, 0, nil, []string{"go"}, nil),
		example(types.OutcomePositive, 0, 0, 0, nil, []string{"rust"}, nil),
	}

	lp := GetLearnedPatterns(similar)

	require.NotNil(t, lp)
	assert.Equal(t, []string{"go"}, lp.MustHaveSkills)
}

func TestGetLearnedPatterns_PositivesOnly(t *testing.T) {
	verbs := []string{"led", "built", "shipped", "scaled", "reduced", "designed"}
	similar := []types.SimilarJob{
		example(types.OutcomePositive, 1.2, 6, 5, verbs, nil, nil),
		example(types.OutcomePositive, 1.0, 5, 5, verbs[:5], nil, nil),
	}

	lp := GetLearnedPatterns(similar)

	require.NotNil(t, lp)
	assert.Zero(t, lp.NegativeCount)
	assert.Zero(t, lp.MetricsPerBullet.Negative)
	assert.Equal(t, []InsightCategory{CategoryQuantification, CategoryVerbs}, categories(lp.Insights))
	assert.Empty(t, lp.MustHaveSkills)
}

func TestGetLearnedPatterns_WeakSignalNoInsights(t *testing.T) {
	similar := []types.SimilarJob{
		example(types.OutcomePositive, 0.5, 3, 6, nil, nil, nil),
		example(types.OutcomeNegative, 0.4, 3, 6, nil, nil, nil),
	}

	lp := GetLearnedPatterns(similar)

	require.NotNil(t, lp)
	assert.Empty(t, lp.Insights)
}

func TestGetLearnedPatterns_TopVerbsCapped(t *testing.T) {
	verbs := []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "b1", "b2", "b3"}
	lp := GetLearnedPatterns([]types.SimilarJob{example(types.OutcomePositive, 0, 0, 0, verbs, nil, nil)})

	require.NotNil(t, lp)
	assert.Len(t, lp.CommonStrongVerbs, maxCommonVerbs)
}
