package feedback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/llm"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func sampleInput() EnrichInput {
	score := ats.Score{Overall: 68, JobType: ats.JobTypeTech, MissingKeywords: []string{"terraform"}}
	return EnrichInput{
		Resume:         "Jane Doe\nExperience\nBuilt Go services",
		JobDescription: "Senior Go engineer with Terraform",
		ATS:            score,
		Items:          Merge(score, nil),
	}
}

func TestEnrich_Success(t *testing.T) {
	client := &fakeClient{response: "```json\n{\"comments\": [{\"section\": \"Skills\", \"comment\": \" List Terraform if you used it. \"}, {\"section\": \"hobbies\", \"comment\": \"ignored\"}], \"overall\": \"Promising.\"}\n```"}
	e := NewEnricher(client, nil)

	out, err := e.Enrich(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"skills": "List Terraform if you used it."}, out.Comments)
	assert.Equal(t, "Promising.", out.Overall)

	require.Len(t, client.prompts, 1)
	assert.Equal(t, llm.TierStandard, client.tiers[0])
	assert.Contains(t, client.prompts[0], "ATS score: 68 (tech weighting)")
	assert.Contains(t, client.prompts[0], "Semantic score: unavailable")
	assert.Contains(t, client.prompts[0], "Missing keywords: terraform")
	assert.Contains(t, client.prompts[0], "- skills: Missing 1 job keywords: terraform")
	assert.NotContains(t, client.prompts[0], "{{.")
}

func TestEnrich_ClientError(t *testing.T) {
	cause := errors.New("quota exceeded")
	e := NewEnricher(&fakeClient{err: cause}, nil)

	_, err := e.Enrich(context.Background(), sampleInput())
	require.Error(t, err)

	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	assert.ErrorIs(t, err, cause)
}

func TestEnrich_BadJSON(t *testing.T) {
	e := NewEnricher(&fakeClient{response: "I cannot help with that."}, nil)

	_, err := e.Enrich(context.Background(), sampleInput())
	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, "unusable LLM response", enrichErr.Message)
}

func TestApply(t *testing.T) {
	items := Merge(ats.Score{MissingKeywords: []string{"go"}}, nil)

	out := Apply(items, &Enrichment{Comments: map[string]string{"skills": "Add Go."}})
	assert.Equal(t, "Add Go.", out[0].Comment)

	assert.Equal(t, items, Apply(items, nil))
}

func TestSummarizeInsights(t *testing.T) {
	client := &fakeClient{response: `{"summary": "Quantify your results first."}`}
	e := NewEnricher(client, nil)

	insights := []learning.ContrastiveInsight{{Metric: learning.MetricMetricsPerBullet, Description: "more metrics", Importance: learning.ImportanceHigh}}
	suggestions := []learning.ContrastiveSuggestion{{Message: "Add numbers"}}

	summary, err := e.SummarizeInsights(context.Background(), insights, suggestions)
	require.NoError(t, err)
	assert.Equal(t, "Quantify your results first.", summary)
	assert.Equal(t, llm.TierLite, client.tiers[0])
	assert.Contains(t, client.prompts[0], "- [high] more metrics")
	assert.Contains(t, client.prompts[0], "- Add numbers")
}

func TestSummarizeInsights_NoInsights(t *testing.T) {
	client := &fakeClient{}
	_, err := NewEnricher(client, nil).SummarizeInsights(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Empty(t, client.prompts)
}
