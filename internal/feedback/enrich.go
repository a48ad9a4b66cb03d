package feedback

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/learning"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/semantic"
)

// maxPromptChars bounds each document embedded in a prompt.
const maxPromptChars = 12000

// Enricher adds recruiter-style comments to merged feedback with an LLM.
type Enricher struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// NewEnricher creates an Enricher using the standard model tier.
func NewEnricher(client llm.Client, log *zap.Logger) *Enricher {
	return &Enricher{
		client: client,
		tier:   llm.TierStandard,
		logger: logger.OrNop(log),
	}
}

// EnrichInput is everything the HR comment prompt is built from.
type EnrichInput struct {
	Resume         string
	JobDescription string
	ATS            ats.Score
	Semantic       *semantic.Score
	Items          []SectionFeedbackItem
}

// Enrichment holds the LLM output.
type Enrichment struct {
	Comments map[string]string `json:"comments"`
	Overall  string            `json:"overall"`
}

type hrResponse struct {
	Comments []struct {
		Section string `json:"section"`
		Comment string `json:"comment"`
	} `json:"comments"`
	Overall string `json:"overall"`
}

// Enrich asks the LLM for one comment per feedback section. Comments for
// sections that are not in the input are dropped.
func (e *Enricher) Enrich(ctx context.Context, in EnrichInput) (*Enrichment, error) {
	semanticScore := "unavailable"
	if in.Semantic != nil {
		semanticScore = fmt.Sprintf("%d", in.Semantic.OverallScore)
	}

	prompt, err := prompts.Render(prompts.HRComments, map[string]string{
		"ATSScore":        fmt.Sprintf("%d", in.ATS.Overall),
		"JobType":         string(in.ATS.JobType),
		"SemanticScore":   semanticScore,
		"MissingKeywords": joinOrNone(in.ATS.MissingKeywords),
		"Sections":        describeItems(in.Items),
		"JobDescription":  logger.Truncate(in.JobDescription, maxPromptChars),
		"Resume":          logger.Truncate(in.Resume, maxPromptChars),
	})
	if err != nil {
		return nil, &EnrichmentError{Message: "failed to build prompt", Cause: err}
	}

	e.logger.Debug("requesting HR comments",
		zap.String(logger.FieldModel, e.client.GetModel(e.tier)),
		zap.Int("sections", len(in.Items)),
	)

	raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
	if err != nil {
		return nil, &EnrichmentError{Message: "LLM call failed", Cause: err}
	}

	var resp hrResponse
	if err := llm.DecodeJSON(raw, &resp); err != nil {
		return nil, &EnrichmentError{Message: "unusable LLM response", Cause: err}
	}

	known := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		known[item.Section] = true
	}

	out := &Enrichment{Comments: make(map[string]string), Overall: strings.TrimSpace(resp.Overall)}
	for _, c := range resp.Comments {
		section := strings.ToLower(strings.TrimSpace(c.Section))
		comment := strings.TrimSpace(c.Comment)
		if known[section] && comment != "" {
			out.Comments[section] = comment
		}
	}
	return out, nil
}

// Apply copies enrichment comments onto matching items and returns them.
func Apply(items []SectionFeedbackItem, enrichment *Enrichment) []SectionFeedbackItem {
	if enrichment == nil {
		return items
	}
	for i := range items {
		if c, ok := enrichment.Comments[items[i].Section]; ok {
			items[i].Comment = c
		}
	}
	return items
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// SummarizeInsights condenses contrastive findings into a short coaching note.
func (e *Enricher) SummarizeInsights(ctx context.Context, insights []learning.ContrastiveInsight, suggestions []learning.ContrastiveSuggestion) (string, error) {
	if len(insights) == 0 {
		return "", &EnrichmentError{Message: "no insights to summarize"}
	}

	var ib, sb strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&ib, "- [%s] %s\n", in.Importance, in.Description)
	}
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "- %s\n", s.Message)
	}
	if sb.Len() == 0 {
		sb.WriteString("- none\n")
	}

	prompt, err := prompts.Render(prompts.InsightSummary, map[string]string{
		"Insights":    ib.String(),
		"Suggestions": sb.String(),
	})
	if err != nil {
		return "", &EnrichmentError{Message: "failed to build prompt", Cause: err}
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &EnrichmentError{Message: "LLM call failed", Cause: err}
	}

	var resp summaryResponse
	if err := llm.DecodeJSON(raw, &resp); err != nil {
		return "", &EnrichmentError{Message: "unusable LLM response", Cause: err}
	}
	if strings.TrimSpace(resp.Summary) == "" {
		return "", &EnrichmentError{Message: "empty summary"}
	}
	return strings.TrimSpace(resp.Summary), nil
}

func describeItems(items []SectionFeedbackItem) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item.Section)
		if item.Level != "" {
			fmt.Fprintf(&b, " (%s alignment)", item.Level)
		}
		b.WriteString(":")
		for i, h := range item.Highlights {
			if i > 0 {
				b.WriteString(";")
			}
			b.WriteString(" ")
			b.WriteString(h.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
