package learning

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Aggregation limits and thresholds.
const (
	maxCommonVerbs        = 10
	maxMissingSkills      = 10
	mustHaveShare         = 0.5
	quantificationRatio   = 1.5
	soloMetricsPerBullet  = 1.0
	minCommonVerbsInsight = 5
	bulletGapRatio        = 0.25
)

// InsightCategory groups LearnedInsights.
type InsightCategory string

// Insight categories.
const (
	CategoryQuantification InsightCategory = "quantification"
	CategoryVerbs          InsightCategory = "verbs"
	CategorySkills         InsightCategory = "skills"
	CategoryStructure      InsightCategory = "structure"
)

// OutcomeAverages holds a metric averaged over positive and negative examples.
// Negative is zero when there are no negative examples.
type OutcomeAverages struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

// TermCount is a term with its frequency across examples.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// LearnedInsight is a recommendation backed by the retrieved examples.
type LearnedInsight struct {
	Category InsightCategory `json:"category"`
	Message  string          `json:"message"`
	Evidence string          `json:"evidence"`
}

// LearnedPatterns summarizes what successful examples for similar jobs have
// in common.
type LearnedPatterns struct {
	PositiveCount       int              `json:"positive_count"`
	NegativeCount       int              `json:"negative_count"`
	MetricsPerBullet    OutcomeAverages  `json:"metrics_per_bullet"`
	MetricsCount        OutcomeAverages  `json:"metrics_count"`
	BulletCount         OutcomeAverages  `json:"bullet_count"`
	CommonStrongVerbs   []TermCount      `json:"common_strong_verbs"`
	MustHaveSkills      []string         `json:"must_have_skills"`
	CommonMissingSkills []TermCount      `json:"common_missing_skills"`
	Insights            []LearnedInsight `json:"insights"`
}

// GetLearnedPatterns aggregates the retrieved examples. It returns nil when
// there is no positive example to learn from.
func GetLearnedPatterns(similar []types.SimilarJob) *LearnedPatterns {
	pos, neg := SplitByOutcome(similar)
	if len(pos) == 0 {
		return nil
	}

	lp := &LearnedPatterns{
		PositiveCount: len(pos),
		NegativeCount: len(neg),
		MetricsPerBullet: OutcomeAverages{
			Positive: average(pos, metricsPerBullet),
			Negative: average(neg, metricsPerBullet),
		},
		MetricsCount: OutcomeAverages{
			Positive: average(pos, metricsCount),
			Negative: average(neg, metricsCount),
		},
		BulletCount: OutcomeAverages{
			Positive: average(pos, bulletCount),
			Negative: average(neg, bulletCount),
		},
		CommonStrongVerbs:   commonStrongVerbs(pos),
		MustHaveSkills:      mustHaveSkills(pos),
		CommonMissingSkills: commonMissingSkills(neg),
	}
	lp.Insights = learnedInsights(lp)
	return lp
}

func learnedInsights(lp *LearnedPatterns) []LearnedInsight {
	insights := make([]LearnedInsight, 0, 4)

	mpb := lp.MetricsPerBullet
	if lp.NegativeCount > 0 {
		if mpb.Positive > quantificationRatio*mpb.Negative && mpb.Positive > 0 {
			insights = append(insights, LearnedInsight{
				Category: CategoryQuantification,
				Message:  "Quantify your impact: successful resumes for similar roles use noticeably more metrics",
				Evidence: fmt.Sprintf("%.2f metrics per bullet in successful resumes vs %.2f in rejected ones", mpb.Positive, mpb.Negative),
			})
		}
	} else if mpb.Positive >= soloMetricsPerBullet {
		insights = append(insights, LearnedInsight{
			Category: CategoryQuantification,
			Message:  "Quantify your impact: successful resumes for similar roles include a metric in most bullets",
			Evidence: fmt.Sprintf("%.2f metrics per bullet across %d successful resumes", mpb.Positive, lp.PositiveCount),
		})
	}

	if len(lp.CommonStrongVerbs) >= minCommonVerbsInsight {
		verbs := make([]string, 0, minCommonVerbsInsight)
		for _, v := range lp.CommonStrongVerbs[:minCommonVerbsInsight] {
			verbs = append(verbs, v.Term)
		}
		insights = append(insights, LearnedInsight{
			Category: CategoryVerbs,
			Message:  "Open bullets with strong action verbs",
			Evidence: "Most used in successful resumes: " + strings.Join(verbs, ", "),
		})
	}

	if len(lp.MustHaveSkills) > 0 {
		insights = append(insights, LearnedInsight{
			Category: CategorySkills,
			Message:  "Make sure these skills appear in your resume",
			Evidence: fmt.Sprintf("Found in at least half of %d successful resumes: %s", lp.PositiveCount, strings.Join(lp.MustHaveSkills, ", ")),
		})
	}

	bc := lp.BulletCount
	if lp.NegativeCount > 0 && bc.Positive > 0 && math.Abs(bc.Positive-bc.Negative)/bc.Positive > bulletGapRatio {
		direction := "more"
		if bc.Positive < bc.Negative {
			direction = "fewer"
		}
		insights = append(insights, LearnedInsight{
			Category: CategoryStructure,
			Message:  fmt.Sprintf("Successful resumes for similar roles use %s bullet points", direction),
			Evidence: fmt.Sprintf("%.1f bullets on average in successful resumes vs %.1f in rejected ones", bc.Positive, bc.Negative),
		})
	}

	return insights
}

func metricsPerBullet(cp types.ContentPatterns) float64 { return cp.Quantification.MetricsPerBullet }
func metricsCount(cp types.ContentPatterns) float64     { return float64(cp.Quantification.MetricsCount) }
func bulletCount(cp types.ContentPatterns) float64      { return float64(cp.Structure.BulletCount) }

func average(examples []types.ContentPatterns, metric func(types.ContentPatterns) float64) float64 {
	if len(examples) == 0 {
		return 0
	}
	var sum float64
	for _, cp := range examples {
		sum += metric(cp)
	}
	return sum / float64(len(examples))
}

func commonStrongVerbs(pos []types.ContentPatterns) []TermCount {
	counts := make(map[string]int)
	for _, cp := range pos {
		for _, v := range distinctLower(cp.ActionVerbs.StrongVerbsUsed) {
			counts[v]++
		}
	}
	return topTerms(counts, maxCommonVerbs)
}

func mustHaveSkills(pos []types.ContentPatterns) []string {
	counts := make(map[string]int)
	for _, cp := range pos {
		for _, s := range distinctLower(cp.Keywords.Found) {
			counts[s]++
		}
	}
	skills := make([]string, 0)
	for _, tc := range topTerms(counts, 0) {
		if float64(tc.Count) >= mustHaveShare*float64(len(pos)) {
			skills = append(skills, tc.Term)
		}
	}
	return skills
}

func commonMissingSkills(neg []types.ContentPatterns) []TermCount {
	counts := make(map[string]int)
	for _, cp := range neg {
		for _, s := range distinctLower(cp.Keywords.Missing) {
			counts[s]++
		}
	}
	return topTerms(counts, maxMissingSkills)
}

// topTerms sorts by count descending, then term ascending. A limit of zero
// keeps every term.
func topTerms(counts map[string]int, limit int) []TermCount {
	out := make([]TermCount, 0, len(counts))
	for term, n := range counts {
		out = append(out, TermCount{Term: term, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distinctLower(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		k := strings.ToLower(strings.TrimSpace(it))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
