package learning

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Importance ranks a ContrastiveInsight.
type Importance string

// Importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

func (i Importance) rank() int {
	switch i {
	case ImportanceHigh:
		return 0
	case ImportanceMedium:
		return 1
	case ImportanceLow:
		return 2
	default:
		return 3
	}
}

// Contrastive metric names.
const (
	MetricMetricsPerBullet = "metrics_per_bullet"
	MetricTotalMetrics     = "total_metrics"
	MetricStrongVerbs      = "strong_verbs"
	MetricWeakVerbs        = "weak_verbs"
	MetricResultsFirst     = "results_first"
	MetricBulletCount      = "bullet_count"
	MetricVerbDiversity    = "verb_diversity"
)

const (
	highImportancePct        = 50.0
	highImportanceConfidence = 0.7
)

// contrastiveMetric describes one compared statistic. An insight is emitted
// only when |delta| exceeds threshold.
type contrastiveMetric struct {
	name          string
	label         string
	threshold     float64
	lowerIsBetter bool
	value         func(types.ContentPatterns) float64
}

var contrastiveMetrics = []contrastiveMetric{
	{MetricMetricsPerBullet, "metrics per bullet", 0.1, false, metricsPerBullet},
	{MetricTotalMetrics, "quantified metrics", 1, false, metricsCount},
	{MetricStrongVerbs, "strong action verbs", 1, false, func(cp types.ContentPatterns) float64 {
		return float64(cp.ActionVerbs.StrongCount)
	}},
	{MetricWeakVerbs, "weak verbs", 1, true, func(cp types.ContentPatterns) float64 {
		return float64(cp.ActionVerbs.WeakCount)
	}},
	{MetricResultsFirst, "results-first bullets", 1, false, func(cp types.ContentPatterns) float64 {
		return float64(cp.Achievements.ResultsFirstCount)
	}},
	{MetricBulletCount, "bullet points", 5, false, bulletCount},
	{MetricVerbDiversity, "verb diversity", 0.05, false, func(cp types.ContentPatterns) float64 {
		return cp.ActionVerbs.DiversityRatio
	}},
}

func lookupMetric(name string) (contrastiveMetric, bool) {
	for _, m := range contrastiveMetrics {
		if m.name == name {
			return m, true
		}
	}
	return contrastiveMetric{}, false
}

// ContrastiveInsight is a statistically material difference between positive
// and negative examples.
type ContrastiveInsight struct {
	Metric        string     `json:"metric"`
	Description   string     `json:"description"`
	PositiveAvg   float64    `json:"positive_avg"`
	NegativeAvg   float64    `json:"negative_avg"`
	Delta         float64    `json:"delta"`
	PercentDiff   float64    `json:"percent_diff"`
	Confidence    float64    `json:"confidence"`
	Importance    Importance `json:"importance"`
	LowerIsBetter bool       `json:"lower_is_better"`
}

// ContrastiveAnalysisResult is the outcome of AnalyzeContrastivePatterns.
type ContrastiveAnalysisResult struct {
	HasContrastiveData bool                 `json:"has_contrastive_data"`
	PositiveCount      int                  `json:"positive_count"`
	NegativeCount      int                  `json:"negative_count"`
	Insights           []ContrastiveInsight `json:"insights"`
	Summary            string               `json:"summary"`
}

// Confidence maps the smaller sample size to a 0-1 trust level.
func Confidence(samples int) float64 {
	switch {
	case samples <= 0:
		return 0
	case samples == 1:
		return 0.3
	case samples == 2:
		return 0.5
	case samples <= 5:
		return 0.7
	case samples <= 10:
		return 0.85
	default:
		return 0.95
	}
}

// ImportanceOf grades a finding: high when the percent difference exceeds 50
// and confidence is at least 0.7, medium when only one holds, low otherwise.
func ImportanceOf(percentDiff, confidence float64) Importance {
	bigDiff := math.Abs(percentDiff) > highImportancePct
	trusted := confidence >= highImportanceConfidence
	switch {
	case bigDiff && trusted:
		return ImportanceHigh
	case bigDiff || trusted:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

// PercentDiff returns delta relative to the negative average. With a zero
// negative average it is 100 when positive is above zero and 0 otherwise.
func PercentDiff(pos, neg float64) float64 {
	if neg == 0 {
		if pos > 0 {
			return 100
		}
		return 0
	}
	return (pos - neg) / neg * 100
}

// AnalyzeContrastivePatterns compares positive and negative examples metric by
// metric. Both sides need at least one example; otherwise the result has no
// insights and a summary explaining why. Insights are sorted high, medium, low.
func AnalyzeContrastivePatterns(positive, negative []types.ContentPatterns) ContrastiveAnalysisResult {
	result := ContrastiveAnalysisResult{
		PositiveCount: len(positive),
		NegativeCount: len(negative),
		Insights:      []ContrastiveInsight{},
	}
	if len(positive) == 0 || len(negative) == 0 {
		result.Summary = fmt.Sprintf(
			"Contrastive analysis needs at least one successful and one rejected example; have %d successful and %d rejected.",
			len(positive), len(negative))
		return result
	}
	result.HasContrastiveData = true

	confidence := Confidence(min(len(positive), len(negative)))
	for _, m := range contrastiveMetrics {
		posAvg := average(positive, m.value)
		negAvg := average(negative, m.value)
		delta := posAvg - negAvg
		if math.Abs(delta) <= m.threshold {
			continue
		}
		pct := PercentDiff(posAvg, negAvg)
		result.Insights = append(result.Insights, ContrastiveInsight{
			Metric:        m.name,
			Description:   describe(m, posAvg, negAvg, pct),
			PositiveAvg:   round2(posAvg),
			NegativeAvg:   round2(negAvg),
			Delta:         round2(delta),
			PercentDiff:   round2(pct),
			Confidence:    confidence,
			Importance:    ImportanceOf(pct, confidence),
			LowerIsBetter: m.lowerIsBetter,
		})
	}

	sort.SliceStable(result.Insights, func(i, j int) bool {
		return result.Insights[i].Importance.rank() < result.Insights[j].Importance.rank()
	})

	result.Summary = fmt.Sprintf("Compared %d successful and %d rejected examples: %d differentiating patterns found.",
		len(positive), len(negative), len(result.Insights))
	return result
}

func describe(m contrastiveMetric, pos, neg, pct float64) string {
	more := "more"
	if pos < neg {
		more = "fewer"
	}
	return fmt.Sprintf("Successful resumes have %s %s (%.2f vs %.2f, %+.0f%%)", more, m.label, pos, neg, pct)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
