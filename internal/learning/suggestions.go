package learning

import (
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Suggestion margins relative to the positive average.
const (
	belowTargetRatio = 0.8
	aboveTargetRatio = 1.2
)

// ContrastiveSuggestion is an actionable change derived from an insight.
type ContrastiveSuggestion struct {
	Metric      string     `json:"metric"`
	Importance  Importance `json:"importance"`
	Confidence  float64    `json:"confidence"`
	UserValue   float64    `json:"user_value"`
	TargetValue float64    `json:"target_value"`
	Message     string     `json:"message"`
}

var suggestionTemplates = map[string]string{
	MetricMetricsPerBullet: "Add numbers to more bullets: successful resumes average %.2f metrics per bullet, yours has %.2f.",
	MetricTotalMetrics:     "Quantify more results: successful resumes include about %.0f metrics, yours has %.0f.",
	MetricStrongVerbs:      "Start more bullets with strong action verbs: successful resumes use about %.0f, yours uses %.0f.",
	MetricWeakVerbs:        "Replace weak verbs such as \"helped\" or \"worked on\": successful resumes use about %.0f, yours uses %.0f.",
	MetricResultsFirst:     "Lead with the result in more bullets: successful resumes do this about %.0f times, yours %.0f.",
	MetricBulletCount:      "Adjust the number of bullet points: successful resumes have about %.0f, yours has %.0f.",
	MetricVerbDiversity:    "Vary your action verbs: successful resumes have a diversity ratio of %.2f, yours is %.2f.",
}

// GenerateContrastiveSuggestions compares the user's patterns with the
// positive averages of non-low insights. Higher-is-better metrics produce a
// suggestion when the user is below 80% of the positive average; lower-is-better
// metrics when the user is above 120%.
func GenerateContrastiveSuggestions(insights []ContrastiveInsight, user types.ContentPatterns) []ContrastiveSuggestion {
	suggestions := make([]ContrastiveSuggestion, 0)
	for _, in := range insights {
		if in.Importance == ImportanceLow {
			continue
		}
		m, ok := lookupMetric(in.Metric)
		if !ok {
			continue
		}
		userValue := m.value(user)
		target := in.PositiveAvg

		var needed bool
		if m.lowerIsBetter {
			needed = userValue > aboveTargetRatio*target
		} else {
			needed = userValue < belowTargetRatio*target
		}
		if !needed {
			continue
		}

		suggestions = append(suggestions, ContrastiveSuggestion{
			Metric:      in.Metric,
			Importance:  in.Importance,
			Confidence:  in.Confidence,
			UserValue:   round2(userValue),
			TargetValue: target,
			Message:     fmt.Sprintf(suggestionTemplates[in.Metric], target, userValue),
		})
	}
	return suggestions
}
