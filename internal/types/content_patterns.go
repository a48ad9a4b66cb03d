// Package types provides the shared value objects passed between the scoring,
// learning and storage packages.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContentPatterns holds per-resume content statistics used for learning and
// contrastive analysis.
type ContentPatterns struct {
	Quantification Quantification  `json:"quantification"`
	ActionVerbs    ActionVerbs     `json:"action_verbs"`
	Achievements   Achievements    `json:"achievements"`
	Structure      Structure       `json:"structure"`
	Keywords       KeywordCoverage `json:"keywords"`
}

// Quantification counts measurable results in bullet text.
type Quantification struct {
	MetricsCount     int     `json:"metrics_count"`
	MetricsPerBullet float64 `json:"metrics_per_bullet"`
}

// ActionVerbs describes how bullets open.
type ActionVerbs struct {
	StrongCount     int      `json:"strong_count"`
	WeakCount       int      `json:"weak_count"`
	StrongVerbsUsed []string `json:"strong_verbs_used,omitempty"`
	DiversityRatio  float64  `json:"diversity_ratio"`
}

// Achievements counts bullets that lead with the outcome.
type Achievements struct {
	ResultsFirstCount int `json:"results_first_count"`
}

// Structure describes the resume layout.
type Structure struct {
	BulletCount  int      `json:"bullet_count"`
	SectionOrder []string `json:"section_order,omitempty"`
}

// KeywordCoverage records which job keywords the resume contains.
type KeywordCoverage struct {
	Found   []string `json:"found,omitempty"`
	Missing []string `json:"missing,omitempty"`
}
