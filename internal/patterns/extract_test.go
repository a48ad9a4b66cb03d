package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane@example.com

Summary
Engineer.

Experience
- Reduced checkout latency by 40% across 3 regions
- Led migration of 12 services to Kubernetes in 2021
- Helped with on-call rotations
• Built internal CLI used daily
- Led hiring for the platform team

Skills
Go, Kubernetes
`

func TestExtract(t *testing.T) {
	cp := Extract(sampleResume, []string{"kubernetes", "go", "rust"})

	assert.Equal(t, 5, cp.Structure.BulletCount)
	assert.Equal(t, []string{"summary", "experience", "skills"}, cp.Structure.SectionOrder)

	assert.Equal(t, 3, cp.Quantification.MetricsCount)
	assert.InDelta(t, 0.6, cp.Quantification.MetricsPerBullet, 1e-9)
	assert.Equal(t, 2, cp.Achievements.ResultsFirstCount)

	assert.Equal(t, 4, cp.ActionVerbs.StrongCount)
	assert.Equal(t, 1, cp.ActionVerbs.WeakCount)
	assert.Equal(t, []string{"reduced", "led", "built"}, cp.ActionVerbs.StrongVerbsUsed)
	assert.InDelta(t, 0.8, cp.ActionVerbs.DiversityRatio, 1e-9)

	assert.Equal(t, []string{"kubernetes", "go"}, cp.Keywords.Found)
	assert.Equal(t, []string{"rust"}, cp.Keywords.Missing)
}

func TestExtract_FallbackBulletsFromExperience(t *testing.T) {
	resume := "Experience\nDelivered a payments platform serving 2M users\nShort line\nSkills\nGo"

	cp := Extract(resume, nil)

	assert.Equal(t, 1, cp.Structure.BulletCount)
	assert.Equal(t, 1, cp.Quantification.MetricsCount)
	assert.Equal(t, 1, cp.ActionVerbs.StrongCount)
}

func TestExtract_Empty(t *testing.T) {
	cp := Extract("", nil)

	assert.Zero(t, cp.Structure.BulletCount)
	assert.Zero(t, cp.Quantification.MetricsPerBullet)
	assert.Zero(t, cp.ActionVerbs.DiversityRatio)
	assert.NotNil(t, cp.ActionVerbs.StrongVerbsUsed)
	assert.Empty(t, cp.Keywords.Found)
	assert.Empty(t, cp.Keywords.Missing)
}

func TestBullets(t *testing.T) {
	text := "- first\n  * second\n• third\n-\n-5% churn\nplain line\n➤ fourth"

	got := Bullets(text)

	require.Len(t, got, 4)
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, got)
}

func TestCountMetrics(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Cut costs by $1.2M", 1},
		{"Improved conversion 40% and throughput 3x", 2},
		{"Served 1,000,000 requests per day", 1},
		{"From 2019 to 2023", 0},
		{"Reduced p99 latency", 0},
		{"Grew team to 10+ engineers", 1},
		{"No numbers here", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countMetrics(tt.text), tt.text)
	}
}

func TestVerbLists(t *testing.T) {
	assert.True(t, IsStrongVerb("spearheaded"))
	assert.False(t, IsStrongVerb("helped"))
	assert.True(t, IsWeakVerb("helped"))
	assert.False(t, IsWeakVerb("built"))
}
