package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectJobType(t *testing.T) {
	tests := []struct {
		name string
		jd   string
		want JobType
	}{
		{
			name: "senior signals",
			jd:   "Senior architect with 10+ years of experience designing platforms.",
			want: JobTypeSenior,
		},
		{
			name: "entry signals",
			jd:   "Entry-level role for a junior developer. New grads welcome.",
			want: JobTypeEntry,
		},
		{
			name: "tech signals",
			jd:   "Lead software engineer writing Python services.",
			want: JobTypeTech,
		},
		{
			name: "senior beats entry",
			jd:   "Senior staff mentor for our internship program and junior hires.",
			want: JobTypeSenior,
		},
		{
			name: "general",
			jd:   "Retail associate for our downtown store.",
			want: JobTypeGeneral,
		},
		{
			name: "empty",
			jd:   "",
			want: JobTypeGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectJobType(tt.jd))
		})
	}
}

func TestDetectJobType_SignalsCountedOnce(t *testing.T) {
	// Repeating one signal is still one distinct hit.
	assert.Equal(t, JobTypeGeneral, DetectJobType("senior senior senior"))
}

func TestWeightsFor_SumToOne(t *testing.T) {
	for _, jt := range JobTypes() {
		w := WeightsFor(jt)
		assert.InDelta(t, 1.0, w.Keywords+w.Formatting+w.Sections, 1e-9, string(jt))
		assert.GreaterOrEqual(t, w.Keywords, 0.0)
		assert.GreaterOrEqual(t, w.Formatting, 0.0)
		assert.GreaterOrEqual(t, w.Sections, 0.0)
	}
}

func TestWeightsFor_UnknownFallsBackToGeneral(t *testing.T) {
	assert.Equal(t, WeightsFor(JobTypeGeneral), WeightsFor(JobType("astronaut")))
}
