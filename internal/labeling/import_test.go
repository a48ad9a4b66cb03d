package labeling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

func TestDecodeImport(t *testing.T) {
	doc := `{"examples": [
		{"job_title": "SRE", "outcome_type": "negative", "job_description": "Run Kubernetes", "resume_text": "Ran clusters"},
		{"job_title": "Data Engineer", "industry": "retail", "role_level": "mid", "outcome_type": "positive", "job_description": "Spark", "resume_text": "Built Spark jobs"}
	]}`

	examples, err := DecodeImport([]byte(doc))
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, types.OutcomeNegative, examples[0].OutcomeType)
	assert.Equal(t, "retail", examples[1].Industry)
	assert.Equal(t, "mid", examples[1].RoleLevel)
}

func TestDecodeImport_SchemaViolation(t *testing.T) {
	_, err := DecodeImport([]byte(`{"examples": [{"job_title": "SRE"}]}`))
	require.Error(t, err)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
