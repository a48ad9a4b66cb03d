package labeling

import (
	"encoding/json"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

// ImportFile is the document accepted by DecodeImport.
type ImportFile struct {
	Examples []Example `json:"examples"`
}

// DecodeImport validates an import document against the labeled examples
// schema and decodes it.
func DecodeImport(data []byte) ([]Example, error) {
	if err := schemas.ValidateLabeledExamples(data); err != nil {
		return nil, &ImportError{Message: "import file does not match schema", Cause: err}
	}

	var file ImportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, &ImportError{Message: "failed to decode import file", Cause: err}
	}
	return file.Examples, nil
}
