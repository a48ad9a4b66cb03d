package labeling

import "fmt"

// LabelError represents a failure to label one example
type LabelError struct {
	Index   int
	Message string
	Cause   error
}

func (e *LabelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("label error: example %d: %s: %v", e.Index, e.Message, e.Cause)
	}
	return fmt.Sprintf("label error: example %d: %s", e.Index, e.Message)
}

func (e *LabelError) Unwrap() error {
	return e.Cause
}

// ImportError represents an import file that could not be decoded
type ImportError struct {
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("import error: %s", e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
