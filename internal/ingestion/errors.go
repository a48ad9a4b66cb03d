package ingestion

import "errors"

var (
	// ErrInvalidURL is returned when a URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrFileNotFound is returned when an input file does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned for resume files that are not txt, pdf or docx
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyDocument is returned when a document contains no text
	ErrEmptyDocument = errors.New("document contains no text")
)
