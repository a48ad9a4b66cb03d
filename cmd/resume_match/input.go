package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// jobSource names where a job description comes from: a text file or a URL.
type jobSource struct {
	File string
	URL  string
}

func (s jobSource) validate() error {
	if s.File == "" && s.URL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if s.File != "" && s.URL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	return nil
}

// load returns the cleaned job description text.
func (s jobSource) load(ctx context.Context) (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	if s.File != "" {
		text, _, err := ingestion.IngestFromFile(s.File)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	}
	text, meta, err := ingestion.IngestFromURL(ctx, s.URL, ingestion.URLOptions{Logger: appLogger})
	if err != nil {
		return "", fmt.Errorf("failed to fetch job description: %w", err)
	}
	appLogger.Info("fetched job posting",
		zap.String("title", meta.Title),
		zap.String("platform", meta.Platform),
	)
	return text, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
