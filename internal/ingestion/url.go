package ingestion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// Fetch is passed to fetch.URL; nil means defaults.
	Fetch  *fetch.Options
	Logger *zap.Logger
}

// IngestFromURL fetches a job posting, extracts its main text with
// platform-specific selectors and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	platform := fetch.DetectPlatform(urlStr)
	log.Debug("fetching job posting", zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.Message == "invalid URL" {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
		}
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched job posting", zap.Int("html_bytes", len(result.HTML)))

	textContent, err := fetch.ExtractMainText(result.HTML,
		fetch.PlatformContentSelectors(platform),
		fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}
	log.Debug("extracted job description", zap.Int("chars", len(cleanedText)))

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)
	metadata.Title = fetch.Title(result.HTML)
	return cleanedText, metadata, nil
}
