// Package prompts holds the LLM prompt templates used for feedback
// enrichment. Templates live in feedback.json, embedded at compile time, and
// use {{.Field}} placeholders.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

//go:embed feedback.json
var feedbackJSON []byte

// Name identifies a template in feedback.json.
type Name string

const (
	// HRComments asks for one recruiter comment per resume section.
	HRComments Name = "hr-comments"
	// InsightSummary asks for a short coaching summary of contrastive findings.
	InsightSummary Name = "insight-summary"
)

var placeholderRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// template is a parsed prompt with the fields it expects.
type template struct {
	text   string
	fields []string
}

var (
	loadOnce  sync.Once
	templates map[Name]template
	loadErr   error
)

// MissingFieldsError reports placeholders that Render had no value for.
type MissingFieldsError struct {
	Prompt Name
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("prompt %q is missing values for %s", e.Prompt, strings.Join(e.Fields, ", "))
}

// Render fills the named template. Every placeholder must have a value in
// data; unused entries in data are ignored.
func Render(name Name, data map[string]string) (string, error) {
	t, err := lookup(name)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, f := range t.fields {
		if _, ok := data[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return "", &MissingFieldsError{Prompt: name, Fields: missing}
	}

	return placeholderRe.ReplaceAllStringFunc(t.text, func(m string) string {
		return data[placeholderRe.FindStringSubmatch(m)[1]]
	}), nil
}

func lookup(name Name) (template, error) {
	loadOnce.Do(func() {
		templates, loadErr = parse(feedbackJSON)
	})
	if loadErr != nil {
		return template{}, loadErr
	}
	t, ok := templates[name]
	if !ok {
		return template{}, fmt.Errorf("prompt %q not found", name)
	}
	return t, nil
}

func parse(data []byte) (map[Name]template, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file: %w", err)
	}

	out := make(map[Name]template, len(raw))
	for key, text := range raw {
		seen := map[string]bool{}
		var fields []string
		for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				fields = append(fields, m[1])
			}
		}
		sort.Strings(fields)
		out[Name(key)] = template{text: text, fields: fields}
	}
	return out, nil
}
