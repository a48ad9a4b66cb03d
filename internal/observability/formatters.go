// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/feedback"
	"github.com/jonathan/resume-matcher/internal/labeling"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, ending in "..." when cut.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// listWithMore joins up to limit items and notes how many were left out.
func listWithMore(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(items[:limit], ", "), len(items)-limit)
}

// PrintReport outputs the ATS score, the semantic score and the section feedback.
func (p *Printer) PrintReport(r *analysis.Report) {
	if r == nil {
		return
	}
	p.PrintATSScore(r.ATS)

	if r.Semantic != nil {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Overall:  %d/100\n", r.Semantic.OverallScore))
		for _, s := range r.Semantic.SectionScores {
			sb.WriteString(fmt.Sprintf("  %-16s %3d  (%.2f)\n", s.Section, s.Score, s.Similarity))
		}
		p.printBox("SEMANTIC MATCH", strings.TrimSuffix(sb.String(), "\n"))
	}

	p.PrintFeedback(r.Feedback)

	if r.Enrichment != nil && r.Enrichment.Overall != "" {
		p.printBox("RECRUITER SUMMARY", wrap(r.Enrichment.Overall, boxWidth-4))
	}
}

// PrintATSScore outputs the ATS score breakdown.
func (p *Printer) PrintATSScore(s ats.Score) {
	status := "FAIL"
	if s.Passed {
		status = "PASS"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:     %d/100 (%s)\n", s.Overall, status))
	sb.WriteString(fmt.Sprintf("Job type:    %s\n", s.JobType))
	sb.WriteString(fmt.Sprintf("Keywords:    %d%%\n", s.KeywordMatchPct))
	sb.WriteString(fmt.Sprintf("Formatting:  %d\n", s.FormattingScore))
	sb.WriteString(fmt.Sprintf("Sections:    %d\n", s.SectionScore))
	if len(s.MissingKeywords) > 0 {
		sb.WriteString("\nMissing keywords:\n")
		sb.WriteString("  " + listWithMore(s.MissingKeywords, maxItemsToShow) + "\n")
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedback outputs one box per section that has something to say.
func (p *Printer) PrintFeedback(items []feedback.SectionFeedbackItem) {
	for _, item := range items {
		if len(item.Highlights) == 0 && item.Comment == "" {
			continue
		}

		title := strings.ToUpper(item.Section)
		if item.Score != nil {
			title = fmt.Sprintf("%s (%d, %s)", title, *item.Score, item.Level)
		}

		var sb strings.Builder
		for _, h := range item.Highlights {
			sb.WriteString(fmt.Sprintf("%s %s\n", severityMarker(h.Severity), h.Message))
			if h.Suggestion != "" {
				sb.WriteString(fmt.Sprintf("  → %s\n", h.Suggestion))
			}
		}
		if item.Comment != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(wrap(item.Comment, boxWidth-4))
		}
		p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
	}
}

func severityMarker(s ats.Severity) string {
	switch s {
	case ats.SeverityCritical:
		return "✗"
	case ats.SeverityWarning:
		return "⚠"
	default:
		return "•"
	}
}

// PrintLearningReport outputs similar jobs and the suggestions learned from them.
func (p *Printer) PrintLearningReport(r *analysis.LearningReport) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Similar jobs: %d\n", len(r.SimilarJobs)))
	count := min(len(r.SimilarJobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := r.SimilarJobs[i]
		sb.WriteString(fmt.Sprintf("  %.2f  %-8s  %s\n", job.Similarity, job.OutcomeType, job.JobTitle))
	}
	if len(r.SimilarJobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.SimilarJobs)-maxItemsToShow))
	}
	if r.Patterns != nil {
		sb.WriteString(fmt.Sprintf("\nInterviews: %d  Rejections: %d\n", r.Patterns.PositiveCount, r.Patterns.NegativeCount))
		if len(r.Patterns.MustHaveSkills) > 0 {
			sb.WriteString("Must-have skills:\n")
			sb.WriteString("  " + listWithMore(r.Patterns.MustHaveSkills, maxItemsToShow) + "\n")
		}
	}
	p.printBox("LEARNED PATTERNS", strings.TrimSuffix(sb.String(), "\n"))

	if len(r.Suggestions) > 0 {
		sb.Reset()
		for i, s := range r.Suggestions {
			sb.WriteString(fmt.Sprintf("[%s] ", s.Importance))
			sb.WriteString(wrap(s.Message, boxWidth-4))
			if i < len(r.Suggestions)-1 {
				sb.WriteString("\n\n")
			}
		}
		p.printBox("SUGGESTIONS", sb.String())
	}

	if r.Summary != "" {
		p.printBox("COACHING SUMMARY", wrap(r.Summary, boxWidth-4))
	}
}

// PrintBatchResult outputs the outcome of a labeling batch.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchResult(r *labeling.BatchResult) {
	if r == nil {
		return
	}
	if r.Failed == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ LABELED %d OF %d EXAMPLES", r.Succeeded, r.Total))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Labeled %d of %d, %d failed:\n\n", r.Succeeded, r.Total, r.Failed))
	for _, item := range r.Items {
		if item.Error != "" {
			sb.WriteString(fmt.Sprintf("⚠ #%d %s\n", item.Index, item.Error))
		}
	}
	p.printBox("LABELING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text into lines of at most width runes at word boundaries.
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
