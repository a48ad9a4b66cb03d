package ats

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FormattingOptions carries facts about the source document that cannot be
// recovered from its text.
type FormattingOptions struct {
	// PageCount of the original document; zero when unknown.
	PageCount int
}

const (
	maxPages         = 2
	minWords         = 100
	maxParagraphWord = 50
	maxBulletGlyphs  = 2
	minTableLines    = 2
	minColumnLines   = 3
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}\b`)

	columnGapPattern = regexp.MustCompile(`\S {5,}\S`)

	graphicsPattern = regexp.MustCompile(`(?i)\[(?:image|photo|picture|graphic|logo|icon|chart|figure)\b[^\]]*\]|<img\b|!\[[^\]]*\]\([^)]*\)`)
)

// dateFamilies are the date notations counted by the mixed-format check.
var dateFamilies = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}/\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?,? \d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}(?:-\d{2})?\b`),
	regexp.MustCompile(`\b\d{1,2}-\d{4}\b`),
}

// specialBullets are glyphs other than ASCII dashes and asterisks that
// resumes use as list markers.
const specialBullets = "•◦▪▫■□●○➢➤►▶✓✔❖◆◇★☆→‣⁃∙·"

// CheckFormatting flags layout patterns that break ATS parsers. The score
// starts at 100, each triggered check subtracts a fixed penalty and appends
// one issue. The score floors at 0.
func CheckFormatting(resumeText string, opts FormattingOptions) FormattingResult {
	lines := strings.Split(strings.ReplaceAll(resumeText, "\r\n", "\n"), "\n")
	score := 100
	issues := make([]Issue, 0)

	add := func(penalty int, issue Issue) {
		score -= penalty
		issues = append(issues, issue)
	}

	if !emailPattern.MatchString(resumeText) {
		add(15, Issue{
			Type:       IssueMissingEmail,
			Severity:   SeverityCritical,
			Message:    "No email address found",
			Suggestion: "Add a professional email address to the contact section at the top",
		})
	}

	if !phonePattern.MatchString(resumeText) {
		add(5, Issue{
			Type:       IssueMissingPhone,
			Severity:   SeverityWarning,
			Message:    "No phone number found",
			Suggestion: "Add a phone number so recruiters can reach you",
		})
	}

	if hasTableLayout(lines) {
		add(10, Issue{
			Type:       IssueTableLayout,
			Severity:   SeverityWarning,
			Message:    "Table-like layout detected",
			Suggestion: "Replace tables with plain lines of text; many ATS parsers scramble table cells",
		})
	}

	if hasMultiColumnLayout(lines) {
		add(10, Issue{
			Type:       IssueMultiColumn,
			Severity:   SeverityWarning,
			Message:    "Multi-column layout detected",
			Suggestion: "Use a single-column layout so content is read in the right order",
		})
	}

	if n := countDateFamilies(resumeText); n > 1 {
		add(5, Issue{
			Type:       IssueMixedDateFormats,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("%d different date formats used", n),
			Suggestion: "Use one date format throughout, for example \"Jan 2020\"",
		})
	}

	if opts.PageCount > maxPages {
		add(10, Issue{
			Type:       IssueTooManyPages,
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("Resume is %d pages long", opts.PageCount),
			Suggestion: "Keep the resume to one or two pages",
		})
	}

	if n := countBulletGlyphs(lines); n > maxBulletGlyphs {
		add(3, Issue{
			Type:       IssueMixedBullets,
			Severity:   SeverityInfo,
			Message:    fmt.Sprintf("%d different bullet symbols used", n),
			Suggestion: "Use a single, simple bullet symbol",
		})
	}

	if words := len(strings.Fields(resumeText)); words < minWords {
		add(20, Issue{
			Type:       IssueTooShort,
			Severity:   SeverityCritical,
			Message:    fmt.Sprintf("Resume has only %d words", words),
			Suggestion: "Add detail about your experience, skills and accomplishments",
		})
	}

	if hasLongParagraph(lines) {
		add(5, Issue{
			Type:       IssueLongParagraph,
			Severity:   SeverityInfo,
			Message:    fmt.Sprintf("Paragraph longer than %d words found", maxParagraphWord),
			Suggestion: "Break long paragraphs into concise bullet points",
		})
	}

	if graphicsPattern.MatchString(resumeText) {
		add(15, Issue{
			Type:       IssueGraphics,
			Severity:   SeverityCritical,
			Message:    "Images or graphics detected",
			Suggestion: "Remove images, logos and charts; ATS parsers cannot read them",
		})
	}

	return FormattingResult{Score: max(score, 0), Issues: issues}
}

// HasContactInfo reports whether text contains an email address or phone number.
func HasContactInfo(text string) bool {
	return emailPattern.MatchString(text) || phonePattern.MatchString(text)
}

func hasTableLayout(lines []string) bool {
	tabbed, piped := 0, 0
	for _, line := range lines {
		if strings.Count(line, "\t") >= 2 {
			tabbed++
		}
		if strings.Count(line, "|") >= 2 {
			piped++
		}
	}
	return tabbed >= minTableLines || piped >= minTableLines
}

func hasMultiColumnLayout(lines []string) bool {
	n := 0
	for _, line := range lines {
		if columnGapPattern.MatchString(strings.TrimSpace(line)) {
			n++
		}
	}
	return n >= minColumnLines
}

func countDateFamilies(text string) int {
	n := 0
	for _, re := range dateFamilies {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

func countBulletGlyphs(lines []string) int {
	seen := make(map[rune]struct{})
	for _, line := range lines {
		r, _ := utf8.DecodeRuneInString(strings.TrimSpace(line))
		if strings.ContainsRune(specialBullets, r) {
			seen[r] = struct{}{}
		}
	}
	return len(seen)
}

func isBulletLine(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return r == '-' || r == '*' || r == '+' || strings.ContainsRune(specialBullets, r)
}

func hasLongParagraph(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isBulletLine(trimmed) {
			continue
		}
		if len(strings.Fields(trimmed)) > maxParagraphWord {
			return true
		}
	}
	return false
}
