package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/sections"
)

// Canonical sections checked by ValidateSections, in report order.
const (
	SectionContact    = "Contact"
	SectionSummary    = "Summary"
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionSkills     = "Skills"
)

var canonicalSections = []struct {
	name    string
	heading string
}{
	{SectionContact, ""},
	{SectionSummary, sections.Summary},
	{SectionExperience, sections.Experience},
	{SectionEducation, sections.Education},
	{SectionSkills, sections.Skills},
}

var contactHeading = regexp.MustCompile(`(?im)^[\s#*]*contact(?: info(?:rmation)?| details)?[\s:*]*$`)

// ValidateSections checks for the five canonical resume sections. Contact is
// satisfied by an email address, a phone number or a contact heading; the
// others need a recognizable heading line. Score is round(found/5*100).
func ValidateSections(resumeText string) SectionValidationResult {
	headings := make(map[string]bool)
	for _, line := range strings.Split(resumeText, "\n") {
		if name, ok := sections.HeadingName(line); ok {
			headings[name] = true
		}
	}

	result := SectionValidationResult{
		Sections: make([]SectionCheck, 0, len(canonicalSections)),
		Missing:  make([]string, 0),
	}
	found := 0
	for _, c := range canonicalSections {
		var ok bool
		if c.name == SectionContact {
			ok = HasContactInfo(resumeText) || contactHeading.MatchString(resumeText)
		} else {
			ok = headings[c.heading]
		}
		result.Sections = append(result.Sections, SectionCheck{Name: c.name, Found: ok})
		if ok {
			found++
		} else {
			result.Missing = append(result.Missing, c.name)
		}
	}

	result.Score = int(math.Round(float64(found) / float64(len(canonicalSections)) * 100))
	return result
}

// sectionIssues converts missing sections into issues. Contact and Experience
// are critical; the rest are warnings.
func sectionIssues(missing []string) []Issue {
	issues := make([]Issue, 0, len(missing))
	for _, name := range missing {
		section := sections.Header
		for _, c := range canonicalSections {
			if c.name == name && c.heading != "" {
				section = c.heading
			}
		}
		severity := SeverityWarning
		if name == SectionContact || name == SectionExperience {
			severity = SeverityCritical
		}
		issues = append(issues, Issue{
			Type:       IssueMissingSection,
			Severity:   severity,
			Message:    fmt.Sprintf("Missing %s section", name),
			Suggestion: fmt.Sprintf("Add a clearly labeled %q heading", name),
			Section:    section,
		})
	}
	return issues
}
