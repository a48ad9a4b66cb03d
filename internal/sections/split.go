// Package sections splits plain-text resumes into named sections.
package sections

import (
	"regexp"
	"strings"
)

// Canonical section names produced by SplitIntoSections.
const (
	Header         = "header"
	Full           = "full"
	Summary        = "summary"
	Experience     = "experience"
	Education      = "education"
	Skills         = "skills"
	Projects       = "projects"
	Certifications = "certifications"
)

// Section is a named slice of resume text.
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// maxHeadingLen bounds how long a line may be and still count as a heading.
const maxHeadingLen = 50

var headingPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{Summary, regexp.MustCompile(`(?i)^(?:professional |career |executive )?(?:summary|profile|objective|about(?: me)?|overview)$`)},
	{Experience, regexp.MustCompile(`(?i)^(?:professional |work |relevant |employment )?(?:experience|employment(?: history)?|work history|career history)$`)},
	{Education, regexp.MustCompile(`(?i)^(?:education|academic background|academics|education (?:&|and) training)$`)},
	{Skills, regexp.MustCompile(`(?i)^(?:technical |core |key )?(?:skills|competencies|technologies|tech stack|skills (?:&|and) [a-z]+)$`)},
	{Projects, regexp.MustCompile(`(?i)^(?:personal |selected |key |side )?projects$`)},
	{Certifications, regexp.MustCompile(`(?i)^(?:certifications?|licenses(?: (?:&|and) certifications)?|certificates)$`)},
}

// HeadingName reports the canonical section name when line is a section heading.
// Surrounding markdown or decoration characters and a trailing colon are ignored.
func HeadingName(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = strings.Trim(s, "#*=_-:| \t")
	if s == "" || len(s) > maxHeadingLen {
		return "", false
	}
	s = strings.Join(strings.Fields(s), " ")
	for _, h := range headingPatterns {
		if h.re.MatchString(s) {
			return h.name, true
		}
	}
	return "", false
}

// SplitIntoSections scans resume text line by line. Text before the first
// heading becomes a "header" section; when no heading is found the whole text
// is returned as a single "full" section. Short sections are kept.
func SplitIntoSections(resumeText string) []Section {
	lines := strings.Split(strings.ReplaceAll(resumeText, "\r\n", "\n"), "\n")

	var (
		result  []Section
		current = Header
		buf     []string
		found   bool
	)

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if current != Header || content != "" {
			result = append(result, Section{Name: current, Content: content})
		}
		buf = buf[:0]
	}

	for _, line := range lines {
		if name, ok := HeadingName(line); ok {
			flush()
			current = name
			found = true
			continue
		}
		buf = append(buf, line)
	}

	if !found {
		return []Section{{Name: Full, Content: strings.TrimSpace(resumeText)}}
	}
	flush()
	return result
}
