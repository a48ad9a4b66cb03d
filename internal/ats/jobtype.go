package ats

import "regexp"

// minSignals is the number of distinct signal hits needed to pick a job type.
const minSignals = 2

var (
	seniorSignals = compileSignals(
		`\bsenior\b`,
		`\bsr\b\.?`,
		`\bstaff\b`,
		`\bprincipal\b`,
		`\blead\b`,
		`\barchitect\b`,
		`\bdirector\b`,
		`\bhead of\b`,
		`\bmanager\b`,
		`\bmentor(?:ing|ship)?\b`,
		`\b(?:[5-9]|[1-9]\d)\+? ?(?:years?|yrs)\b`,
	)
	entrySignals = compileSignals(
		`\bentry[- ]level\b`,
		`\bjunior\b`,
		`\bjr\b\.?`,
		`\bnew grad(?:uate)?s?\b`,
		`\brecent graduates?\b`,
		`\bintern(?:ship)?s?\b`,
		`\bgraduate program\b`,
		`\b[0-2] ?[-–] ?[1-3] years?\b`,
		`\bno (?:prior )?experience required\b`,
		`\btraining provided\b`,
	)
	techSignals = compileSignals(
		`\bsoftware\b`,
		`\bengineer(?:ing)?\b`,
		`\bdevelopers?\b`,
		`\bprogramming\b`,
		`\bcloud\b`,
		`\bapis?\b`,
		`\bdatabases?\b`,
		`\bdevops\b`,
		`\bkubernetes\b`,
		`\bpython\b`,
		`\bjava(?:script)?\b`,
		`\bgolang\b`,
		`\bmachine learning\b`,
		`\b(?:back|front)[- ]?end\b`,
		`\bfull[- ]?stack\b`,
		`\bsql\b`,
	)
)

func compileSignals(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// countSignals returns how many distinct signals occur in text.
func countSignals(text string, signals []*regexp.Regexp) int {
	n := 0
	for _, re := range signals {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// DetectJobType classifies a job description. Senior wins over entry, entry
// over tech; each needs at least two distinct signals. Anything else is general.
func DetectJobType(jobDescription string) JobType {
	switch {
	case countSignals(jobDescription, seniorSignals) >= minSignals:
		return JobTypeSenior
	case countSignals(jobDescription, entrySignals) >= minSignals:
		return JobTypeEntry
	case countSignals(jobDescription, techSignals) >= minSignals:
		return JobTypeTech
	default:
		return JobTypeGeneral
	}
}

// WeightsFor returns the weight profile of a job type. Unknown types get the
// general profile.
func WeightsFor(jobType JobType) WeightProfile {
	switch jobType {
	case JobTypeTech:
		return WeightProfile{Keywords: 0.45, Formatting: 0.35, Sections: 0.20}
	case JobTypeSenior:
		return WeightProfile{Keywords: 0.50, Formatting: 0.30, Sections: 0.20}
	case JobTypeEntry:
		return WeightProfile{Keywords: 0.35, Formatting: 0.40, Sections: 0.25}
	case JobTypeGeneral:
		return WeightProfile{Keywords: 0.50, Formatting: 0.25, Sections: 0.25}
	default:
		return WeightsFor(JobTypeGeneral)
	}
}

// JobTypes lists every job type.
func JobTypes() []JobType {
	return []JobType{JobTypeTech, JobTypeSenior, JobTypeEntry, JobTypeGeneral}
}

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeTech, JobTypeSenior, JobTypeEntry, JobTypeGeneral:
		return true
	default:
		return false
	}
}
