package patterns

import "strings"

// strongVerbs open achievement-oriented bullets.
var strongVerbs = newVerbSet(`
accelerated achieved architected automated boosted built consolidated created cut decreased delivered
designed developed doubled drove eliminated engineered established expanded founded generated grew
implemented improved increased initiated introduced launched led mentored migrated modernized negotiated
optimized orchestrated overhauled owned pioneered produced rebuilt redesigned reduced refactored resolved
revamped saved scaled secured shipped simplified spearheaded standardized streamlined tripled transformed
unified won wrote
`)

// weakVerbs describe participation rather than impact.
var weakVerbs = newVerbSet(`
assisted attempted contributed handled helped involved participated responsible served supported tasked
tried used utilized worked
`)

func newVerbSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

// IsStrongVerb reports whether the lower-case word is an impact verb.
func IsStrongVerb(word string) bool {
	_, ok := strongVerbs[word]
	return ok
}

// IsWeakVerb reports whether the lower-case word is a participation verb.
func IsWeakVerb(word string) bool {
	_, ok := weakVerbs[word]
	return ok
}
