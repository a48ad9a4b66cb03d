package keywords

import "strings"

// stopWords covers function words, job-posting boilerplate, locations and
// compensation vocabulary. Built once at init and never mutated.
var stopWords = newWordSet(`
a about above across after again against all almost along already also although always am among an and another any anyone anything are around as at
be became because become been before being below between both but by can cannot could did do does doing done down during each either else enough etc even
ever every few for from further get gets getting give given go goes going had has have having he her here hers herself him himself his how however i if in
into is it its itself just least less like likely made make makes making many may me might more most much must my myself need needs neither never no nor not
now of off often on once one only onto or other others otherwise our ours ourselves out over own per perhaps please quite rather really same see seem seems
several shall she should since so some something sometimes still such than that the their theirs them themselves then there therefore these they this those
though through throughout thus to together too toward towards under until up upon us use used uses using very via was we well were what whatever when where
whereas whether which while who whoever whom whose why will with within without would yet you your yours yourself yourselves
ability able across additional apply applicant applicants application applications apply applying candidate candidates career careers company companies
description duties ideal including include includes join joining job jobs looking opportunity opportunities organization position positions posting preferred
plus qualification qualifications qualified requirement requirements required responsibilities responsibility role roles seeking strong team teams work
working works environment excellent good great new help helping etc years year experience experienced day days week weeks month months time times
knowledge understanding skills skill level levels minimum preferably familiarity familiar proven demonstrated solid track record related relevant equivalent
degree bachelor bachelors master masters field fields ensure support supporting within across key passion passionate motivated self-starter fast-paced dynamic
must-have nice-to-have bonus detail detail-oriented oriented highly best world-class mission values culture diverse diversity inclusion inclusive equal
employer eeo race color religion sex gender sexual orientation identity national origin age disability veteran status protected applicable law
remote hybrid onsite on-site office location locations based city state country usa us uk united states kingdom canada europe emea apac america americas
san francisco new york york london berlin seattle austin boston chicago toronto remote-first anywhere relocation timezone time-zone
salary salaries compensation pay paid range ranges benefits benefit bonus bonuses equity stock options insurance health dental vision 401k pto vacation
holiday holidays leave parental medical retirement competitive annual base hourly per hour usd eur gbp k perks perk stipend reimbursement
full-time part-time fulltime parttime contract contractor permanent temporary internship employment hire hiring hired start immediately asap
we're you'll you're they're it's don't won't can't isn't aren't
`)

// acronymAllowlist keeps short technical acronyms that would otherwise be
// dropped by the minimum length rule. "it" is left out: tokens are lower-cased,
// so the acronym cannot be told apart from the pronoun.
var acronymAllowlist = newWordSet(`ai ml ui ux qa ci cd db os bi hr`)

func newWordSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether the lower-case token is filtered during extraction.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
