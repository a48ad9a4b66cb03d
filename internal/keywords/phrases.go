package keywords

import (
	"regexp"
	"strings"
)

// phrasePatterns lists curated multi-word technical terms. Longer variants come
// before their prefixes so a span is claimed once.
var phrasePatterns = compilePhrases(
	`machine learning`,
	`deep learning`,
	`reinforcement learning`,
	`natural language processing`,
	`large language models?`,
	`computer vision`,
	`neural networks?`,
	`data science`,
	`data engineering`,
	`data analysis`,
	`data analytics`,
	`data visualization`,
	`data pipelines?`,
	`data warehous(?:e|ing)`,
	`big data`,
	`business intelligence`,
	`ci/cd`,
	`continuous integration`,
	`continuous (?:delivery|deployment)`,
	`infrastructure as code`,
	`site reliability(?: engineering)?`,
	`distributed systems`,
	`system design`,
	`cloud computing`,
	`cloud infrastructure`,
	`google cloud(?: platform)?`,
	`amazon web services`,
	`microsoft azure`,
	`software development`,
	`software engineering`,
	`computer science`,
	`object[- ]oriented(?: programming| design)?`,
	`test[- ]driven development`,
	`unit testing`,
	`integration testing`,
	`test automation`,
	`quality assurance`,
	`version control`,
	`rest(?:ful)? apis?`,
	`event[- ]driven`,
	`real[- ]time`,
	`front[- ]end development`,
	`back[- ]end development`,
	`full[- ]stack development`,
	`mobile development`,
	`react native`,
	`spring boot`,
	`ruby on rails`,
	`sql server`,
	`power bi`,
	`user experience`,
	`user interface`,
	`product management`,
	`project management`,
	`program management`,
	`stakeholder management`,
	`change management`,
	`agile methodolog(?:y|ies)`,
	`customer service`,
	`customer success`,
	`supply chain`,
	`financial modeling`,
	`financial analysis`,
	`digital marketing`,
	`social media`,
	`content strategy`,
	`search engine optimization`,
	`technical writing`,
	`problem solving`,
	`cross[- ]functional teams?`,
)

func compilePhrases(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)\b`+p+`\b`))
	}
	return compiled
}

// normalizePhrase lower-cases a phrase and collapses internal whitespace.
func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
