package facts

import (
	"regexp"
	"strings"

	"github.com/tsawler/veridoc/model"
)

// patternFamily is one named regular expression within a fact type.
// The family name travels with every fact it produces.
type patternFamily struct {
	name string
	re   *regexp.Regexp
}

const frenchMonths = `janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre`

var factPatterns = map[model.FactType][]patternFamily{
	model.FactDate: {
		{"numeric-date", regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`)},
		{"iso-date", regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)},
		{"day-month-year", regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:` + frenchMonths + `)\s+\d{4}\b`)},
		{"month-day-year", regexp.MustCompile(`(?i)\b(?:` + frenchMonths + `)\s+\d{1,2},?\s+\d{4}\b`)},
	},
	model.FactAmount: {
		{"euro-suffix", regexp.MustCompile(`(?i)\b\d{1,3}(?:\s?\d{3})*(?:[,.]\d{2})?\s*(?:€|EUR\b|euros?\b)`)},
		{"euro-prefix", regexp.MustCompile(`(?i)(?:€|\bEUR)\s*\d{1,3}(?:\s?\d{3})*(?:[,.]\d{2})?\b`)},
		{"dollar", regexp.MustCompile(`(?i)\b\d{1,3}(?:\s?\d{3})*(?:[,.]\d{2})?\s*(?:dollars?\b|\$)`)},
	},
	model.FactPercentage: {
		{"percent", regexp.MustCompile(`\b\d{1,3}(?:[,.]\d{1,2})?\s*%`)},
	},
	model.FactDuration: {
		{"numeric-duration", regexp.MustCompile(`(?i)\b\d+\s*(?:ans?|années?|mois|semaines?|jours?)\b`)},
		{"word-duration", regexp.MustCompile(`(?i)\b(?:un|une|deux|trois|quatre|cinq|six|sept|huit|neuf|dix)\s+(?:ans?|années?|mois)\b`)},
	},
	model.FactParty: {
		{"person", regexp.MustCompile(`\b(?:Monsieur|Madame|M\.|Mme)\s+\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*`)},
		{"company-suffix", regexp.MustCompile(`\b\p{Lu}[\p{Lu}\s&]{2,50}(?:S\.A\.S|SARL|SAS|SA|EURL|SCI)\b`)},
		{"company-prefix", regexp.MustCompile(`\b(?i:société|entreprise|compagnie)\s+\p{Lu}[\pL\s&]{2,50}`)},
	},
}

// ExtractFacts runs every pattern family over the text and returns the
// matches grouped by fact type, deduplicated case- and
// whitespace-insensitively, in first-seen order.
func ExtractFacts(text string) map[model.FactType][]string {
	out := make(map[model.FactType][]string, len(model.FactTypes))
	for _, t := range model.FactTypes {
		seen := make(map[string]struct{})
		var unique []string
		for _, fam := range factPatterns[t] {
			for _, m := range fam.re.FindAllString(text, -1) {
				m = strings.TrimSpace(m)
				if m == "" {
					continue
				}
				k := model.Key(m)
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				unique = append(unique, m)
			}
		}
		out[t] = unique
	}
	return out
}

// Classify returns the typed facts found inside one candidate string,
// with the pattern family that produced each match. A string with no
// match of the requested type yields nil.
func Classify(t model.FactType, s string) []model.Fact {
	var found []model.Fact
	for _, fam := range factPatterns[t] {
		for _, m := range fam.re.FindAllString(s, -1) {
			found = append(found, model.Fact{Type: t, Raw: strings.TrimSpace(m), Family: fam.name})
		}
	}
	return found
}

// WellFormed reports whether the whole trimmed string is one
// syntactically valid fact of the given type.
func WellFormed(t model.FactType, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, fam := range factPatterns[t] {
		if m := fam.re.FindString(s); strings.TrimSpace(m) == s {
			return true
		}
	}
	return false
}
