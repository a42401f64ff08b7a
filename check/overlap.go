package check

import "strings"

// significantTokens returns the lowercased tokens of s strictly longer
// than minLen.
func significantTokens(s string, minLen int) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if len(tok) > minLen {
			out = append(out, tok)
		}
	}
	return out
}

// tokenSet builds a membership set of significant tokens.
func tokenSet(s string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range significantTokens(s, minLen) {
		set[tok] = struct{}{}
	}
	return set
}

// overlapRatio is the fraction of the fact's significant tokens present
// in the document token set. A fact with no significant tokens overlaps
// nothing.
func overlapRatio(fact string, docTokens map[string]struct{}, minLen int) float64 {
	tokens := significantTokens(fact, minLen)
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range tokens {
		if _, ok := docTokens[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}
