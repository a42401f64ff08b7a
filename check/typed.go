package check

import (
	"regexp"
	"strings"

	"github.com/tsawler/veridoc/model"
)

// Confidence levels of the typed checkers: exact lookup in the extracted
// fact set, then progressively fuzzier text search.
const (
	confExact       = 1.0
	confAmountText  = 0.9
	confFuzzy       = 0.8
	confClauseInSec = 0.9
	confClauseText  = 0.7
)

var (
	dateSepRe       = regexp.MustCompile(`[\s\-.]+`)
	dateComponentRe = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	amountNumRe     = regexp.MustCompile(`\d{1,3}(?:\s?\d{3})*(?:[,.]\d{2})?`)
	percentNumRe    = regexp.MustCompile(`\d{1,3}(?:[,.]\d{1,2})?\s*%`)
	durationNumRe   = regexp.MustCompile(`(?i)(\d+)\s*(mois|ans?|années?|jours?|semaines?)`)
)

// lookup is the read-only view of the processed document the typed
// checkers search in.
type lookup struct {
	doc         *model.ProcessedDocument
	cleanedLow  string
	docTokens   map[string]struct{}
	minTokenLen int
}

func newLookup(doc *model.ProcessedDocument, minTokenLen int) *lookup {
	return &lookup{
		doc:         doc,
		cleanedLow:  strings.ToLower(doc.FullText()),
		docTokens:   tokenSet(doc.FullText(), minTokenLen),
		minTokenLen: minTokenLen,
	}
}

// outcome is a typed checker's raw verdict, before the not-found
// classification pass.
type outcome struct {
	found      bool
	malformed  bool
	confidence float64
}

// checkTyped dispatches one fact to its type-specific checker.
func (l *lookup) checkTyped(t model.FactType, fact string) outcome {
	switch t {
	case model.FactDate:
		return l.checkDate(fact)
	case model.FactAmount:
		return l.checkAmount(fact)
	case model.FactPercentage:
		return l.checkPercentage(fact)
	case model.FactDuration:
		return l.checkDuration(fact)
	case model.FactParty:
		return l.checkParty(fact)
	default:
		return l.checkGeneric(fact)
	}
}

// normalizeDate unifies separators so "15-03-2024", "15.03.2024" and
// "15/03/2024" compare equal.
func normalizeDate(s string) string {
	return strings.ToLower(dateSepRe.ReplaceAllString(strings.TrimSpace(s), "/"))
}

func (l *lookup) checkDate(fact string) outcome {
	normalized := normalizeDate(fact)
	for _, d := range l.doc.FactsOfType(model.FactDate) {
		dn := normalizeDate(d)
		if normalized == dn || strings.Contains(dn, normalized) || strings.Contains(normalized, dn) {
			return outcome{found: true, confidence: confExact}
		}
	}

	// Fuzzy search: separator and zero-padding variants in the text.
	if m := dateComponentRe.FindStringSubmatch(fact); m != nil {
		day, month, year := m[1], m[2], m[3]
		variants := []string{
			day + "/" + month + "/" + year,
			day + "-" + month + "-" + year,
			strings.TrimPrefix(day, "0") + "/" + strings.TrimPrefix(month, "0") + "/" + year,
			day + " " + month + " " + year,
		}
		for _, v := range variants {
			if strings.Contains(l.cleanedLow, strings.ToLower(v)) {
				return outcome{found: true, confidence: confFuzzy}
			}
		}
	}
	return outcome{}
}

func (l *lookup) checkAmount(fact string) outcome {
	num := amountNumRe.FindString(fact)
	if num == "" {
		return outcome{malformed: true}
	}
	for _, a := range l.doc.FactsOfType(model.FactAmount) {
		if strings.Contains(a, num) {
			return outcome{found: true, confidence: confExact}
		}
	}
	if strings.Contains(l.doc.FullText(), num) {
		return outcome{found: true, confidence: confAmountText}
	}
	return outcome{}
}

func (l *lookup) checkPercentage(fact string) outcome {
	pct := percentNumRe.FindString(fact)
	if pct == "" {
		return outcome{malformed: true}
	}
	num := strings.TrimSpace(strings.TrimSuffix(pct, "%"))
	for _, p := range l.doc.FactsOfType(model.FactPercentage) {
		if strings.Contains(p, num) {
			return outcome{found: true, confidence: confExact}
		}
	}
	if strings.Contains(l.doc.FullText(), pct) {
		return outcome{found: true, confidence: confAmountText}
	}
	return outcome{}
}

func (l *lookup) checkDuration(fact string) outcome {
	m := durationNumRe.FindStringSubmatch(fact)
	if m == nil {
		return outcome{malformed: true}
	}
	number, unit := m[1], strings.ToLower(m[2])
	for _, d := range l.doc.FactsOfType(model.FactDuration) {
		low := strings.ToLower(d)
		if strings.Contains(low, number) && strings.Contains(low, unit) {
			return outcome{found: true, confidence: confExact}
		}
	}
	if strings.Contains(l.cleanedLow, number) && strings.Contains(l.cleanedLow, unit) {
		return outcome{found: true, confidence: confAmountText}
	}
	return outcome{}
}

func (l *lookup) checkParty(fact string) outcome {
	party := strings.ToLower(strings.TrimSpace(fact))
	if party == "" {
		return outcome{malformed: true}
	}
	for _, p := range l.doc.FactsOfType(model.FactParty) {
		low := strings.ToLower(p)
		if strings.Contains(low, party) || strings.Contains(party, low) {
			return outcome{found: true, confidence: confExact}
		}
	}
	if strings.Contains(l.cleanedLow, party) {
		return outcome{found: true, confidence: confFuzzy}
	}
	return outcome{}
}

// checkGeneric verifies a textual fact: exact substring first, then the
// token-overlap heuristic at reduced confidence.
func (l *lookup) checkGeneric(fact string) outcome {
	low := strings.ToLower(strings.TrimSpace(fact))
	if low == "" {
		return outcome{malformed: true}
	}
	if strings.Contains(l.cleanedLow, low) {
		return outcome{found: true, confidence: confExact}
	}
	return outcome{}
}

// checkClauseExistence verifies that a named clause corresponds to real
// document content: a named section first, then the full text.
func (l *lookup) checkClauseExistence(name string) outcome {
	low := strings.ToLower(strings.TrimSpace(name))
	if low == "" {
		return outcome{malformed: true}
	}
	for sectionName, sectionText := range l.doc.Sections {
		if strings.Contains(strings.ToLower(sectionName), low) ||
			strings.Contains(strings.ToLower(sectionText), low) {
			return outcome{found: true, confidence: confClauseInSec}
		}
	}
	if strings.Contains(l.cleanedLow, low) {
		return outcome{found: true, confidence: confClauseText}
	}
	return outcome{}
}
