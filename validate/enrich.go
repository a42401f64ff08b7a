package validate

import (
	"strings"

	"github.com/tsawler/veridoc/model"
	"github.com/tsawler/veridoc/summary"
)

// EnrichedSummary is the verified summary with citation references woven
// into its text. Key points and risk flags carry at most one appended
// reference each; clauses collect every reference that supports them.
type EnrichedSummary struct {
	Title     string                 `json:"title"`
	Meta      summary.Meta           `json:"meta"`
	KeyPoints []string               `json:"tldr"`
	Clauses   []EnrichedClause       `json:"clauses"`
	RiskFlags []string               `json:"red_flags"`
	Glossary  []summary.GlossaryTerm `json:"glossary,omitempty"`

	// Citations maps every cited fact to its rendered reference.
	Citations map[string]string `json:"citations,omitempty"`
}

// EnrichedClause is a clause with the references that support it.
type EnrichedClause struct {
	Name       string             `json:"name"`
	Text       string             `json:"text"`
	Importance summary.Importance `json:"importance"`
	References []string           `json:"references,omitempty"`
}

// citedFact pairs a fact with its rendered reference, in check order.
type citedFact struct {
	fact string
	ref  string
}

// enrich builds the cited summary from the check results. Facts are
// applied in check order, so the output is deterministic for identical
// inputs.
func enrich(sum *summary.Summary, checked []model.CheckedFact) *EnrichedSummary {
	var cited []citedFact
	index := make(map[string]string)
	for _, f := range checked {
		if f.Citation == nil {
			continue
		}
		if _, ok := index[f.Fact]; ok {
			continue
		}
		ref := f.Citation.Reference()
		cited = append(cited, citedFact{fact: f.Fact, ref: ref})
		index[f.Fact] = ref
	}

	out := &EnrichedSummary{
		Title:     sum.Title,
		Meta:      sum.Meta,
		KeyPoints: make([]string, 0, len(sum.KeyPoints)),
		Clauses:   make([]EnrichedClause, 0, len(sum.Clauses)),
		RiskFlags: make([]string, 0, len(sum.RiskFlags)),
		Glossary:  sum.Glossary,
	}
	if len(index) > 0 {
		out.Citations = index
	}

	for _, point := range sum.KeyPoints {
		out.KeyPoints = append(out.KeyPoints, appendFirstRef(point, cited))
	}
	for _, clause := range sum.Clauses {
		out.Clauses = append(out.Clauses, EnrichedClause{
			Name:       clause.Name,
			Text:       clause.Text,
			Importance: clause.Importance,
			References: collectRefs(clause.Name+" "+clause.Text, cited),
		})
	}
	for _, flag := range sum.RiskFlags {
		out.RiskFlags = append(out.RiskFlags, appendFirstRef(flag, cited))
	}
	return out
}

// appendFirstRef appends the reference of the first cited fact the text
// contains, as " [p.X ...]". Texts mentioning no cited fact pass through
// unchanged.
func appendFirstRef(text string, cited []citedFact) string {
	low := strings.ToLower(text)
	for _, c := range cited {
		if strings.Contains(low, strings.ToLower(c.fact)) {
			return text + " [" + c.ref + "]"
		}
	}
	return text
}

// collectRefs gathers the references of every cited fact the text
// contains, deduplicated, in check order.
func collectRefs(text string, cited []citedFact) []string {
	low := strings.ToLower(text)
	var refs []string
	seen := make(map[string]struct{})
	for _, c := range cited {
		if !strings.Contains(low, strings.ToLower(c.fact)) {
			continue
		}
		if _, ok := seen[c.ref]; ok {
			continue
		}
		seen[c.ref] = struct{}{}
		refs = append(refs, c.ref)
	}
	return refs
}
