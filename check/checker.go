package check

import (
	"go.uber.org/zap"

	"github.com/tsawler/veridoc/facts"
	"github.com/tsawler/veridoc/model"
	"github.com/tsawler/veridoc/summary"
)

// Default thresholds of the token-overlap acceptance heuristic.
const (
	DefaultTokenOverlapThreshold = 0.7
	DefaultMinTokenLength        = 3

	confOverlap = 0.8

	// riskFlagFloor is the confidence floor for risk-flag facts. Risk
	// flags are interpretive, so low-confidence verdicts on them are
	// lifted rather than trusted.
	riskFlagFloor = 0.7
)

// Options tunes the Checker. The zero value selects all defaults.
type Options struct {
	// TokenOverlapThreshold is the minimum fraction of a textual fact's
	// significant tokens that must appear in the document for the
	// overlap heuristic to accept it.
	TokenOverlapThreshold float64

	// MinTokenLength is the length a token must exceed to count as
	// significant.
	MinTokenLength int
}

func (o Options) withDefaults() Options {
	if o.TokenOverlapThreshold <= 0 {
		o.TokenOverlapThreshold = DefaultTokenOverlapThreshold
	}
	if o.MinTokenLength <= 0 {
		o.MinTokenLength = DefaultMinTokenLength
	}
	return o
}

// Checker verifies summary facts against a processed document. It is
// immutable after construction and safe for concurrent use.
type Checker struct {
	opts Options
	log  *zap.Logger
}

// New creates a Checker. A nil logger is replaced with a nop logger.
func New(opts Options, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{opts: opts.withDefaults(), log: log}
}

// Check enumerates the verifiable facts of the summary and verifies each
// against the document. Results are returned in enumeration order:
// metadata, key points, high-importance clauses, risk flags.
func (c *Checker) Check(sum *summary.Summary, doc *model.ProcessedDocument) []model.CheckedFact {
	l := newLookup(doc, c.opts.MinTokenLength)

	var results []model.CheckedFact
	results = append(results, c.checkMetadata(l, sum)...)
	results = append(results, c.checkKeyPoints(l, sum)...)
	results = append(results, c.checkClauses(l, sum)...)
	results = append(results, c.checkRiskFlags(l, sum)...)

	verified := 0
	for _, r := range results {
		if r.Verified() {
			verified++
		}
	}
	c.log.Debug("fact check complete",
		zap.Int("facts", len(results)),
		zap.Int("verified", verified))
	return results
}

// checkMetadata verifies the summary's header claims: signing date,
// amount, duration and each party.
func (c *Checker) checkMetadata(l *lookup, sum *summary.Summary) []model.CheckedFact {
	var results []model.CheckedFact
	if sum.Meta.DateSigned != "" {
		results = append(results, c.classify(l, sum.Meta.DateSigned, model.FactDate, model.SourceMetadata))
	}
	if sum.Meta.Amount != "" {
		results = append(results, c.classify(l, sum.Meta.Amount, model.FactAmount, model.SourceMetadata))
	}
	if sum.Meta.Duration != "" {
		results = append(results, c.classify(l, sum.Meta.Duration, model.FactDuration, model.SourceMetadata))
	}
	for _, party := range sum.Meta.Parties {
		if party == "" {
			continue
		}
		results = append(results, c.classify(l, party, model.FactParty, model.SourceMetadata))
	}
	return results
}

// checkKeyPoints extracts the typed facts of each key point and verifies
// them individually.
func (c *Checker) checkKeyPoints(l *lookup, sum *summary.Summary) []model.CheckedFact {
	var results []model.CheckedFact
	for _, point := range sum.KeyPoints {
		for _, f := range extractTypedFacts(point) {
			results = append(results, c.classify(l, f.Raw, f.Type, model.SourceKeyPoint))
		}
	}
	return results
}

// checkClauses verifies clauses with importance at or above high: the
// clause itself must correspond to real document content, and every
// typed fact inside its text must hold.
func (c *Checker) checkClauses(l *lookup, sum *summary.Summary) []model.CheckedFact {
	var results []model.CheckedFact
	for _, clause := range sum.Clauses {
		if !clause.Importance.AtLeast(summary.ImportanceHigh) {
			continue
		}

		out := l.checkClauseExistence(clause.Name)
		results = append(results, c.finish(model.CheckedFact{
			Fact:   "Clause: " + clause.Name,
			Type:   model.FactUnknown,
			Source: model.SourceClause,
		}, l, out, true))

		for _, f := range extractTypedFacts(clause.Text) {
			results = append(results, c.classify(l, f.Raw, f.Type, model.SourceClause))
		}
	}
	return results
}

// checkRiskFlags verifies the factual core of each risk flag. Flags are
// interpretive, so verdict confidence is floored at riskFlagFloor.
func (c *Checker) checkRiskFlags(l *lookup, sum *summary.Summary) []model.CheckedFact {
	var results []model.CheckedFact
	for _, flag := range sum.RiskFlags {
		for _, f := range extractTypedFacts(flag) {
			r := c.classify(l, f.Raw, f.Type, model.SourceRiskFlag)
			if r.Confidence < riskFlagFloor {
				r.Confidence = riskFlagFloor
			}
			results = append(results, r)
		}
	}
	return results
}

// extractTypedFacts pulls the verifiable typed facts out of a free-text
// summary fragment, in canonical type order.
func extractTypedFacts(text string) []model.Fact {
	var out []model.Fact
	for _, t := range model.FactTypes {
		out = append(out, facts.Classify(t, text)...)
	}
	return out
}

// classify runs the typed checker for one fact and finishes the verdict.
func (c *Checker) classify(l *lookup, fact string, t model.FactType, src model.FactSource) model.CheckedFact {
	out := l.checkTyped(t, fact)
	return c.finish(model.CheckedFact{Fact: fact, Type: t, Source: src}, l, out, false)
}

// finish turns a checker outcome into a classified CheckedFact. Facts
// not found anywhere are split by token overlap with the source: none at
// all is a hallucination; partial overlap means missing for typed facts
// and modified for textual ones. Textual facts clearing the overlap
// threshold are accepted at reduced confidence instead.
func (c *Checker) finish(r model.CheckedFact, l *lookup, out outcome, textual bool) model.CheckedFact {
	switch {
	case out.malformed:
		r.Status = model.StatusMalformed
	case out.found:
		r.Status = model.StatusVerified
		r.Confidence = out.confidence
	default:
		ratio := overlapRatio(r.Fact, l.docTokens, c.opts.MinTokenLength)
		switch {
		case textual && ratio >= c.opts.TokenOverlapThreshold:
			r.Status = model.StatusVerified
			r.Confidence = confOverlap
		case ratio == 0:
			r.Status = model.StatusHallucination
		case textual:
			r.Status = model.StatusModified
		default:
			r.Status = model.StatusMissing
		}
	}
	return r
}
