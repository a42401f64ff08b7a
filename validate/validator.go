// Package validate cross-checks a structured summary against the
// processed source document: it runs the fact checker and the citation
// engine over the same fact set, aggregates the outcome into a scored
// ValidationReport, and enriches the summary text with citation
// references. The report is the release gate for the orchestrating
// pipeline.
package validate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/veridoc/check"
	"github.com/tsawler/veridoc/cite"
	"github.com/tsawler/veridoc/model"
	"github.com/tsawler/veridoc/summary"
)

// Default gate thresholds: 95% fact accuracy, under 1% citation errors.
const (
	DefaultTargetAccuracy       = 0.95
	DefaultMaxCitationErrorRate = 0.01
)

// Validator orchestrates fact checking and citation generation. It is
// immutable after construction and safe for concurrent use.
type Validator struct {
	checker *check.Checker
	citer   *cite.Engine
	log     *zap.Logger
}

// New creates a Validator. Nil collaborators are replaced with defaults.
func New(checker *check.Checker, citer *cite.Engine, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	if checker == nil {
		checker = check.New(check.Options{}, log)
	}
	if citer == nil {
		citer = cite.NewEngine(log)
	}
	return &Validator{checker: checker, citer: citer, log: log}
}

// Result couples the scored report with the per-fact details and the
// enriched summary.
type Result struct {
	Report   *model.ValidationReport
	Facts    []model.CheckedFact
	Enriched *EnrichedSummary
}

// Validate checks every summary fact against the document, cites the
// checked facts, and scores the outcome.
//
// accuracy = verified/total*100 and citation error rate =
// uncited/total*100, where total excludes malformed facts. The gate
// passes only when accuracy reaches targetAccuracy*100 and the error
// rate stays within maxCitationErrorRate*100. A summary yielding no
// checkable facts fails with a 100% citation error rate.
func (v *Validator) Validate(ctx context.Context, sum *summary.Summary, doc *model.ProcessedDocument, targetAccuracy, maxCitationErrorRate float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if targetAccuracy <= 0 {
		targetAccuracy = DefaultTargetAccuracy
	}
	if maxCitationErrorRate <= 0 {
		maxCitationErrorRate = DefaultMaxCitationErrorRate
	}

	checked := v.checker.Check(sum, doc)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Cite the checked fact set. Malformed facts are unciteable claims,
	// and clause-existence entries are verified against sections rather
	// than located verbatim, so neither is a citation candidate.
	var toCite []string
	for _, f := range checked {
		if citable(f) {
			toCite = append(toCite, f.Fact)
		}
	}
	batch := v.citer.CiteAll(toCite, doc.Pages)

	for i := range checked {
		if !citable(checked[i]) {
			continue
		}
		if c, ok := batch.Citations[checked[i].Fact]; ok {
			cc := c
			checked[i].Citation = &cc
		}
	}

	report := buildReport(checked, targetAccuracy, maxCitationErrorRate)
	enriched := enrich(sum, checked)

	v.log.Info("cross validation complete",
		zap.Int("facts", report.TotalFactsChecked),
		zap.Int("verified", report.FactsVerified),
		zap.Int("hallucinations", report.Hallucinations),
		zap.Float64("accuracy", report.AccuracyPercentage),
		zap.Float64("citation_error_rate", report.CitationErrorRate),
		zap.Bool("passed", report.ValidationPassed))

	return &Result{Report: report, Facts: checked, Enriched: enriched}, nil
}

// buildReport aggregates per-fact results into the scored report.
func buildReport(checked []model.CheckedFact, targetAccuracy, maxCitationErrorRate float64) *model.ValidationReport {
	r := &model.ValidationReport{}

	uncited := 0
	for _, f := range checked {
		switch f.Status {
		case model.StatusMalformed:
			r.Warnings = append(r.Warnings, fmt.Sprintf("malformed fact: %s", f.Fact))
			continue
		case model.StatusVerified:
			r.FactsVerified++
		case model.StatusMissing:
			r.FactsMissing++
			r.Warnings = append(r.Warnings, fmt.Sprintf("fact not found: %s", f.Fact))
		case model.StatusModified:
			r.FactsModified++
			r.Warnings = append(r.Warnings, fmt.Sprintf("modified fact: %s", f.Fact))
		case model.StatusHallucination:
			r.Hallucinations++
			r.CriticalErrors = append(r.CriticalErrors, fmt.Sprintf("hallucination detected: %s", f.Fact))
		}
		r.TotalFactsChecked++
		if citable(f) && f.Citation == nil {
			uncited++
		}
	}

	if r.TotalFactsChecked > 0 {
		r.AccuracyPercentage = float64(r.FactsVerified) / float64(r.TotalFactsChecked) * 100
		r.CitationErrorRate = float64(uncited) / float64(r.TotalFactsChecked) * 100
		r.CitationAccuracy = float64(r.TotalFactsChecked-uncited) / float64(r.TotalFactsChecked) * 100
	} else {
		// Nothing checkable: nothing is cited, everything is an error.
		r.CitationErrorRate = 100
	}

	r.ValidationPassed = r.AccuracyPercentage >= targetAccuracy*100 &&
		r.CitationErrorRate <= maxCitationErrorRate*100
	return r
}

// citable reports whether a checked fact participates in citation
// generation and the uncited count. Clause-existence entries carry a
// synthetic label, not document text.
func citable(f model.CheckedFact) bool {
	if f.Status == model.StatusMalformed {
		return false
	}
	return !(f.Source == model.SourceClause && f.Type == model.FactUnknown)
}
