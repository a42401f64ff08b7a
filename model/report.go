package model

import (
	"fmt"
	"strings"
)

// CheckStatus is the per-fact verification outcome.
type CheckStatus int

const (
	// StatusVerified means the fact was located in the source document.
	StatusVerified CheckStatus = iota
	// StatusMissing means a typed fact could not be located although the
	// claim shares some vocabulary with the source.
	StatusMissing
	// StatusModified means a textual fact partially matches the source.
	StatusModified
	// StatusHallucination means the fact has no lexical trace in the source.
	StatusHallucination
	// StatusMalformed means the fact matched a pattern syntactically but
	// failed type-specific parsing. Malformed facts are reported as
	// warnings and excluded from the checked-fact denominator.
	StatusMalformed
)

func (s CheckStatus) String() string {
	switch s {
	case StatusVerified:
		return "verified"
	case StatusMissing:
		return "missing"
	case StatusModified:
		return "modified"
	case StatusHallucination:
		return "hallucination"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FactSource identifies which summary region a checked fact came from.
type FactSource int

const (
	SourceMetadata FactSource = iota
	SourceKeyPoint
	SourceClause
	SourceRiskFlag
)

func (s FactSource) String() string {
	switch s {
	case SourceMetadata:
		return "metadata"
	case SourceKeyPoint:
		return "key_point"
	case SourceClause:
		return "clause"
	case SourceRiskFlag:
		return "risk_flag"
	default:
		return "unknown"
	}
}

// CheckedFact is the verification result for a single summary fact.
type CheckedFact struct {
	Fact       string
	Type       FactType
	Source     FactSource
	Status     CheckStatus
	Confidence float64
	Citation   *Citation // nil when no citation was found
}

// Verified reports whether the fact was located in the source.
func (f CheckedFact) Verified() bool { return f.Status == StatusVerified }

// ValidationReport is the aggregate, scored outcome of checking a summary
// against a source document. It is the release gate for the orchestrating
// pipeline.
//
// Invariant: TotalFactsChecked == FactsVerified + FactsMissing +
// FactsModified + Hallucinations. Malformed facts are excluded from the
// denominator and appear only in Warnings.
type ValidationReport struct {
	TotalFactsChecked  int
	FactsVerified      int
	FactsMissing       int
	FactsModified      int
	Hallucinations     int
	AccuracyPercentage float64 // verified / total, in [0,100]
	CitationAccuracy   float64 // cited / total, in [0,100]
	CitationErrorRate  float64 // uncited / total, in [0,100]
	CriticalErrors     []string
	Warnings           []string
	ValidationPassed   bool
}

// Render returns a human-readable multi-line summary of the report.
func (r *ValidationReport) Render() string {
	status := "FAILED"
	if r.ValidationPassed {
		status = "PASSED"
	}

	var b strings.Builder
	b.WriteString("CROSS-VALIDATION REPORT\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Status: %s\n\n", status)
	fmt.Fprintf(&b, "Facts checked:      %d\n", r.TotalFactsChecked)
	fmt.Fprintf(&b, "Facts verified:     %d\n", r.FactsVerified)
	fmt.Fprintf(&b, "Facts missing:      %d\n", r.FactsMissing)
	fmt.Fprintf(&b, "Facts modified:     %d\n", r.FactsModified)
	fmt.Fprintf(&b, "Hallucinations:     %d\n\n", r.Hallucinations)
	fmt.Fprintf(&b, "Fact accuracy:      %.1f%%\n", r.AccuracyPercentage)
	fmt.Fprintf(&b, "Citation accuracy:  %.1f%%\n", r.CitationAccuracy)
	fmt.Fprintf(&b, "Citation error:     %.2f%%\n", r.CitationErrorRate)

	if len(r.CriticalErrors) > 0 {
		fmt.Fprintf(&b, "\nCritical errors (%d):\n", len(r.CriticalErrors))
		for _, e := range r.CriticalErrors {
			fmt.Fprintf(&b, "  - %s\n", e)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
