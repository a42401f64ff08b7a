// Package summary defines the structured contract summary produced by an
// external summarization collaborator, and validates incoming summary
// JSON against an embedded schema before any fact checking runs.
package summary

// Importance ranks how much a clause matters. Only high and critical
// clauses contribute facts to verification.
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// rank orders importance levels; unknown values rank lowest.
func (i Importance) rank() int {
	switch i {
	case ImportanceLow:
		return 1
	case ImportanceMedium:
		return 2
	case ImportanceHigh:
		return 3
	case ImportanceCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether i ranks at or above other.
func (i Importance) AtLeast(other Importance) bool {
	return i.rank() >= other.rank()
}

// Meta holds the contract-level metadata claims of a summary.
type Meta struct {
	ContractType string   `json:"contract_type,omitempty"`
	DateSigned   string   `json:"date_signed,omitempty"`
	Parties      []string `json:"parties,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Amount       string   `json:"amount,omitempty"`
}

// Clause is one explained contract clause.
type Clause struct {
	Name          string     `json:"name"`
	Text          string     `json:"text"`
	Importance    Importance `json:"importance"`
	PageReference string     `json:"page_reference,omitempty"`
}

// GlossaryTerm explains one legal term in plain language.
type GlossaryTerm struct {
	Term              string `json:"term"`
	SimpleExplanation string `json:"simple_explanation"`
	LegalDefinition   string `json:"legal_definition,omitempty"`
}

// Summary is the structured summary under verification: metadata, key
// points, explained clauses and risk flags, as emitted by the
// summarization collaborator.
type Summary struct {
	Title           string         `json:"title"`
	Meta            Meta           `json:"meta"`
	KeyPoints       []string       `json:"tldr"`
	Clauses         []Clause       `json:"clauses"`
	RiskFlags       []string       `json:"red_flags"`
	Glossary        []GlossaryTerm `json:"glossary,omitempty"`
	Confidence      float64        `json:"confidence_score"`
	ProcessingNotes []string       `json:"processing_notes,omitempty"`
	Disclaimer      string         `json:"disclaimer,omitempty"`
}
