package model

import "strings"

// FactType classifies a verifiable fact.
type FactType int

const (
	FactUnknown FactType = iota
	FactDate
	FactAmount
	FactPercentage
	FactDuration
	FactParty
)

// FactTypes lists all concrete fact types in their canonical order. The
// order is fixed so that any iteration over per-type fact sets is
// deterministic.
var FactTypes = []FactType{FactDate, FactAmount, FactPercentage, FactDuration, FactParty}

func (t FactType) String() string {
	switch t {
	case FactDate:
		return "date"
	case FactAmount:
		return "amount"
	case FactPercentage:
		return "percentage"
	case FactDuration:
		return "duration"
	case FactParty:
		return "party"
	default:
		return "unknown"
	}
}

// Fact is a typed claim extracted from document text.
type Fact struct {
	Type   FactType
	Raw    string // the matched text, verbatim
	Family string // name of the pattern family that produced the match
}

// Key returns the deduplication key for a fact string: lowercased with
// whitespace runs collapsed to single spaces. Two facts with equal keys
// are the same fact.
func Key(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
