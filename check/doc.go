// Package check verifies the factual claims of a structured summary
// against the processed source document. Facts are enumerated from four
// summary regions (metadata, key points, high-importance clauses, risk
// flags), run through type-specific checkers, and classified as
// verified, missing, modified, hallucination or malformed.
package check
