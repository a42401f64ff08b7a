// Package facts normalizes extracted document text and pulls typed,
// verifiable facts out of it: dates, monetary amounts, percentages,
// durations and contracting parties. It also segments the document into
// named contract sections.
//
// The pattern vocabulary targets French-language contracts with common
// English spillover (EUR, dollar amounts). Output order is deterministic
// for identical input.
package facts
