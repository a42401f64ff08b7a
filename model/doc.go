// Package model defines the core data types shared across the veridoc
// pipeline: positioned pages and text elements produced by extraction,
// typed facts harvested from document text, citations locating facts in
// the source, and the scored validation report produced by cross
// validation.
//
// All values are created fresh per engine invocation and never mutated
// after construction, so they are safe to share across goroutines.
package model
