// Package pdfscan is a minimal, linear PDF scanner used by the extraction
// backends. It discovers stream objects by scanning the raw bytes rather
// than walking the cross-reference table: the engine consumes a one-shot
// in-memory buffer and never needs random object access, incremental
// updates, or font decoding.
//
// The scanner exposes three capabilities: Flate stream decoding, a
// content-stream tokenizer that yields positioned text fragments, and
// embedded image harvesting for the OCR fallback.
package pdfscan
