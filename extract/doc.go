// Package extract turns raw document bytes into page-indexed positioned
// text. It drives an explicit per-document state machine:
//
//	RAW → NATIVE_EXTRACTED | NATIVE_FAILED
//	NATIVE_FAILED or insufficient text → escalate to OCR (package ocr)
//
// Four native backends are tried depending on the detected input format:
// a layout-aware PDF backend that positions words from the content-stream
// text operators, a raw-stream PDF backend that harvests string tokens
// with line-level approximate positions, an HTML backend, and a
// plain-text backend.
//
// A result below the minimum-text threshold is a recoverable signal
// (ErrInsufficientText), not a failure: the caller is expected to
// escalate to the OCR fallback and only treat the document as unreadable
// when that fails too.
package extract
