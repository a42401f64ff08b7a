package extract

import (
	"errors"
	"fmt"
)

// ErrInsufficientText signals that extraction succeeded mechanically but
// yielded too little text to trust. It is recoverable: callers escalate
// to the OCR fallback. Results returned alongside this error are valid.
var ErrInsufficientText = errors.New("extract: insufficient text extracted")

// ErrUnsupportedFormat is returned when the input bytes match no format
// any backend can read.
var ErrUnsupportedFormat = errors.New("extract: unsupported document format")

// ExtractionError is the fatal extraction outcome: every applicable
// backend failed. Native holds the (possibly joined) native backend
// failure; OCR holds the OCR fallback failure and is nil when OCR was
// never attempted.
type ExtractionError struct {
	Native error
	OCR    error
}

func (e *ExtractionError) Error() string {
	if e.OCR == nil {
		return fmt.Sprintf("extraction failed: %v", e.Native)
	}
	return fmt.Sprintf("extraction failed: native: %v; ocr: %v", e.Native, e.OCR)
}

// Unwrap exposes both underlying errors to errors.Is / errors.As.
func (e *ExtractionError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Native != nil {
		errs = append(errs, e.Native)
	}
	if e.OCR != nil {
		errs = append(errs, e.OCR)
	}
	return errs
}
