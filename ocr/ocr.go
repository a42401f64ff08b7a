// Package ocr provides the OCR fallback for documents whose native
// extraction failed or yielded too little text: scanned PDFs and image
// inputs.
//
// The package wraps the Tesseract OCR engine via gosseract and requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-fra
//
// The real implementation is compiled in with the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag a stub is used and NewProcessor returns ErrNotEnabled.
package ocr

import (
	"errors"
	"strings"

	"github.com/tsawler/veridoc/model"
)

// Tuning defaults. Words below the confidence floor are discarded, and
// words whose vertical distance is within the line gap are merged onto
// one line.
const (
	DefaultConfidenceFloor = 30.0
	DefaultLineGap         = 10.0
	DefaultDPI             = 300
)

// DefaultLanguages is the default Tesseract language list.
var DefaultLanguages = []string{"fra", "eng"}

// ErrNotEnabled is returned by NewProcessor when OCR support was not
// compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("ocr: support not enabled; rebuild with -tags ocr")

// ErrNoImages is returned when a PDF holds no embedded page images the
// OCR backend could recognize.
var ErrNoImages = errors.New("ocr: no recognizable images in document")

// ErrNoText is returned when recognition ran but produced no text on any
// page.
var ErrNoText = errors.New("ocr: recognition produced no text")

// Options configures a Processor. The zero value selects all defaults.
type Options struct {
	// Languages is the Tesseract language list, joined with "+".
	Languages []string

	// DPI is the assumed resolution of input images.
	DPI int

	// ConfidenceFloor is the per-word confidence in [0,100] below which a
	// word is discarded.
	ConfidenceFloor float64

	// LineGap is the maximum vertical distance, in pixels, between two
	// words that still share a line.
	LineGap float64
}

func (o Options) withDefaults() Options {
	if len(o.Languages) == 0 {
		o.Languages = DefaultLanguages
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.ConfidenceFloor <= 0 {
		o.ConfidenceFloor = DefaultConfidenceFloor
	}
	if o.LineGap <= 0 {
		o.LineGap = DefaultLineGap
	}
	return o
}

func (o Options) languageString() string {
	return strings.Join(o.Languages, "+")
}

// Word is one recognized word with its pixel bounding box (top-left
// origin) and Tesseract confidence in [0,100].
type Word struct {
	Text       string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	Confidence float64
}

// Result is the outcome of an OCR pass over a whole document.
type Result struct {
	Pages []model.Page

	// PageConfidence holds the mean word confidence per page, parallel to
	// Pages. A degraded page has confidence 0.
	PageConfidence []float64

	// Confidence is the mean word confidence across all pages in [0,100].
	Confidence float64

	// Degraded counts pages where recognition failed and an empty page
	// was emitted in place.
	Degraded int
}

// Text returns the concatenated text of all pages.
func (r *Result) Text() string {
	parts := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.Join(parts, "\n")
}
