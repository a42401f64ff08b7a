package model

// ExtractionMethod identifies which backend produced a page.
type ExtractionMethod string

const (
	MethodLayout    ExtractionMethod = "layout"
	MethodRawStream ExtractionMethod = "rawstream"
	MethodHTML      ExtractionMethod = "html"
	MethodPlainText ExtractionMethod = "plaintext"
	MethodOCR       ExtractionMethod = "ocr"
	MethodOCRFailed ExtractionMethod = "ocr_failed"
)

// TextElement is a positioned span of text on a page. Coordinates are in
// device units with the origin at the top-left of the page. Width and
// Height are always non-negative.
type TextElement struct {
	Text     string
	Page     int // 1-indexed page number of the owning page
	X        float64
	Y        float64
	Width    float64
	Height   float64
	FontSize float64 // 0 when unknown
	FontName string  // empty when unknown

	// Confidence is the OCR word confidence in [0,100]. It is only set for
	// elements produced by the OCR backend; native extraction leaves it 0.
	Confidence float64
}

// Page is a single extracted page: its full text plus the ordered list of
// positioned elements it owns.
type Page struct {
	Number   int // 1-indexed
	Width    float64
	Height   float64
	Text     string
	Elements []TextElement
	Method   ExtractionMethod
}

// PageZones splits a page's elements into header, body and footer bands.
type PageZones struct {
	Header []TextElement
	Body   []TextElement
	Footer []TextElement
}

// Zones divides the page into logical zones by vertical position. The top
// 15% of the page is the header band and the bottom 15% the footer.
func (p *Page) Zones() PageZones {
	headerLimit := p.Height * 0.15
	footerLimit := p.Height * 0.85

	var z PageZones
	for _, el := range p.Elements {
		switch {
		case el.Y <= headerLimit:
			z.Header = append(z.Header, el)
		case el.Y >= footerLimit:
			z.Footer = append(z.Footer, el)
		default:
			z.Body = append(z.Body, el)
		}
	}
	return z
}

// ProcessingStats describes one fact-extraction pass.
type ProcessingStats struct {
	TextLength    int
	SectionsFound int
	FactsFound    int
	Pages         int
}

// ProcessedDocument is the fully normalized view of an extracted document:
// cleaned text, named sections, typed facts, and the pages they came from.
type ProcessedDocument struct {
	RawText     string
	CleanedText string
	Sections    map[string]string
	Facts       map[FactType][]string
	Pages       []Page
	Stats       ProcessingStats
}

// FullText returns the cleaned text, falling back to the raw text when
// cleaning produced nothing.
func (d *ProcessedDocument) FullText() string {
	if d.CleanedText != "" {
		return d.CleanedText
	}
	return d.RawText
}

// FactsOfType returns the unique fact strings extracted for one type.
func (d *ProcessedDocument) FactsOfType(t FactType) []string {
	return d.Facts[t]
}

// ReadingTime estimates reading time in minutes for slow (150 wpm),
// average (250 wpm) and fast (400 wpm) readers.
type ReadingTime struct {
	WordCount      int
	SlowMinutes    int
	AverageMinutes int
	FastMinutes    int
}

// EstimateReadingTime computes a reading-time estimate for the document.
func (d *ProcessedDocument) EstimateReadingTime() ReadingTime {
	words := 0
	inWord := false
	for _, r := range d.FullText() {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}

	atLeastOne := func(n int) int {
		if n < 1 {
			return 1
		}
		return n
	}
	return ReadingTime{
		WordCount:      words,
		SlowMinutes:    atLeastOne(words / 150),
		AverageMinutes: atLeastOne(words / 250),
		FastMinutes:    atLeastOne(words / 400),
	}
}
