package extract

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/veridoc/format"
	"github.com/tsawler/veridoc/internal/pdfscan"
	"github.com/tsawler/veridoc/model"
)

// DefaultMinTextLength is the quality threshold below which an extraction
// is treated as insufficient and escalated to OCR.
const DefaultMinTextLength = 100

// Approximate geometry used when a backend cannot position text: a fixed
// left margin, a starting offset from the top of the page, and a constant
// line height.
const (
	approxLeftMargin  = 50.0
	approxTopOffset   = 72.0
	approxLineStep    = 15.0
	approxLineWidth   = 500.0
	approxLineHeight  = 12.0
	approxFontSize    = 12.0
	fragmentLineBand  = 2.0 // fragments within this vertical distance share a line
	wordGapFontFactor = 0.3 // horizontal gap below fontSize*factor merges fragments
)

// Stats describes one extraction pass.
type Stats struct {
	Method     model.ExtractionMethod
	Pages      int
	TextLength int
	Elements   int
	Duration   time.Duration
}

// Result is the outcome of a native extraction: positioned pages plus
// diagnostics.
type Result struct {
	Pages []model.Page
	Stats Stats
}

// Extractor is the native (non-OCR) positioned-text extractor. It is
// immutable after construction and safe for concurrent use.
type Extractor struct {
	minTextLength int
	log           *zap.Logger
}

// New creates an Extractor. minTextLength <= 0 selects
// DefaultMinTextLength; a nil logger is replaced with a nop logger.
func New(minTextLength int, log *zap.Logger) *Extractor {
	if minTextLength <= 0 {
		minTextLength = DefaultMinTextLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{minTextLength: minTextLength, log: log}
}

// Extract runs the native backend chain for the detected input format.
//
// For PDFs the layout-aware backend is tried first and the raw-stream
// backend on its failure; both failing yields an *ExtractionError joining
// the two causes. Image inputs return an empty result with
// ErrInsufficientText so the caller escalates straight to OCR. A
// mechanically successful extraction whose total text is below the
// minimum-text threshold also returns its pages together with
// ErrInsufficientText.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (*Result, error) {
	start := time.Now()
	f := format.Detect(data, filename)
	e.log.Debug("native extraction started",
		zap.String("format", f.String()),
		zap.Int("bytes", len(data)))

	var (
		pages  []model.Page
		method model.ExtractionMethod
		err    error
	)

	switch f {
	case format.PDF:
		pages, method, err = e.extractPDF(ctx, data)
	case format.HTML:
		pages, err = e.extractHTML(data)
		method = model.MethodHTML
	case format.PlainText:
		pages = e.extractPlainText(data)
		method = model.MethodPlainText
	case format.Image:
		// Nothing for a native backend to do; hand the document to OCR.
		e.log.Debug("image input, escalating to OCR")
		return &Result{Stats: Stats{Method: model.MethodOCR, Duration: time.Since(start)}}, ErrInsufficientText
	default:
		return nil, &ExtractionError{Native: ErrUnsupportedFormat}
	}

	if err != nil {
		e.log.Warn("native extraction failed", zap.Error(err))
		return nil, &ExtractionError{Native: err}
	}

	res := &Result{
		Pages: pages,
		Stats: Stats{
			Method:     method,
			Pages:      len(pages),
			TextLength: totalTextLength(pages),
			Elements:   totalElements(pages),
			Duration:   time.Since(start),
		},
	}

	if res.Stats.TextLength < e.minTextLength {
		e.log.Info("native extraction insufficient",
			zap.Int("text_length", res.Stats.TextLength),
			zap.Int("threshold", e.minTextLength))
		return res, ErrInsufficientText
	}

	e.log.Debug("native extraction complete",
		zap.String("method", string(method)),
		zap.Int("pages", res.Stats.Pages),
		zap.Int("text_length", res.Stats.TextLength))
	return res, nil
}

// extractPDF tries the layout-aware backend, then the raw-stream backend.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) ([]model.Page, model.ExtractionMethod, error) {
	pages, layoutErr := e.extractLayout(ctx, data)
	if layoutErr == nil {
		return pages, model.MethodLayout, nil
	}
	e.log.Debug("layout backend failed, trying raw-stream backend", zap.Error(layoutErr))

	pages, rawErr := e.extractRawStream(ctx, data)
	if rawErr == nil {
		return pages, model.MethodRawStream, nil
	}

	return nil, "", errors.Join(layoutErr, rawErr)
}

// extractLayout positions words from the PDF content-stream text
// operators. Each text-bearing content stream is one page, in document
// order.
func (e *Extractor) extractLayout(ctx context.Context, data []byte) ([]model.Page, error) {
	streams, err := pdfscan.ScanStreams(data)
	if err != nil {
		return nil, err
	}
	sizes := pdfscan.ScanPageSizes(data)

	var pages []model.Page
	for _, s := range streams {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.IsContent() {
			continue
		}
		num := len(pages) + 1
		size := pdfscan.SizeFor(sizes, num)

		frags := pdfscan.TokenizeContent(s.Data)
		if len(frags) == 0 {
			continue
		}
		pages = append(pages, buildLayoutPage(num, size, frags))
	}

	if len(pages) == 0 {
		return nil, errors.New("extract: no text content streams in PDF")
	}
	return pages, nil
}

// buildLayoutPage groups fragments into lines and word elements,
// converting PDF bottom-left coordinates to the model's top-left origin.
func buildLayoutPage(num int, size pdfscan.PageSize, frags []pdfscan.Fragment) model.Page {
	type line struct {
		y     float64 // PDF baseline
		frags []pdfscan.Fragment
	}

	var lines []*line
	for _, f := range frags {
		var target *line
		for _, l := range lines {
			if absf(l.y-f.Y) < fragmentLineBand {
				target = l
				break
			}
		}
		if target == nil {
			target = &line{y: f.Y}
			lines = append(lines, target)
		}
		target.frags = append(target.frags, f)
	}

	var elements []model.TextElement
	var textLines []string
	for _, l := range lines {
		var lineText strings.Builder
		var prevEnd float64
		for i, f := range l.frags {
			fs := f.FontSize
			if fs <= 0 {
				fs = approxFontSize
			}
			// Adjacent fragments on a line are one run; a larger gap is
			// a word break in the page text.
			if i > 0 {
				if f.X-prevEnd > fs*wordGapFontFactor {
					lineText.WriteString(" ")
				}
			}
			lineText.WriteString(f.Text)
			prevEnd = f.X + float64(len([]rune(f.Text)))*fs*0.5

			for _, w := range splitWords(f) {
				w.Page = num
				w.Y = size.Height - w.Y - w.Height // flip to top-left origin
				elements = append(elements, w)
			}
		}
		textLines = append(textLines, lineText.String())
	}

	return model.Page{
		Number:   num,
		Width:    size.Width,
		Height:   size.Height,
		Text:     strings.Join(textLines, "\n"),
		Elements: elements,
		Method:   model.MethodLayout,
	}
}

// splitWords splits one fragment into word-level elements with estimated
// per-word x offsets (average glyph width of half the font size).
func splitWords(f pdfscan.Fragment) []model.TextElement {
	fs := f.FontSize
	if fs <= 0 {
		fs = approxFontSize
	}
	charW := fs * 0.5

	var words []model.TextElement
	runes := []rune(f.Text)
	i := 0
	for i < len(runes) {
		for i < len(runes) && runes[i] == ' ' {
			i++
		}
		start := i
		for i < len(runes) && runes[i] != ' ' {
			i++
		}
		if start == i {
			continue
		}
		word := string(runes[start:i])
		words = append(words, model.TextElement{
			Text:     word,
			X:        f.X + float64(start)*charW,
			Y:        f.Y,
			Width:    float64(i-start) * charW,
			Height:   fs,
			FontSize: fs,
		})
	}
	return words
}

// extractRawStream harvests string tokens from the decoded streams and
// assigns line-level approximate positions: fixed left margin, constant
// line height, each line one step further down the page.
func (e *Extractor) extractRawStream(ctx context.Context, data []byte) ([]model.Page, error) {
	streams, err := pdfscan.ScanStreams(data)
	if err != nil {
		return nil, err
	}
	sizes := pdfscan.ScanPageSizes(data)

	var pages []model.Page
	for _, s := range streams {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !s.Decoded {
			continue
		}
		strs := pdfscan.HarvestStrings(s.Data)
		if len(strs) == 0 {
			continue
		}
		num := len(pages) + 1
		size := pdfscan.SizeFor(sizes, num)
		text := strings.Join(strs, " ")
		pages = append(pages, approxPage(num, size.Width, size.Height, splitNonEmptyLines(text), model.MethodRawStream))
	}

	if len(pages) == 0 {
		return nil, errors.New("extract: no readable strings in PDF streams")
	}
	return pages, nil
}

// extractPlainText treats the whole input as a single page of text.
func (e *Extractor) extractPlainText(data []byte) []model.Page {
	lines := splitNonEmptyLines(string(data))
	size := pdfscan.SizeFor(nil, 1)
	return []model.Page{approxPage(1, size.Width, size.Height, lines, model.MethodPlainText)}
}

// approxPage builds a page whose elements carry only approximate
// line-level geometry.
func approxPage(num int, w, h float64, lines []string, method model.ExtractionMethod) model.Page {
	elements := make([]model.TextElement, 0, len(lines))
	y := approxTopOffset
	for _, line := range lines {
		elements = append(elements, model.TextElement{
			Text:     line,
			Page:     num,
			X:        approxLeftMargin,
			Y:        y,
			Width:    approxLineWidth,
			Height:   approxLineHeight,
			FontSize: approxFontSize,
		})
		y += approxLineStep
	}
	return model.Page{
		Number:   num,
		Width:    w,
		Height:   h,
		Text:     strings.Join(lines, "\n"),
		Elements: elements,
		Method:   method,
	}
}

func splitNonEmptyLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func totalTextLength(pages []model.Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Text)
	}
	return n
}

func totalElements(pages []model.Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Elements)
	}
	return n
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
