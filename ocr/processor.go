//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"github.com/tsawler/veridoc/format"
	"github.com/tsawler/veridoc/internal/pdfscan"
	"github.com/tsawler/veridoc/model"
)

// Processor runs Tesseract over image inputs and the embedded page
// images of scanned PDFs. It holds one Tesseract client and serializes
// access to it; Close must be called to release native resources.
type Processor struct {
	opts Options
	log  *zap.Logger

	mu     sync.Mutex // the gosseract client is not safe for concurrent use
	client *gosseract.Client
}

// NewProcessor creates a Processor with the given options.
func NewProcessor(opts Options, log *zap.Logger) (*Processor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.withDefaults()

	client := gosseract.NewClient()
	if err := client.SetLanguage(opts.Languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr: set languages %q: %w", opts.languageString(), err)
	}
	if err := client.SetVariable("user_defined_dpi", fmt.Sprint(opts.DPI)); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr: set dpi: %w", err)
	}

	return &Processor{opts: opts, log: log, client: client}, nil
}

// Close releases the Tesseract client.
func (p *Processor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

// ExtractWithOCR recognizes text in the document. Image inputs become a single
// page; PDFs are mined for embedded page images and each image becomes
// one page. A page whose recognition fails degrades to an empty page
// rather than failing the document; the context is checked between
// pages.
func (p *Processor) ExtractWithOCR(ctx context.Context, data []byte) (*Result, error) {
	var images [][]byte
	switch format.DetectFromMagic(data) {
	case format.Image:
		images = [][]byte{data}
	case format.PDF:
		embedded, err := pdfscan.ScanImages(data)
		if err != nil {
			return nil, fmt.Errorf("ocr: scan pdf images: %w", err)
		}
		if len(embedded) == 0 {
			return nil, ErrNoImages
		}
		for _, img := range embedded {
			images = append(images, img.Data)
		}
	default:
		return nil, fmt.Errorf("ocr: input is neither an image nor a PDF")
	}

	p.log.Debug("ocr started",
		zap.Int("pages", len(images)),
		zap.String("languages", p.opts.languageString()))

	res := &Result{}
	var confSum float64
	var wordCount int
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		num := i + 1

		page, conf, err := p.recognizePage(num, img)
		if err != nil {
			p.log.Warn("page recognition failed, degrading to empty page",
				zap.Int("page", num), zap.Error(err))
			res.Pages = append(res.Pages, degradedPage(num, 0, 0))
			res.PageConfidence = append(res.PageConfidence, 0)
			res.Degraded++
			continue
		}

		res.Pages = append(res.Pages, page)
		res.PageConfidence = append(res.PageConfidence, conf)
		confSum += conf * float64(len(page.Elements))
		wordCount += len(page.Elements)
	}

	if wordCount > 0 {
		res.Confidence = confSum / float64(wordCount)
	}
	if res.Text() == "" {
		return res, ErrNoText
	}

	p.log.Debug("ocr complete",
		zap.Int("pages", len(res.Pages)),
		zap.Int("degraded", res.Degraded),
		zap.Float64("confidence", res.Confidence))
	return res, nil
}

// recognizePage runs one image through Tesseract and builds a positioned
// page from the word bounding boxes.
func (p *Processor) recognizePage(num int, data []byte) (page model.Page, conf float64, err error) {
	normalized, w, h, err := normalizeImage(data)
	if err != nil {
		return page, 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.client.SetImageFromBytes(normalized); err != nil {
		return page, 0, fmt.Errorf("set image: %w", err)
	}
	boxes, err := p.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return page, 0, fmt.Errorf("recognize: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text:       b.Word,
			X:          float64(b.Box.Min.X),
			Y:          float64(b.Box.Min.Y),
			Width:      float64(b.Box.Dx()),
			Height:     float64(b.Box.Dy()),
			Confidence: b.Confidence,
		})
	}

	page, conf = buildPage(num, float64(w), float64(h), words, p.opts)
	return page, conf, nil
}
