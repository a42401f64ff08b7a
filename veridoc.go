// Package veridoc extracts positioned text and typed facts from contract
// documents and verifies externally produced structured summaries against
// them.
//
// Basic usage:
//
//	engine := veridoc.New()
//	defer engine.Close()
//
//	doc, err := engine.Process(ctx, data, "contrat.pdf")
//	if err != nil {
//	    // handle error
//	}
//	res, err := engine.ValidateJSON(ctx, summaryJSON, doc.Doc)
//	if err != nil {
//	    // handle error
//	}
//	if !res.Report.ValidationPassed {
//	    log.Println(res.Report.Render())
//	}
//
// Native extraction is tried first; scanned documents escalate to the
// Tesseract OCR fallback, which requires building with -tags ocr. For
// advanced use cases the lower-level extract, facts, cite, check and
// validate packages are also available.
package veridoc

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/veridoc/check"
	"github.com/tsawler/veridoc/cite"
	"github.com/tsawler/veridoc/config"
	"github.com/tsawler/veridoc/extract"
	"github.com/tsawler/veridoc/facts"
	"github.com/tsawler/veridoc/metrics"
	"github.com/tsawler/veridoc/model"
	"github.com/tsawler/veridoc/ocr"
	"github.com/tsawler/veridoc/summary"
	"github.com/tsawler/veridoc/validate"
)

// Engine is the document processing and verification pipeline. It is
// immutable after New and safe for concurrent use across documents.
type Engine struct {
	cfg config.Config
	log *zap.Logger
	rec metrics.Recorder

	extractor *extract.Extractor
	ocrProc   *ocr.Processor // nil when OCR support is unavailable
	facts     *facts.Extractor
	validator *validate.Validator
}

// Document is the outcome of processing one input.
type Document struct {
	Doc    *model.ProcessedDocument
	Method model.ExtractionMethod
	State  extract.State

	// OCRConfidence is the aggregate OCR word confidence in [0,100].
	// Zero for native extractions.
	OCRConfidence float64

	// DegradedPages counts OCR pages where recognition failed and an
	// empty page stands in.
	DegradedPages int
}

// New creates an Engine. When OCR support is not compiled in or the
// Tesseract client fails to initialize, the engine still works for
// natively extractable documents; scanned inputs then fail with both
// backend errors.
func New(opts ...Option) *Engine {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	ocrProc, err := ocr.NewProcessor(ocr.Options{
		Languages:       s.cfg.OCR.Languages,
		DPI:             s.cfg.OCR.DPI,
		ConfidenceFloor: s.cfg.OCR.ConfidenceFloor,
		LineGap:         s.cfg.OCR.LineGap,
	}, s.log)
	if err != nil {
		ocrProc = nil
		if errors.Is(err, ocr.ErrNotEnabled) {
			s.log.Debug("ocr fallback unavailable", zap.Error(err))
		} else {
			s.log.Warn("ocr initialization failed", zap.Error(err))
		}
	}

	checker := check.New(check.Options{
		TokenOverlapThreshold: s.cfg.Checker.TokenOverlapThreshold,
		MinTokenLength:        s.cfg.Checker.MinTokenLength,
	}, s.log)

	return &Engine{
		cfg:       s.cfg,
		log:       s.log,
		rec:       s.rec,
		extractor: extract.New(s.cfg.Extraction.MinTextLength, s.log),
		ocrProc:   ocrProc,
		facts:     facts.NewExtractor(s.log),
		validator: validate.New(checker, cite.NewEngine(s.log), s.log),
	}
}

// Close releases the OCR client, if any. The engine must not be used
// after Close.
func (e *Engine) Close() error {
	if e.ocrProc == nil {
		return nil
	}
	return e.ocrProc.Close()
}

// Process extracts positioned text from the input, escalating to OCR
// when native extraction fails or yields too little text, and normalizes
// the pages into a fact-annotated document.
//
// Both backends failing is the only fatal outcome and is reported as an
// *extract.ExtractionError carrying both causes.
func (e *Engine) Process(ctx context.Context, data []byte, filename string) (*Document, error) {
	start := time.Now()
	e.log.Debug("processing started",
		zap.String("filename", filename),
		zap.Int("bytes", len(data)),
		zap.String("state", extract.StateRaw.String()))

	var (
		pages    []model.Page
		method   model.ExtractionMethod
		ocrConf  float64
		degraded int
	)

	res, nativeErr := e.extractor.Extract(ctx, data, filename)
	if nativeErr == nil {
		pages = res.Pages
		method = res.Stats.Method
		e.logTransition(extract.StateNativeExtracted, zap.String("method", string(method)))
	} else {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if errors.Is(nativeErr, extract.ErrInsufficientText) {
			// Mechanically successful, just too sparse to trust: an
			// escalation, not a failure.
			e.logTransition(extract.StateNativeExtracted,
				zap.String("escalation", "insufficient text"))
		} else {
			e.logTransition(extract.StateNativeFailed, zap.Error(nativeErr))
		}

		ocrRes, ocrErr := e.runOCR(ctx, data)
		if ocrErr != nil {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			e.logTransition(extract.StateOCRFailed, zap.Error(ocrErr))
			e.rec.DocumentProcessed(string(model.MethodOCRFailed), false, time.Since(start).Seconds())
			return nil, &extract.ExtractionError{Native: nativeCause(nativeErr), OCR: ocrErr}
		}
		pages = ocrRes.Pages
		method = model.MethodOCR
		ocrConf = ocrRes.Confidence
		degraded = ocrRes.Degraded
		for _, c := range ocrRes.PageConfidence {
			e.rec.PageConfidence(c)
		}
		e.logTransition(extract.StateOCRExtracted,
			zap.Float64("confidence", ocrConf),
			zap.Int("degraded_pages", degraded))
	}

	doc := e.facts.Process(pages)
	e.logTransition(extract.StateNormalized,
		zap.Int("sections", doc.Stats.SectionsFound),
		zap.Int("facts", doc.Stats.FactsFound))
	e.rec.DocumentProcessed(string(method), true, time.Since(start).Seconds())

	return &Document{
		Doc:           doc,
		Method:        method,
		State:         extract.StateNormalized,
		OCRConfidence: ocrConf,
		DegradedPages: degraded,
	}, nil
}

// Validate verifies a structured summary against a processed document
// using the configured gate thresholds.
func (e *Engine) Validate(ctx context.Context, sum *summary.Summary, doc *model.ProcessedDocument) (*validate.Result, error) {
	res, err := e.validator.Validate(ctx, sum, doc,
		e.cfg.Validation.TargetAccuracy, e.cfg.Validation.MaxCitationErrorRate)
	if err != nil {
		return nil, err
	}

	e.logTransition(extract.StateFactChecked, zap.Int("facts", res.Report.TotalFactsChecked))
	for _, f := range res.Facts {
		e.rec.FactChecked(f.Source.String(), f.Status.String())
	}
	e.rec.ValidationCompleted(res.Report.ValidationPassed, res.Report.AccuracyPercentage)
	e.logTransition(extract.StateValidated,
		zap.Bool("passed", res.Report.ValidationPassed),
		zap.Float64("accuracy", res.Report.AccuracyPercentage))

	return res, nil
}

// ValidateJSON validates raw summary JSON against the embedded schema,
// then verifies it against the document.
func (e *Engine) ValidateJSON(ctx context.Context, raw []byte, doc *model.ProcessedDocument) (*validate.Result, error) {
	sum, err := summary.Parse(raw)
	if err != nil {
		return nil, err
	}
	return e.Validate(ctx, sum, doc)
}

func (e *Engine) runOCR(ctx context.Context, data []byte) (*ocr.Result, error) {
	if e.ocrProc == nil {
		return nil, ocr.ErrNotEnabled
	}
	return e.ocrProc.ExtractWithOCR(ctx, data)
}

func (e *Engine) logTransition(s extract.State, fields ...zap.Field) {
	e.log.Info("state transition", append([]zap.Field{zap.String("state", s.String())}, fields...)...)
}

// nativeCause strips the ExtractionError wrapper the native extractor
// may have applied, so the final error carries the underlying cause once.
func nativeCause(err error) error {
	var xerr *extract.ExtractionError
	if errors.As(err, &xerr) {
		return xerr.Native
	}
	return err
}
