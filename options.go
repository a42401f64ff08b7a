package veridoc

import (
	"go.uber.org/zap"

	"github.com/tsawler/veridoc/config"
	"github.com/tsawler/veridoc/metrics"
)

// Option configures an Engine at construction time.
type Option func(*settings)

type settings struct {
	cfg config.Config
	log *zap.Logger
	rec metrics.Recorder
}

// WithConfig replaces the full pipeline configuration. The configuration
// should come from config.Load or config.Parse so defaults and
// validation have been applied.
func WithConfig(cfg config.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRecorder sets the diagnostics recorder. The default discards all
// diagnostics; use metrics.NewPromRecorder for Prometheus export.
func WithRecorder(rec metrics.Recorder) Option {
	return func(s *settings) {
		if rec != nil {
			s.rec = rec
		}
	}
}

// WithOCRLanguages overrides the Tesseract language list.
func WithOCRLanguages(langs ...string) Option {
	return func(s *settings) {
		if len(langs) > 0 {
			s.cfg.OCR.Languages = langs
		}
	}
}

func defaultSettings() *settings {
	return &settings{
		cfg: config.Default(),
		log: zap.NewNop(),
		rec: metrics.NopRecorder{},
	}
}
