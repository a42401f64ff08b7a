//go:build !ocr

package ocr

import (
	"context"

	"go.uber.org/zap"
)

// Processor is the stub used when OCR support is not compiled in. All
// operations fail with ErrNotEnabled.
type Processor struct{}

// NewProcessor returns ErrNotEnabled. Rebuild with -tags ocr to enable
// OCR support.
func NewProcessor(opts Options, log *zap.Logger) (*Processor, error) {
	return nil, ErrNotEnabled
}

// Close is a no-op. It is safe to call on a nil processor.
func (p *Processor) Close() error {
	return nil
}

// ExtractWithOCR returns ErrNotEnabled.
func (p *Processor) ExtractWithOCR(ctx context.Context, data []byte) (*Result, error) {
	return nil, ErrNotEnabled
}
