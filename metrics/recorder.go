package metrics

// Recorder receives pipeline diagnostics. Implementations must be safe
// for concurrent use.
type Recorder interface {
	// DocumentProcessed records one completed extraction attempt.
	DocumentProcessed(method string, ok bool, seconds float64)

	// PageConfidence records the mean OCR word confidence of one page.
	PageConfidence(confidence float64)

	// FactChecked records one fact verdict by source region and status.
	FactChecked(source, status string)

	// ValidationCompleted records one cross-validation run.
	ValidationCompleted(passed bool, accuracy float64)
}

// NopRecorder discards all diagnostics.
type NopRecorder struct{}

func (NopRecorder) DocumentProcessed(string, bool, float64) {}
func (NopRecorder) PageConfidence(float64)                  {}
func (NopRecorder) FactChecked(string, string)              {}
func (NopRecorder) ValidationCompleted(bool, float64)       {}

// PromRecorder feeds the package's Prometheus metrics.
type PromRecorder struct{}

// NewPromRecorder registers the pipeline metrics and returns a recorder
// backed by them.
func NewPromRecorder() PromRecorder {
	Register()
	return PromRecorder{}
}

func (PromRecorder) DocumentProcessed(method string, ok bool, seconds float64) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	DocumentsProcessedTotal.WithLabelValues(method, status).Inc()
	ExtractionDuration.WithLabelValues(method).Observe(seconds)
}

func (PromRecorder) PageConfidence(confidence float64) {
	OCRPageConfidence.Observe(confidence)
}

func (PromRecorder) FactChecked(source, status string) {
	FactsCheckedTotal.WithLabelValues(source, status).Inc()
}

func (PromRecorder) ValidationCompleted(passed bool, accuracy float64) {
	result := "failed"
	if passed {
		result = "passed"
	}
	ValidationsTotal.WithLabelValues(result).Inc()
	ValidationAccuracy.Observe(accuracy)
}
