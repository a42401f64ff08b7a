package extract

// State is the per-document processing state. Transitions are explicit
// and logged; OCR_FAILED after NATIVE_FAILED is the only fatal terminal
// state.
type State int

const (
	StateRaw State = iota
	StateNativeExtracted
	StateNativeFailed
	StateOCRExtracted
	StateOCRFailed
	StateNormalized
	StateFactChecked
	StateValidated
)

func (s State) String() string {
	switch s {
	case StateRaw:
		return "RAW"
	case StateNativeExtracted:
		return "NATIVE_EXTRACTED"
	case StateNativeFailed:
		return "NATIVE_FAILED"
	case StateOCRExtracted:
		return "OCR_EXTRACTED"
	case StateOCRFailed:
		return "OCR_FAILED"
	case StateNormalized:
		return "NORMALIZED"
	case StateFactChecked:
		return "FACT_CHECKED"
	case StateValidated:
		return "VALIDATED"
	default:
		return "UNKNOWN"
	}
}
