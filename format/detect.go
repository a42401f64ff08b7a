// Package format provides input format detection for the veridoc engine.
package format

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document.
	HTML
	// Image indicates a raster image (PNG, JPEG, TIFF, BMP), handled by
	// the OCR fallback only.
	Image
	// PlainText indicates UTF-8 text with no recognizable structure.
	PlainText
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	case Image:
		return "Image"
	case PlainText:
		return "PlainText"
	default:
		return "Unknown"
	}
}

// Detect determines the input format from magic bytes, falling back to the
// filename extension and finally to a plain-text heuristic. Magic bytes win
// over the extension because uploads frequently carry wrong or missing
// extensions.
func Detect(data []byte, filename string) Format {
	if f := DetectFromMagic(data); f != Unknown {
		return f
	}
	if f := detectFromExtension(filename); f != Unknown {
		return f
	}
	if utf8.Valid(data) {
		return PlainText
	}
	return Unknown
}

// DetectFromMagic checks leading magic bytes to determine the format.
// Returns Unknown if the content cannot be identified from magic alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	// PNG magic: \x89PNG
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return Image
	}

	// JPEG magic: \xFF\xD8\xFF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return Image
	}

	// TIFF magic: II*\x00 (little endian) or MM\x00* (big endian)
	if (data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00) ||
		(data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A) {
		return Image
	}

	// BMP magic: BM
	if data[0] == 'B' && data[1] == 'M' {
		return Image
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}

// detectFromExtension determines the format from the filename extension.
func detectFromExtension(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return Image
	case ".txt":
		return PlainText
	default:
		return Unknown
	}
}
