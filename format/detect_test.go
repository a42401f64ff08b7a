package format

import "testing"

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, Image},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, Image},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0x00}, Image},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2A}, Image},
		{"bmp", []byte{'B', 'M', 0x36, 0x00}, Image},
		{"html doctype", []byte("<!DOCTYPE html><html></html>"), HTML},
		{"html tag", []byte("<html><body>x</body></html>"), HTML},
		{"html leading whitespace", []byte("\n  <html>"), HTML},
		{"xhtml", []byte("<?xml version=\"1.0\"?><html></html>"), HTML},
		{"plain text", []byte("just some text"), Unknown},
		{"too short", []byte("ab"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		want     Format
	}{
		{"magic wins over extension", []byte("%PDF-1.4"), "scan.png", PDF},
		{"extension fallback", []byte("plain old text"), "contract.pdf", PDF},
		{"text fallback", []byte("Le contrat est conclu."), "notes", PlainText},
		{"binary garbage", []byte{0x00, 0x01, 0xFE, 0xFF, 0x80}, "blob.bin", Unknown},
		{"txt extension", []byte("hello"), "a.txt", PlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.data, tt.filename); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if PDF.String() != "PDF" || Unknown.String() != "Unknown" || Image.String() != "Image" {
		t.Error("unexpected Format string values")
	}
}
