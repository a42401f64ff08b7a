package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func init() {
	// Register the extended decoders so image.DecodeConfig sees them.
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
	image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
	image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
}

// normalizeImage prepares raw image bytes for Tesseract and reports the
// pixel dimensions. PNG and JPEG pass through unchanged; TIFF and BMP
// are re-encoded as PNG.
func normalizeImage(data []byte) ([]byte, int, int, error) {
	cfg, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("ocr: decode image: %w", err)
	}

	switch kind {
	case "png", "jpeg":
		return data, cfg.Width, cfg.Height, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("ocr: decode %s image: %w", kind, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, 0, fmt.Errorf("ocr: re-encode %s image: %w", kind, err)
	}
	return buf.Bytes(), cfg.Width, cfg.Height, nil
}
