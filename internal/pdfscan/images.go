package pdfscan

import (
	"bytes"
	"image"
	"image/png"
	"regexp"
	"strconv"
	"strings"
)

// EmbeddedImage is an image XObject harvested from the PDF, re-encoded
// where necessary so the payload is always decodable by a standard image
// decoder (JPEG passthrough, or PNG for Flate bitmaps).
type EmbeddedImage struct {
	Data   []byte
	Width  int
	Height int
}

var (
	widthRe  = regexp.MustCompile(`/Width\s+(\d+)`)
	heightRe = regexp.MustCompile(`/Height\s+(\d+)`)
	bpcRe    = regexp.MustCompile(`/BitsPerComponent\s+(\d+)`)
)

// ScanImages returns the embedded page images in document order. Scanned
// PDFs carry one full-page image per page, so the result maps 1:1 onto
// pages for the documents the OCR fallback targets.
//
// DCTDecode payloads are passed through untouched (they are JPEG files).
// Flate-compressed 8-bit grayscale and RGB bitmaps are re-encoded as PNG.
// Images in other encodings (CCITT, JBIG2, JPX) are skipped.
func ScanImages(data []byte) []EmbeddedImage {
	streams, err := ScanStreams(data)
	if err != nil {
		return nil
	}

	var images []EmbeddedImage
	for _, s := range streams {
		if !strings.Contains(s.Dict, "/Subtype") || !strings.Contains(s.Dict, "/Image") {
			continue
		}
		w := intField(widthRe, s.Dict)
		h := intField(heightRe, s.Dict)
		if w <= 0 || h <= 0 {
			continue
		}

		switch s.Filter {
		case "DCTDecode":
			images = append(images, EmbeddedImage{Data: s.Data, Width: w, Height: h})
		case "FlateDecode", "":
			if !s.Decoded {
				continue
			}
			if encoded := encodeBitmap(s.Data, s.Dict, w, h); encoded != nil {
				images = append(images, EmbeddedImage{Data: encoded, Width: w, Height: h})
			}
		}
	}
	return images
}

// encodeBitmap rebuilds a raw 8-bit gray or RGB bitmap as a PNG.
func encodeBitmap(raw []byte, dict string, w, h int) []byte {
	if bpc := intField(bpcRe, dict); bpc != 0 && bpc != 8 {
		return nil
	}

	var img image.Image
	switch {
	case len(raw) >= w*h*3 && strings.Contains(dict, "/DeviceRGB"):
		rgba := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src := (y*w + x) * 3
				dst := rgba.PixOffset(x, y)
				rgba.Pix[dst] = raw[src]
				rgba.Pix[dst+1] = raw[src+1]
				rgba.Pix[dst+2] = raw[src+2]
				rgba.Pix[dst+3] = 0xFF
			}
		}
		img = rgba
	case len(raw) >= w*h:
		gray := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+w], raw[y*w:(y+1)*w])
		}
		img = gray
	default:
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func intField(re *regexp.Regexp, dict string) int {
	m := re.FindStringSubmatch(dict)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
