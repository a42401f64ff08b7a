package pdfscan

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Stream is one discovered stream object: its dictionary (raw text between
// << and >>) and its payload, decoded when the filter is supported.
type Stream struct {
	Dict    string
	Filter  string
	Data    []byte // decoded payload; raw bytes for passthrough filters
	Decoded bool   // false when the filter was unsupported and Data is raw
}

// IsContent reports whether the stream payload looks like a text content
// stream (contains a BT text block).
func (s Stream) IsContent() bool {
	return s.Decoded && bytes.Contains(s.Data, []byte("BT"))
}

var (
	streamStart = []byte("stream")
	streamEnd   = []byte("endstream")

	filterRe   = regexp.MustCompile(`/Filter\s*(?:\[\s*)?/([A-Za-z0-9]+)`)
	mediaBoxRe = regexp.MustCompile(`/MediaBox\s*\[\s*([\d.+-]+)\s+([\d.+-]+)\s+([\d.+-]+)\s+([\d.+-]+)\s*\]`)
)

// ErrNoStreams is returned by ScanStreams when the buffer contains no
// stream objects at all.
var ErrNoStreams = errors.New("pdfscan: no stream objects found")

// ScanStreams walks the buffer and returns every stream object in document
// order. Streams compressed with unsupported filters are returned raw with
// Decoded=false so callers can still pass through JPEG (DCTDecode) data.
func ScanStreams(data []byte) ([]Stream, error) {
	var streams []Stream
	pos := 0

	for {
		idx := bytes.Index(data[pos:], streamStart)
		if idx < 0 {
			break
		}
		start := pos + idx
		pos = start + len(streamStart)

		// "endstream" also contains "stream"; skip matches that are part
		// of a longer keyword.
		if start >= 3 && bytes.Equal(data[start-3:start], []byte("end")) {
			continue
		}

		// Payload begins after the EOL following the stream keyword.
		payloadStart := pos
		if payloadStart < len(data) && data[payloadStart] == '\r' {
			payloadStart++
		}
		if payloadStart < len(data) && data[payloadStart] == '\n' {
			payloadStart++
		}

		endIdx := bytes.Index(data[payloadStart:], streamEnd)
		if endIdx < 0 {
			break
		}
		payload := trimEOL(data[payloadStart : payloadStart+endIdx])
		pos = payloadStart + endIdx + len(streamEnd)

		dict := dictBefore(data, start)
		s := Stream{Dict: dict, Filter: filterName(dict)}

		switch s.Filter {
		case "", "none":
			s.Data = payload
			s.Decoded = true
		case "FlateDecode":
			decoded, err := FlateDecode(payload)
			if err != nil {
				// Broken stream: keep raw so the raw-stream backend can
				// still harvest whatever is readable.
				s.Data = payload
			} else {
				s.Data = decoded
				s.Decoded = true
			}
		default:
			s.Data = payload
		}

		streams = append(streams, s)
	}

	if len(streams) == 0 {
		return nil, ErrNoStreams
	}
	return streams, nil
}

// dictBefore returns the raw << ... >> dictionary immediately preceding
// the stream keyword at offset, or an empty string if none is found.
func dictBefore(data []byte, offset int) string {
	end := bytes.LastIndex(data[:offset], []byte(">>"))
	if end < 0 {
		return ""
	}
	// Walk backwards matching nested << >> pairs.
	depth := 1
	i := end - 1
	for i > 0 && depth > 0 {
		if data[i] == '>' && data[i-1] == '>' {
			depth++
			i -= 2
			continue
		}
		if data[i] == '<' && data[i-1] == '<' {
			depth--
			i -= 2
			continue
		}
		i--
	}
	if depth != 0 {
		return ""
	}
	return string(data[i+1 : end+2])
}

// filterName extracts the first filter name from a stream dictionary.
func filterName(dict string) string {
	m := filterRe.FindStringSubmatch(dict)
	if m == nil {
		return ""
	}
	return m[1]
}

// trimEOL removes a single trailing EOL that separates the payload from
// the endstream keyword.
func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}

// FlateDecode decompresses a zlib/deflate compressed stream payload.
// Predictors are not applied: they only occur on image and xref streams,
// neither of which this scanner reconstructs through Flate.
func FlateDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil && buf.Len() == 0 {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return buf.Bytes(), nil
}

// PageSize is a page's media box dimensions in points.
type PageSize struct {
	Width  float64
	Height float64
}

// A4 portrait, the fallback when a PDF declares no usable MediaBox.
var defaultPageSize = PageSize{Width: 595, Height: 842}

// ScanPageSizes returns the MediaBox dimensions found in the buffer, in
// document order. When none are found a single default (A4) size is
// returned so callers always have page geometry to work with.
func ScanPageSizes(data []byte) []PageSize {
	var sizes []PageSize
	for _, m := range mediaBoxRe.FindAllSubmatch(data, -1) {
		x0, err0 := strconv.ParseFloat(string(m[1]), 64)
		y0, err1 := strconv.ParseFloat(string(m[2]), 64)
		x1, err2 := strconv.ParseFloat(string(m[3]), 64)
		y1, err3 := strconv.ParseFloat(string(m[4]), 64)
		if err0 != nil || err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		w, h := x1-x0, y1-y0
		if w <= 0 || h <= 0 {
			continue
		}
		sizes = append(sizes, PageSize{Width: w, Height: h})
	}
	if len(sizes) == 0 {
		sizes = []PageSize{defaultPageSize}
	}
	return sizes
}

// SizeFor returns the page size for a 1-indexed page, reusing the last
// known size when the PDF declares fewer MediaBoxes than pages (a shared
// MediaBox on the page tree root is common).
func SizeFor(sizes []PageSize, page int) PageSize {
	if len(sizes) == 0 {
		return defaultPageSize
	}
	if page-1 < len(sizes) {
		return sizes[page-1]
	}
	return sizes[len(sizes)-1]
}
