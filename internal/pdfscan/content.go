package pdfscan

import (
	"strconv"
)

// Fragment is a run of text shown by a single text-showing operator,
// positioned in PDF user space (origin at the bottom-left of the page).
type Fragment struct {
	Text     string
	X, Y     float64
	FontSize float64
}

// contentState tracks the subset of the text state machine needed to
// position fragments: the text matrix translation, the line matrix,
// leading and the current font size.
type contentState struct {
	x, y     float64 // text matrix translation
	lx, ly   float64 // line matrix translation
	leading  float64
	tfSize   float64 // size set by Tf, before matrix scaling
	fontSize float64 // effective size after Tm scaling
	inText   bool
}

// TokenizeContent runs a content stream through a minimal text-operator
// machine and returns the fragments it shows. Only the operators that
// affect text position are interpreted (BT/ET, Td/TD/Tm/T*, TL, Tf,
// Tj/'/"/TJ); graphics operators are skipped.
func TokenizeContent(data []byte) []Fragment {
	var frags []Fragment
	st := contentState{tfSize: 12, fontSize: 12}

	// Operand stack: numbers and strings pushed until an operator is seen.
	var nums []float64
	var strs []string
	var arr []any // pending TJ array, nil when not inside [ ]
	inArray := false

	emit := func(text string) {
		if text == "" {
			return
		}
		frags = append(frags, Fragment{Text: text, X: st.x, Y: st.y, FontSize: st.fontSize})
		// Approximate advance: average glyph width of half the font size.
		st.x += float64(len(text)) * st.fontSize * 0.5
	}

	nextLine := func(tx, ty float64) {
		st.lx += tx
		st.ly += ty
		st.x, st.y = st.lx, st.ly
	}

	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case isWhitespace(c):
			i++

		case c == '%': // comment to end of line
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}

		case c == '(':
			s, next := parseLiteralString(data, i)
			i = next
			if inArray {
				arr = append(arr, s)
			} else {
				strs = append(strs, s)
			}

		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2 // inline dictionary open; contents are skipped as tokens

		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2

		case c == '<':
			s, next := parseHexString(data, i)
			i = next
			if inArray {
				arr = append(arr, s)
			} else {
				strs = append(strs, s)
			}

		case c == '[':
			inArray = true
			arr = arr[:0]
			i++

		case c == ']':
			inArray = false
			i++

		case c == '/':
			// Name: consumed but unused (font names are irrelevant here).
			i++
			for i < len(data) && !isDelimiter(data[i]) && !isWhitespace(data[i]) {
				i++
			}

		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := i
			i++
			for i < len(data) && (data[i] == '.' || (data[i] >= '0' && data[i] <= '9')) {
				i++
			}
			if v, err := strconv.ParseFloat(string(data[start:i]), 64); err == nil {
				if inArray {
					arr = append(arr, v)
				} else {
					nums = append(nums, v)
				}
			}

		default:
			start := i
			for i < len(data) && !isDelimiter(data[i]) && !isWhitespace(data[i]) {
				i++
			}
			op := string(data[start:i])

			switch op {
			case "BT":
				st.inText = true
				st.x, st.y, st.lx, st.ly = 0, 0, 0, 0
			case "ET":
				st.inText = false
			case "Tf":
				if len(nums) >= 1 {
					st.tfSize = nums[len(nums)-1]
					st.fontSize = st.tfSize
				}
			case "TL":
				if len(nums) >= 1 {
					st.leading = nums[len(nums)-1]
				}
			case "Td":
				if len(nums) >= 2 {
					nextLine(nums[len(nums)-2], nums[len(nums)-1])
				}
			case "TD":
				if len(nums) >= 2 {
					st.leading = -nums[len(nums)-1]
					nextLine(nums[len(nums)-2], nums[len(nums)-1])
				}
			case "Tm":
				if len(nums) >= 6 {
					st.lx = nums[len(nums)-2]
					st.ly = nums[len(nums)-1]
					st.x, st.y = st.lx, st.ly
					// Effective size scales with the matrix d component.
					if d := nums[len(nums)-3]; d != 0 {
						st.fontSize = st.tfSize * abs(d)
					}
				}
			case "T*":
				nextLine(0, -st.leading)
			case "Tj":
				if st.inText && len(strs) >= 1 {
					emit(strs[len(strs)-1])
				}
			case "'":
				nextLine(0, -st.leading)
				if st.inText && len(strs) >= 1 {
					emit(strs[len(strs)-1])
				}
			case "\"":
				nextLine(0, -st.leading)
				if st.inText && len(strs) >= 1 {
					emit(strs[len(strs)-1])
				}
			case "TJ":
				if st.inText {
					for _, el := range arr {
						switch v := el.(type) {
						case string:
							emit(v)
						case float64:
							// Negative adjustments move right in text space.
							st.x -= v / 1000 * st.fontSize
						}
					}
				}
				arr = arr[:0]
			}

			nums = nums[:0]
			strs = strs[:0]
		}
	}

	return frags
}

// HarvestStrings scans a content stream for literal and hex string tokens
// and returns their decoded text in order of appearance. This is the
// raw-stream fallback path: no positioning, just whatever text the stream
// carries.
func HarvestStrings(data []byte) []string {
	var out []string
	i := 0
	for i < len(data) {
		switch data[i] {
		case '(':
			s, next := parseLiteralString(data, i)
			i = next
			if s != "" {
				out = append(out, s)
			}
		case '<':
			if i+1 < len(data) && data[i+1] == '<' {
				i += 2
				continue
			}
			s, next := parseHexString(data, i)
			i = next
			if s != "" {
				out = append(out, s)
			}
		case '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		default:
			i++
		}
	}
	return out
}

// parseLiteralString parses a PDF literal string starting at the opening
// parenthesis, returning the decoded text and the index after the closing
// parenthesis. Balanced nested parentheses and backslash escapes are
// handled per the PDF string syntax.
func parseLiteralString(data []byte, start int) (string, int) {
	var out []byte
	depth := 1
	i := start + 1
	for i < len(data) && depth > 0 {
		c := data[i]
		switch c {
		case '\\':
			i++
			if i >= len(data) {
				break
			}
			switch data[i] {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b', 'f':
				// Backspace/form feed carry no text value.
			case '(', ')', '\\':
				out = append(out, data[i])
			case '\n':
				// Line continuation: nothing emitted.
			case '\r':
				if i+1 < len(data) && data[i+1] == '\n' {
					i++
				}
			default:
				if data[i] >= '0' && data[i] <= '7' {
					val := 0
					for n := 0; n < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7'; n++ {
						val = val*8 + int(data[i]-'0')
						i++
					}
					i--
					out = appendLatin1(out, byte(val))
				} else {
					out = append(out, data[i])
				}
			}
			i++
		case '(':
			depth++
			out = append(out, c)
			i++
		case ')':
			depth--
			if depth > 0 {
				out = append(out, c)
			}
			i++
		default:
			out = appendLatin1(out, c)
			i++
		}
	}
	return string(out), i
}

// parseHexString parses a hex string starting at '<', returning the
// decoded text and the index after '>'.
func parseHexString(data []byte, start int) (string, int) {
	var out []byte
	var hi byte
	haveHi := false
	i := start + 1
	for i < len(data) && data[i] != '>' {
		c := data[i]
		v, ok := hexVal(c)
		if ok {
			if haveHi {
				out = appendLatin1(out, hi<<4|v)
				haveHi = false
			} else {
				hi = v
				haveHi = true
			}
		}
		i++
	}
	if haveHi {
		out = appendLatin1(out, hi<<4) // odd digit count: low nibble is 0
	}
	if i < len(data) {
		i++ // consume '>'
	}
	return string(out), i
}

// appendLatin1 appends a byte interpreted as Latin-1, encoding values
// above 0x7F as their UTF-8 equivalent. PDFs with custom font encodings
// produce garbage here; that is exactly what the OCR fallback catches.
func appendLatin1(out []byte, b byte) []byte {
	if b < 0x80 {
		return append(out, b)
	}
	r := rune(b)
	return append(out, string(r)...)
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
