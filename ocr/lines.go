package ocr

import (
	"sort"
	"strings"

	"github.com/tsawler/veridoc/model"
)

// buildPage assembles one OCR page from recognized words: words below
// the confidence floor are dropped, survivors are grouped into lines by
// vertical proximity and merged into one element per line with the union
// bounding box and the mean word confidence, so multi-word facts stay
// locatable inside a single element.
//
// The returned confidence is the mean word confidence of the kept words,
// 0 when nothing survived the floor.
func buildPage(num int, width, height float64, words []Word, opts Options) (model.Page, float64) {
	kept := words[:0:0]
	for _, w := range words {
		if w.Confidence < opts.ConfidenceFloor {
			continue
		}
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		kept = append(kept, w)
	}

	lines := mergeLines(kept, opts.LineGap)

	var (
		elements  []model.TextElement
		textLines []string
		confSum   float64
	)
	for _, line := range lines {
		var b strings.Builder
		minX, minY := line[0].X, line[0].Y
		maxX, maxY := line[0].X+line[0].Width, line[0].Y+line[0].Height
		lineConf := 0.0
		for i, w := range line {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(w.Text)
			lineConf += w.Confidence
			if w.X < minX {
				minX = w.X
			}
			if w.Y < minY {
				minY = w.Y
			}
			if w.X+w.Width > maxX {
				maxX = w.X + w.Width
			}
			if w.Y+w.Height > maxY {
				maxY = w.Y + w.Height
			}
		}
		confSum += lineConf
		lineConf /= float64(len(line))

		elements = append(elements, model.TextElement{
			Text:       b.String(),
			Page:       num,
			X:          minX,
			Y:          minY,
			Width:      maxX - minX,
			Height:     maxY - minY,
			Confidence: lineConf,
		})
		textLines = append(textLines, b.String())
	}

	conf := 0.0
	if len(kept) > 0 {
		conf = confSum / float64(len(kept))
	}

	return model.Page{
		Number:   num,
		Width:    width,
		Height:   height,
		Text:     strings.Join(textLines, "\n"),
		Elements: elements,
		Method:   model.MethodOCR,
	}, conf
}

// mergeLines groups words into lines: a word joins the current line when
// its vertical distance from the previous word is strictly below gap, so
// a drifting baseline stays on one line. Lines are ordered top to bottom
// and words left to right.
func mergeLines(words []Word, gap float64) [][]Word {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]Word
	current := []Word{sorted[0]}
	lineY := sorted[0].Y
	for _, w := range sorted[1:] {
		if w.Y-lineY < gap {
			current = append(current, w)
			lineY = w.Y
			continue
		}
		lines = append(lines, current)
		current = []Word{w}
		lineY = w.Y
	}
	lines = append(lines, current)

	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
	}
	return lines
}

// degradedPage is the placeholder emitted when recognition fails on one
// page of a multi-page document.
func degradedPage(num int, width, height float64) model.Page {
	return model.Page{
		Number: num,
		Width:  width,
		Height: height,
		Method: model.MethodOCRFailed,
	}
}
