package cite

import (
	"strings"

	"github.com/tsawler/veridoc/model"
)

// matchContextRadius is the amount of page text kept on each side of a
// find-text hit.
const matchContextRadius = 100

// Match is one page-level occurrence of a searched text.
type Match struct {
	Page        int
	Text        string // the matched text as it appears on the page
	Context     string
	X           float64
	Y           float64
	HasPosition bool
	Reference   string
}

// FindText lists every page on which the text occurs, case-insensitively,
// with surrounding context and, when a positioned element contains the
// text, its coordinates. One match per page, at the first occurrence.
func FindText(search string, pages []model.Page) []Match {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return nil
	}

	var matches []Match
	for _, page := range pages {
		lower := strings.ToLower(page.Text)
		start := strings.Index(lower, needle)
		if start < 0 {
			continue
		}
		end := start + len(needle)

		ctxStart := start - matchContextRadius
		if ctxStart < 0 {
			ctxStart = 0
		}
		for ctxStart > 0 && page.Text[ctxStart]&0xC0 == 0x80 {
			ctxStart--
		}
		ctxEnd := end + matchContextRadius
		if ctxEnd > len(page.Text) {
			ctxEnd = len(page.Text)
		}
		for ctxEnd < len(page.Text) && page.Text[ctxEnd]&0xC0 == 0x80 {
			ctxEnd++
		}

		m := Match{
			Page:    page.Number,
			Text:    page.Text[start:end],
			Context: strings.TrimSpace(page.Text[ctxStart:ctxEnd]),
		}
		for _, el := range page.Elements {
			if strings.Contains(strings.ToLower(el.Text), needle) {
				m.X = el.X
				m.Y = el.Y
				m.HasPosition = true
				break
			}
		}

		c := model.Citation{Page: m.Page, X: m.X, Y: m.Y, HasPosition: m.HasPosition}
		m.Reference = c.Reference()
		matches = append(matches, m)
	}
	return matches
}
