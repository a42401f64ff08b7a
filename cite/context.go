package cite

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/veridoc/model"
)

// Geometry bands used when relating elements to each other on a page.
const (
	sectionBand   = 50.0  // vertical distance within which elements share a row zone
	contextRadius = 100.0 // horizontal reach when gathering context
	contextBand   = 30.0  // vertical reach when gathering context
	contextLimit  = 200   // max context length in bytes
)

var sectionNumberRe = regexp.MustCompile(`(?i)(?:article|section|§)\s*(\d+)`)

// detectSection looks for an article or section number among elements in
// the same row zone as el. Returns 0 when none is found.
func detectSection(el model.TextElement, page model.Page) int {
	for _, e := range page.Elements {
		if absf(e.Y-el.Y) >= sectionBand {
			continue
		}
		if m := sectionNumberRe.FindStringSubmatch(e.Text); m != nil {
			n := 0
			for _, d := range m[1] {
				n = n*10 + int(d-'0')
			}
			return n
		}
	}
	return 0
}

// contextAround reconstructs a short text fragment from the elements
// surrounding el, ordered top to bottom and left to right.
func contextAround(el model.TextElement, page model.Page) string {
	var nearby []model.TextElement
	for _, e := range page.Elements {
		if absf(e.X-el.X) < contextRadius && absf(e.Y-el.Y) < contextBand {
			nearby = append(nearby, e)
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].Y != nearby[j].Y {
			return nearby[i].Y < nearby[j].Y
		}
		return nearby[i].X < nearby[j].X
	})

	parts := make([]string, 0, len(nearby))
	for _, e := range nearby {
		parts = append(parts, e.Text)
	}
	ctx := strings.Join(parts, " ")
	if len(ctx) > contextLimit {
		ctx = ctx[:contextLimit]
		for len(ctx) > 0 && ctx[len(ctx)-1]&0xC0 == 0x80 {
			ctx = ctx[:len(ctx)-1]
		}
	}
	return ctx
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
