package model

import (
	"fmt"
	"strings"
)

// Citation is positional evidence for a fact: the page it was found on,
// optionally the section number and an (x, y) position, a confidence in
// [0,1], and a short fragment of surrounding text.
//
// A citation without position data is still valid evidence; callers rank
// it below positioned citations.
type Citation struct {
	Text        string
	Page        int
	Section     int // 0 when no section number was detected
	X           float64
	Y           float64
	HasPosition bool
	Confidence  float64
	Context     string
}

// Reference renders the citation as a compact reference of the form
// "p.2 §3 (x:120, y:540)". Section and position are omitted when
// unavailable.
func (c Citation) Reference() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p.%d", c.Page)
	if c.Section > 0 {
		fmt.Fprintf(&b, " §%d", c.Section)
	}
	if c.HasPosition {
		fmt.Fprintf(&b, " (x:%d, y:%d)", int(c.X), int(c.Y))
	}
	return b.String()
}
