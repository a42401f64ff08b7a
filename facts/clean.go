package facts

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	controlRe     = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	hyphenBreakRe = regexp.MustCompile(`([\pL\pN])-[ \t]*\n[ \t]*([\pL\pN])`)
	blankLinesRe  = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	prePunctRe    = regexp.MustCompile(`[ \t]+([,.;:!?])`)
	punctRunRe    = regexp.MustCompile(`([,.;:!?])[ \t]*([,.;:!?])`)
)

// Clean normalizes raw extracted text: Unicode NFKC, control characters
// stripped, words broken across line ends rejoined, runs of blank lines
// and spaces collapsed, and spacing before punctuation removed. Line
// breaks are preserved so page structure survives cleaning.
func Clean(text string) string {
	text = norm.NFKC.String(text)
	text = controlRe.ReplaceAllString(text, "")
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = prePunctRe.ReplaceAllString(text, "$1")
	text = punctRunRe.ReplaceAllString(text, "$1$2")

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
