package facts

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Context window around a section heading match: a little text before
// the heading, the body of the section after it.
const (
	sectionWindowBefore = 50
	sectionWindowAfter  = 500
)

// sectionVocabulary maps canonical section names to the heading phrases
// that identify them in French contracts. Order is fixed so section maps
// are built deterministically.
var sectionVocabulary = []struct {
	name string
	re   *regexp.Regexp
}{
	{"preambule", regexp.MustCompile(`(?i)préambule|considérant|attendu que`)},
	{"objet", regexp.MustCompile(`(?i)objet|article 1|a pour objet`)},
	{"duree", regexp.MustCompile(`(?i)durée|article.*durée|terme`)},
	{"prix", regexp.MustCompile(`(?i)prix|tarif|montant|article.*prix|rémunération`)},
	{"obligations", regexp.MustCompile(`(?i)obligations|engagements|article.*obligations`)},
	{"resiliation", regexp.MustCompile(`(?i)résiliation|fin|terme|article.*résiliation`)},
	{"responsabilite", regexp.MustCompile(`(?i)responsabilité|garantie|article.*responsabilité`)},
	{"confidentialite", regexp.MustCompile(`(?i)confidentialité|secret|article.*confidentialité`)},
	{"propriete", regexp.MustCompile(`(?i)propriété intellectuelle|droits d'auteur|article.*propriété`)},
	{"litiges", regexp.MustCompile(`(?i)litiges|différends|tribunal|juridiction`)},
	{"signatures", regexp.MustCompile(`(?i)signatures?|fait à|lu et approuvé`)},
}

// ExtractSections finds each known contract section in the cleaned text.
// The first match of a section's heading pattern wins and the section
// value is the verbatim text window around it. Sections whose heading
// never appears are absent from the map.
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string)
	for _, s := range sectionVocabulary {
		loc := s.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := runeFloor(text, loc[0]-sectionWindowBefore)
		end := runeCeil(text, loc[1]+sectionWindowAfter)
		sections[s.name] = strings.TrimSpace(text[start:end])
	}
	return sections
}

// runeFloor clamps a byte offset into the string and moves it back to
// the nearest rune boundary.
func runeFloor(s string, i int) int {
	if i < 0 {
		return 0
	}
	if i > len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil clamps a byte offset into the string and moves it forward to
// the nearest rune boundary.
func runeCeil(s string, i int) int {
	if i < 0 {
		return 0
	}
	if i > len(s) {
		return len(s)
	}
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
