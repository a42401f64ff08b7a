package cite

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/veridoc/model"
)

// Strategy is one way of locating a fact on a page. Implementations are
// tried in order; the first hit wins and sets the citation confidence.
type Strategy interface {
	Name() string
	Try(fact string, pages []model.Page) (model.Citation, bool)
}

// exactStrategy finds the fact verbatim (case-insensitive) inside a
// single positioned element. Confidence 1.0.
type exactStrategy struct{}

func (exactStrategy) Name() string { return "exact" }

func (exactStrategy) Try(fact string, pages []model.Page) (model.Citation, bool) {
	needle := strings.ToLower(strings.TrimSpace(fact))
	if needle == "" {
		return model.Citation{}, false
	}
	for _, page := range pages {
		for _, el := range page.Elements {
			if !strings.Contains(strings.ToLower(el.Text), needle) {
				continue
			}
			return model.Citation{
				Text:        fact,
				Page:        page.Number,
				Section:     detectSection(el, page),
				X:           el.X,
				Y:           el.Y,
				HasPosition: true,
				Confidence:  1.0,
				Context:     contextAround(el, page),
			}, true
		}
	}
	return model.Citation{}, false
}

// normalizedStrategy searches the whitespace-collapsed, date-unified
// form of the fact in the page full text, then borrows the position of
// the first element containing it. Confidence 0.8.
type normalizedStrategy struct{}

func (normalizedStrategy) Name() string { return "normalized" }

var (
	numericDateRe = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)
	textualDateRe = regexp.MustCompile(`(?i)(\d{1,2})\s+(janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre)\s+(\d{4})`)
)

// normalizeForSearch lowercases, collapses whitespace and unifies date
// separators so near-identical renderings compare equal.
func normalizeForSearch(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	s = numericDateRe.ReplaceAllString(s, "$1/$2/$3")
	s = textualDateRe.ReplaceAllString(s, "$1 $2 $3")
	return s
}

func (normalizedStrategy) Try(fact string, pages []model.Page) (model.Citation, bool) {
	needle := normalizeForSearch(fact)
	if needle == "" {
		return model.Citation{}, false
	}
	for _, page := range pages {
		if !strings.Contains(normalizeForSearch(page.Text), needle) {
			continue
		}
		for _, el := range page.Elements {
			if !strings.Contains(normalizeForSearch(el.Text), needle) {
				continue
			}
			return model.Citation{
				Text:        fact,
				Page:        page.Number,
				Section:     detectSection(el, page),
				X:           el.X,
				Y:           el.Y,
				HasPosition: true,
				Confidence:  0.8,
				Context:     contextAround(el, page),
			}, true
		}
	}
	return model.Citation{}, false
}

// patternStrategy handles typed facts whose document rendering differs
// from the summary rendering: date separator and zero-padding variants
// (0.9), amount digits co-located with a currency marker (0.9), duration
// number co-located with its unit (0.85).
type patternStrategy struct{}

func (patternStrategy) Name() string { return "pattern" }

var (
	amountNumberRe    = regexp.MustCompile(`\d{1,3}(?:\s?\d{3})*(?:[,.]\d{2})?`)
	amountMarkerRe    = regexp.MustCompile(`(?i)€|EUR|dollars?|\$`)
	durationRe        = regexp.MustCompile(`(?i)(\d+)\s*(mois|ans?|années?|jours?|semaines?)`)
	amountLikeRe      = regexp.MustCompile(`(?i)\d{1,3}(?:\s?\d{3})*(?:[,.]\d{2})?\s*(?:€|EUR|dollars?|\$)`)
	durationLikeRe    = regexp.MustCompile(`(?i)\b\d+\s*(?:mois|ans?|jours?|semaines?)\b`)
	numericDateLikeRe = regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`)
)

func (s patternStrategy) Try(fact string, pages []model.Page) (model.Citation, bool) {
	switch {
	case numericDateLikeRe.MatchString(fact):
		return s.tryDate(fact, pages)
	case amountLikeRe.MatchString(fact):
		return s.tryAmount(fact, pages)
	case durationLikeRe.MatchString(fact):
		return s.tryDuration(fact, pages)
	}
	return model.Citation{}, false
}

// tryDate searches separator and zero-padding variants of the date.
func (patternStrategy) tryDate(fact string, pages []model.Page) (model.Citation, bool) {
	m := numericDateRe.FindStringSubmatch(fact)
	if m == nil {
		return model.Citation{}, false
	}
	day, month, year := m[1], m[2], m[3]
	dayN, _ := strconv.Atoi(day)
	monthN, _ := strconv.Atoi(month)

	variants := []string{
		day + "/" + month + "/" + year,
		day + "-" + month + "-" + year,
		day + "." + month + "." + year,
		strconv.Itoa(dayN) + "/" + strconv.Itoa(monthN) + "/" + year,
	}

	for _, page := range pages {
		for _, el := range page.Elements {
			for _, v := range variants {
				if !strings.Contains(el.Text, v) {
					continue
				}
				return model.Citation{
					Text:        fact,
					Page:        page.Number,
					X:           el.X,
					Y:           el.Y,
					HasPosition: true,
					Confidence:  0.9,
					Context:     el.Text,
				}, true
			}
		}
	}
	return model.Citation{}, false
}

// tryAmount requires the numeric part and a currency marker in the same
// element.
func (patternStrategy) tryAmount(fact string, pages []model.Page) (model.Citation, bool) {
	num := amountNumberRe.FindString(fact)
	if num == "" {
		return model.Citation{}, false
	}
	for _, page := range pages {
		for _, el := range page.Elements {
			if strings.Contains(el.Text, num) && amountMarkerRe.MatchString(el.Text) {
				return model.Citation{
					Text:        fact,
					Page:        page.Number,
					X:           el.X,
					Y:           el.Y,
					HasPosition: true,
					Confidence:  0.9,
					Context:     el.Text,
				}, true
			}
		}
	}
	return model.Citation{}, false
}

// tryDuration requires the number and its unit in the same element.
func (patternStrategy) tryDuration(fact string, pages []model.Page) (model.Citation, bool) {
	m := durationRe.FindStringSubmatch(fact)
	if m == nil {
		return model.Citation{}, false
	}
	number, unit := m[1], strings.ToLower(m[2])

	for _, page := range pages {
		for _, el := range page.Elements {
			text := strings.ToLower(el.Text)
			if strings.Contains(text, number) && strings.Contains(text, unit) {
				return model.Citation{
					Text:        fact,
					Page:        page.Number,
					X:           el.X,
					Y:           el.Y,
					HasPosition: true,
					Confidence:  0.85,
					Context:     el.Text,
				}, true
			}
		}
	}
	return model.Citation{}, false
}
