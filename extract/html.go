package extract

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/veridoc/internal/pdfscan"
	"github.com/tsawler/veridoc/model"
)

// extractHTML parses the document with the HTML5 parser and flattens the
// body text into lines with approximate positions. Script, style and
// head content are skipped; block-level elements start new lines.
func (e *Extractor) extractHTML(data []byte) ([]model.Page, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var lines []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			lines = append(lines, collapseSpaces(s))
		}
		current.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head", "noscript":
				return
			}
			if isBlockElement(n.Data) {
				flush()
			}
		}
		if n.Type == html.TextNode {
			current.WriteString(n.Data)
			current.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			flush()
		}
	}
	walk(doc)
	flush()

	if len(lines) == 0 {
		return nil, errors.New("extract: no text content in HTML")
	}

	size := pdfscan.SizeFor(nil, 1)
	return []model.Page{approxPage(1, size.Width, size.Height, lines, model.MethodHTML)}, nil
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "td", "th", "table", "ul", "ol",
		"h1", "h2", "h3", "h4", "h5", "h6", "section", "article",
		"header", "footer", "blockquote", "pre":
		return true
	}
	return false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
