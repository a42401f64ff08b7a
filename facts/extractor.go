package facts

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/veridoc/model"
)

// Extractor turns extracted pages into a normalized, fact-annotated
// document. It is stateless and safe for concurrent use.
type Extractor struct {
	log *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger is replaced with a nop
// logger.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log}
}

// Process combines the page texts, cleans them, segments the result into
// named sections and extracts the typed facts. The raw text keeps page
// markers so a reader can locate content; the cleaned text is what the
// fact checker and citation engine work against.
func (e *Extractor) Process(pages []model.Page) *model.ProcessedDocument {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, fmt.Sprintf("=== PAGE %d ===\n%s", p.Number, p.Text))
	}
	rawText := strings.Join(parts, "\n\n")

	cleaned := Clean(rawText)
	sections := ExtractSections(cleaned)
	extracted := ExtractFacts(cleaned)

	total := 0
	for _, t := range model.FactTypes {
		total += len(extracted[t])
	}

	e.log.Debug("document processed",
		zap.Int("pages", len(pages)),
		zap.Int("text_length", len(cleaned)),
		zap.Int("sections", len(sections)),
		zap.Int("facts", total))

	return &model.ProcessedDocument{
		RawText:     rawText,
		CleanedText: cleaned,
		Sections:    sections,
		Facts:       extracted,
		Pages:       pages,
		Stats: model.ProcessingStats{
			TextLength:    len(cleaned),
			SectionsFound: len(sections),
			FactsFound:    total,
			Pages:         len(pages),
		},
	}
}
