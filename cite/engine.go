package cite

import (
	"go.uber.org/zap"

	"github.com/tsawler/veridoc/model"
)

// Engine locates facts in extracted pages through its ordered strategy
// list. It is immutable after construction and safe for concurrent use.
type Engine struct {
	strategies []Strategy
	log        *zap.Logger
}

// NewEngine creates an Engine with the default strategy order: exact,
// normalized, pattern. A nil logger is replaced with a nop logger.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		strategies: []Strategy{exactStrategy{}, normalizedStrategy{}, patternStrategy{}},
		log:        log,
	}
}

// Cite finds positional evidence for one fact. The first strategy that
// locates the fact determines the citation and its confidence; false
// means no strategy found it.
func (e *Engine) Cite(fact string, pages []model.Page) (model.Citation, bool) {
	for _, s := range e.strategies {
		if c, ok := s.Try(fact, pages); ok {
			e.log.Debug("fact cited",
				zap.String("fact", fact),
				zap.String("strategy", s.Name()),
				zap.Int("page", c.Page),
				zap.Float64("confidence", c.Confidence))
			return c, true
		}
	}
	e.log.Debug("fact not cited", zap.String("fact", fact))
	return model.Citation{}, false
}

// BatchResult aggregates a citation pass over a fact set.
type BatchResult struct {
	// Citations maps each cited fact to its citation. Uncited facts are
	// absent.
	Citations map[string]model.Citation

	// Missing lists the facts no strategy could locate, in input order.
	Missing []string

	Total int
	Cited int

	// Accuracy is the engine-local citation rate, cited/total*100. It is
	// diagnostic; the validator computes the gating rates itself.
	Accuracy float64
}

// CiteAll cites every fact in the set and computes the engine-local
// citation accuracy. Facts are processed in input order; duplicate fact
// strings are cited once.
func (e *Engine) CiteAll(facts []string, pages []model.Page) *BatchResult {
	res := &BatchResult{Citations: make(map[string]model.Citation, len(facts))}
	seen := make(map[string]struct{}, len(facts))
	for _, fact := range facts {
		if _, dup := seen[fact]; dup {
			continue
		}
		seen[fact] = struct{}{}
		res.Total++
		if c, ok := e.Cite(fact, pages); ok {
			res.Citations[fact] = c
			res.Cited++
		} else {
			res.Missing = append(res.Missing, fact)
		}
	}
	if res.Total > 0 {
		res.Accuracy = float64(res.Cited) / float64(res.Total) * 100
	}
	return res
}
