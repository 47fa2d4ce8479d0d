// Package classify turns a filename plus optional hints into a semantic
// category via an ordered chain of strategies.
package classify

import (
	"context"
	"log/slog"

	"github.com/amanzav/scribe/internal/model"
)

// Request carries everything a classifier strategy may consult.
type Request struct {
	Filename   string
	OriginURL  string
	CourseCode string
}

// ExternalClassifier is the injectable contract for the remote AI step.
// Implementations must apply their own bounded timeout; failures are
// non-fatal and simply push the pipeline to the deterministic fallback.
type ExternalClassifier interface {
	ClassifyCategory(ctx context.Context, req Request) (string, error)
}

// Pipeline chains the external classifier (when configured) with the
// built-in keyword rules. Absence of a category is a normal outcome, never
// an error: the caller places the file at the course root.
type Pipeline struct {
	external ExternalClassifier
	logger   *slog.Logger
}

// NewPipeline creates a classification pipeline. external may be nil, which
// disables the AI step entirely.
func NewPipeline(external ExternalClassifier, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		external: external,
		logger:   logger,
	}
}

// Classify runs the chain, short-circuiting on the first strategy that
// produces a result.
func (p *Pipeline) Classify(ctx context.Context, req Request) model.ClassificationResult {
	if p.external != nil {
		label, err := p.external.ClassifyCategory(ctx, req)
		if err != nil {
			p.logger.Warn("external classifier failed, falling back to keyword rules",
				"file", req.Filename,
				"error", err)
		} else {
			category := model.NormalizeCategory(label)
			if category == model.CategoryMisc {
				// Misc means "intentionally general": route to the course
				// root and suppress the keyword fallback.
				return model.ClassificationResult{Source: model.ClassifiedByAI}
			}
			return model.ClassificationResult{
				Category: category,
				Source:   model.ClassifiedByAI,
			}
		}
	}

	if category, ok := matchKeywords(req.Filename); ok {
		return model.ClassificationResult{
			Category: category,
			Source:   model.ClassifiedByRules,
		}
	}

	return model.ClassificationResult{Source: model.ClassifiedNone}
}

// matchKeywords tests the built-in categories in declared order and returns
// the first whose keyword list hits the filename.
func matchKeywords(filename string) (string, bool) {
	for _, def := range model.BuiltinCategories {
		if def.Matches(filename) {
			return def.Name, true
		}
	}
	return "", false
}
