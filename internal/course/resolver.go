// Package course maps a file's provenance URL or filename to a destination
// base folder.
package course

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/amanzav/scribe/internal/model"
)

// compiledRule pairs a configured rule with its compiled glob matcher.
type compiledRule struct {
	matcher glob.Glob
	rule    model.Rule
}

// Resolver evaluates the ordered rule list against URLs and filenames.
// Rules keep their configured order; the first match always wins.
type Resolver struct {
	codeRe *regexp.Regexp
	logger *slog.Logger
	rules  []compiledRule
	prefix string
}

// NewResolver compiles the configured rules. A pattern that fails to compile
// is logged and skipped rather than aborting the run.
func NewResolver(rules []model.Rule, coursePrefix string, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		g, err := glob.Compile(rule.Pattern)
		if err != nil {
			logger.Warn("skipping rule with invalid pattern",
				"pattern", rule.Pattern,
				"error", err)
			continue
		}
		compiled = append(compiled, compiledRule{matcher: g, rule: rule})
	}

	prefix := strings.ToUpper(coursePrefix)
	codeRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(prefix) + `[ _-]?(\d{3})`)
	if err != nil {
		return nil, fmt.Errorf("invalid course prefix %q: %w", coursePrefix, err)
	}

	return &Resolver{
		rules:  compiled,
		prefix: prefix,
		codeRe: codeRe,
		logger: logger,
	}, nil
}

// Resolve determines the destination base folder for a file. An unresolved
// result means the file has no identifiable destination and must be left in
// place; files are never routed to a catch-all folder.
func (r *Resolver) Resolve(file model.CandidateFile) model.CourseResolution {
	if file.HasOrigin() && len(r.rules) > 0 {
		for _, c := range r.rules {
			if c.matcher.Match(file.OriginURL) {
				return model.CourseResolution{
					BaseFolder: c.rule.Folder,
					Source:     model.ResolvedByURL,
				}
			}
		}
	}

	if code, ok := r.ExtractCourseCode(file.Name); ok {
		for _, c := range r.rules {
			if strings.Contains(strings.ToUpper(c.rule.Folder), code) {
				return model.CourseResolution{
					BaseFolder: c.rule.Folder,
					CourseCode: code,
					Source:     model.ResolvedByFilename,
				}
			}
		}
	}

	return model.CourseResolution{Source: model.ResolvedNone}
}

// ExtractCourseCode searches the filename for the configured department
// prefix followed by a three-digit number, in any of the usual spellings
// (mte252, MTE-252, mte_252), and normalizes it to PREFIX-DDD.
func (r *Resolver) ExtractCourseCode(filename string) (string, bool) {
	m := r.codeRe.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return r.prefix + "-" + m[1], true
}
