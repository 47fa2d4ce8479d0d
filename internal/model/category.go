package model

import "strings"

// CategoryDefinition is a named category plus the lowercase keywords that
// identify it. Definitions are evaluated in declared order; within one
// definition, keywords are tested in declared order. First hit wins.
type CategoryDefinition struct {
	Name     string
	Keywords []string
}

// Matches reports whether any keyword occurs as a substring of the
// lowercased filename.
func (d CategoryDefinition) Matches(filename string) bool {
	lower := strings.ToLower(filename)
	for _, kw := range d.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CategoryMisc is the external classifier's "no specific category" label.
// It routes the file to the course root and suppresses the keyword fallback.
const CategoryMisc = "Misc"

// BuiltinCategories is the fixed deterministic category table. Order matters:
// Solutions precedes Assignments so "assignment 3 solutions" files land in
// Solutions.
var BuiltinCategories = []CategoryDefinition{
	{Name: "Solutions", Keywords: []string{"solution", "soln", "answer key", "answers"}},
	{Name: "Assignments", Keywords: []string{"assignment", "asst", "homework", "hw", "problem set", "pset"}},
	{Name: "Labs", Keywords: []string{"lab"}},
	{Name: "Projects", Keywords: []string{"project"}},
	{Name: "Worksheets", Keywords: []string{"worksheet"}},
	{Name: "Lectures", Keywords: []string{"lecture", "slides", "notes"}},
	{Name: "Tutorials", Keywords: []string{"tutorial", "tut"}},
	{Name: "Exams", Keywords: []string{"exam", "midterm", "final", "quiz"}},
}

// AllowedCategories is the closed label set the external classifier may
// return. Anything else is coerced to Misc.
var AllowedCategories = []string{
	"Solutions",
	"Assignments",
	"Labs",
	"Projects",
	"Worksheets",
	"Lectures",
	"Tutorials",
	"Quizzes",
	"Exams",
	CategoryMisc,
}

// NormalizeCategory maps a raw classifier label onto the allowed set,
// case-insensitively. Unknown labels become Misc.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, allowed := range AllowedCategories {
		if strings.EqualFold(trimmed, allowed) {
			return allowed
		}
	}
	return CategoryMisc
}
