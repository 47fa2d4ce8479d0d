package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amanzav/scribe/internal/model"
)

func candidate(name, url string) model.CandidateFile {
	f := model.NewCandidateFile("/downloads/"+name, time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC))
	f.OriginURL = url
	return f
}

func TestResolveByURL(t *testing.T) {
	rules := []model.Rule{
		{Pattern: "*example.edu/CS101*", Folder: "School/CS101"},
		{Pattern: "*example.edu/*", Folder: "School/Misc"},
	}
	r, err := NewResolver(rules, "MTE", nil)
	require.NoError(t, err)

	res := r.Resolve(candidate("lecture1_slides.pdf", "https://example.edu/CS101/week1"))
	assert.Equal(t, model.ResolvedByURL, res.Source)
	assert.Equal(t, "School/CS101", res.BaseFolder)
}

func TestResolveFirstConfiguredRuleWins(t *testing.T) {
	// Both patterns match; order decides.
	rules := []model.Rule{
		{Pattern: "*example.edu*", Folder: "First"},
		{Pattern: "*example.edu/CS101*", Folder: "Second"},
	}
	r, err := NewResolver(rules, "MTE", nil)
	require.NoError(t, err)

	res := r.Resolve(candidate("notes.pdf", "https://example.edu/CS101/week1"))
	assert.Equal(t, "First", res.BaseFolder)
}

func TestResolveByFilenameCourseCode(t *testing.T) {
	rules := []model.Rule{
		{Pattern: "*learn.uwaterloo.ca/*MTE252*", Folder: "University/MTE-252"},
		{Pattern: "*learn.uwaterloo.ca/*MTE220*", Folder: "University/MTE-220"},
	}
	r, err := NewResolver(rules, "MTE", nil)
	require.NoError(t, err)

	tests := []struct {
		name       string
		filename   string
		wantFolder string
		wantCode   string
	}{
		{name: "lowercase compact", filename: "mte220_hw3.pdf", wantFolder: "University/MTE-220", wantCode: "MTE-220"},
		{name: "hyphenated", filename: "MTE-252 lab manual.pdf", wantFolder: "University/MTE-252", wantCode: "MTE-252"},
		{name: "underscore", filename: "mte_252_notes.pdf", wantFolder: "University/MTE-252", wantCode: "MTE-252"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(candidate(tt.filename, ""))
			assert.Equal(t, model.ResolvedByFilename, res.Source)
			assert.Equal(t, tt.wantFolder, res.BaseFolder)
			assert.Equal(t, tt.wantCode, res.CourseCode)
		})
	}
}

func TestResolveURLMissFallsThroughToFilename(t *testing.T) {
	rules := []model.Rule{
		{Pattern: "*learn.uwaterloo.ca/*MTE220*", Folder: "University/MTE-220"},
	}
	r, err := NewResolver(rules, "MTE", nil)
	require.NoError(t, err)

	// URL present but matches nothing; the filename still carries a code.
	res := r.Resolve(candidate("mte220_quiz.pdf", "https://mail.example.com/attachment"))
	assert.Equal(t, model.ResolvedByFilename, res.Source)
	assert.Equal(t, "University/MTE-220", res.BaseFolder)
}

func TestResolveUnresolved(t *testing.T) {
	rules := []model.Rule{
		{Pattern: "*example.edu*", Folder: "School/CS101"},
	}
	r, err := NewResolver(rules, "MTE", nil)
	require.NoError(t, err)

	res := r.Resolve(candidate("random_paper.pdf", ""))
	assert.Equal(t, model.ResolvedNone, res.Source)
	assert.False(t, res.Resolved())
	assert.Empty(t, res.BaseFolder)
}

func TestResolveNoRulesConfigured(t *testing.T) {
	r, err := NewResolver(nil, "MTE", nil)
	require.NoError(t, err)

	// A course code with no rule destination to match stays unresolved.
	res := r.Resolve(candidate("mte220_hw1.pdf", "https://example.edu/x"))
	assert.Equal(t, model.ResolvedNone, res.Source)
}

func TestExtractCourseCode(t *testing.T) {
	r, err := NewResolver(nil, "mte", nil)
	require.NoError(t, err)

	tests := []struct {
		filename string
		want     string
		wantOK   bool
	}{
		{"mte252_syllabus.pdf", "MTE-252", true},
		{"MTE 252 outline.pdf", "MTE-252", true},
		{"syllabus.pdf", "", false},
		{"mte25_short.pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			code, ok := r.ExtractCourseCode(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestInvalidPatternIsSkippedNotFatal(t *testing.T) {
	rules := []model.Rule{
		{Pattern: "[", Folder: "Broken"},
		{Pattern: "*example.edu*", Folder: "School/CS101"},
	}
	r, err := NewResolver(rules, "MTE", nil)
	require.NoError(t, err)

	res := r.Resolve(candidate("a.pdf", "https://example.edu/x"))
	assert.Equal(t, "School/CS101", res.BaseFolder)
}
