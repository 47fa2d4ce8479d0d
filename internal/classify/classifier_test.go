package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amanzav/scribe/internal/model"
)

// fakeExternal scripts the AI step for tests.
type fakeExternal struct {
	label string
	err   error
	calls int
}

func (f *fakeExternal) ClassifyCategory(_ context.Context, _ Request) (string, error) {
	f.calls++
	return f.label, f.err
}

func TestKeywordRules(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "lecture slides", filename: "lecture1_slides.pdf", want: "Lectures"},
		{name: "homework shorthand", filename: "mte220_hw3.pdf", want: "Assignments"},
		{name: "lab manual", filename: "Lab 4 Manual.pdf", want: "Labs"},
		{name: "case insensitive", filename: "MIDTERM-REVIEW.PDF", want: "Exams"},
		{name: "quiz folds into exams", filename: "quiz2.pdf", want: "Exams"},
		{name: "tutorial shorthand", filename: "tut05.pdf", want: "Tutorials"},
		{name: "solutions beat assignments when both match", filename: "assignment3_solutions.pdf", want: "Solutions"},
		{name: "worksheet", filename: "Worksheet Week 2.pdf", want: "Worksheets"},
		{name: "project proposal", filename: "project_proposal.docx", want: "Projects"},
	}

	p := NewPipeline(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.Classify(context.Background(), Request{Filename: tt.filename})
			assert.Equal(t, tt.want, result.Category)
			assert.Equal(t, model.ClassifiedByRules, result.Source)
		})
	}
}

func TestNoMatchIsNormalNotAnError(t *testing.T) {
	p := NewPipeline(nil, nil)

	result := p.Classify(context.Background(), Request{Filename: "reading_week1.pdf"})
	assert.Empty(t, result.Category)
	assert.Equal(t, model.ClassifiedNone, result.Source)
}

func TestExternalClassifierWins(t *testing.T) {
	external := &fakeExternal{label: "labs"}
	p := NewPipeline(external, nil)

	result := p.Classify(context.Background(), Request{Filename: "week3_material.pdf"})
	assert.Equal(t, "Labs", result.Category)
	assert.Equal(t, model.ClassifiedByAI, result.Source)
	assert.Equal(t, 1, external.calls)
}

func TestExternalUnknownLabelCoercedToMisc(t *testing.T) {
	external := &fakeExternal{label: "Receipts"}
	p := NewPipeline(external, nil)

	result := p.Classify(context.Background(), Request{Filename: "receipt_scan.pdf"})
	assert.Empty(t, result.Category)
	assert.Equal(t, model.ClassifiedByAI, result.Source)
}

func TestExternalMiscSuppressesKeywordFallback(t *testing.T) {
	// Even a keyword-obvious filename stays at the course root when the
	// external classifier answered Misc.
	external := &fakeExternal{label: "Misc"}
	p := NewPipeline(external, nil)

	result := p.Classify(context.Background(), Request{Filename: "lab_report_4.pdf"})
	assert.Empty(t, result.Category)
	assert.Equal(t, model.ClassifiedByAI, result.Source)
}

func TestExternalFailureFallsBackToRules(t *testing.T) {
	external := &fakeExternal{err: errors.New("connection refused")}
	p := NewPipeline(external, nil)

	result := p.Classify(context.Background(), Request{Filename: "lab_report_4.pdf"})
	assert.Equal(t, "Labs", result.Category)
	assert.Equal(t, model.ClassifiedByRules, result.Source)
}
