package target

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amanzav/scribe/internal/model"
)

func fixedTime() time.Time {
	return time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no suffix", in: "Report.pdf", want: "Report.pdf"},
		{name: "single suffix stripped", in: "Report (1).pdf", want: "Report.pdf"},
		{name: "large counter", in: "Report (17).pdf", want: "Report.pdf"},
		{name: "only the last suffix is stripped", in: "Report (1) (2).pdf", want: "Report (1).pdf"},
		{name: "no extension", in: "Report (3)", want: "Report"},
		{name: "parentheses inside the name survive", in: "Report (draft).pdf", want: "Report (draft).pdf"},
		{name: "no space before parens is not a version suffix", in: "Report(1).pdf", want: "Report(1).pdf"},
		{name: "suffix in the middle is not stripped", in: "Report (1) final.pdf", want: "Report (1) final.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.in))
		})
	}
}

func TestCanonicalNameIdempotentOnCleanNames(t *testing.T) {
	once := CanonicalName("Report (1).pdf")
	assert.Equal(t, once, CanonicalName(once))
}

func TestVersionedName(t *testing.T) {
	assert.Equal(t, "Report (1).pdf", VersionedName("Report.pdf", 1))
	assert.Equal(t, "Report (12).pdf", VersionedName("Report.pdf", 12))
	assert.Equal(t, "archive (2).tar", VersionedName("archive.tar", 2))
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"screenshot.png", true},
		{"photo.JPG", true},
		{"scan.tiff", true},
		{"pic.HEIC", true},
		{"report.pdf", false},
		{"archive.zip", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			file := model.NewCandidateFile("/downloads/"+tt.filename, fixedTime())
			assert.Equal(t, tt.want, IsImage(file))
		})
	}
}

func TestBuild(t *testing.T) {
	b := NewBuilder("/downloads")

	tests := []struct {
		name     string
		filename string
		res      model.CourseResolution
		cls      model.ClassificationResult
		want     string
		wantOK   bool
	}{
		{
			name:     "course and category",
			filename: "lecture1_slides.pdf",
			res:      model.CourseResolution{BaseFolder: "School/CS101", Source: model.ResolvedByURL},
			cls:      model.ClassificationResult{Category: "Lectures", Source: model.ClassifiedByRules},
			want:     filepath.Join("/downloads", "School/CS101", "Lectures", "lecture1_slides.pdf"),
			wantOK:   true,
		},
		{
			name:     "no category lands at course root",
			filename: "misc_thing.pdf",
			res:      model.CourseResolution{BaseFolder: "University/MTE-252", Source: model.ResolvedByFilename},
			cls:      model.ClassificationResult{Source: model.ClassifiedNone},
			want:     filepath.Join("/downloads", "University/MTE-252", "misc_thing.pdf"),
			wantOK:   true,
		},
		{
			name:     "image ignores resolution entirely",
			filename: "screenshot.png",
			res:      model.CourseResolution{Source: model.ResolvedNone},
			cls:      model.ClassificationResult{Source: model.ClassifiedNone},
			want:     filepath.Join("/downloads", "Images", "screenshot.png"),
			wantOK:   true,
		},
		{
			name:     "image with resolution still goes to Images",
			filename: "diagram.jpeg",
			res:      model.CourseResolution{BaseFolder: "School/CS101", Source: model.ResolvedByURL},
			cls:      model.ClassificationResult{Category: "Labs", Source: model.ClassifiedByRules},
			want:     filepath.Join("/downloads", "Images", "diagram.jpeg"),
			wantOK:   true,
		},
		{
			name:     "versioned download is canonicalized",
			filename: "Report (1).pdf",
			res:      model.CourseResolution{BaseFolder: "School/CS101", Source: model.ResolvedByURL},
			cls:      model.ClassificationResult{Source: model.ClassifiedNone},
			want:     filepath.Join("/downloads", "School/CS101", "Report.pdf"),
			wantOK:   true,
		},
		{
			name:     "unresolved non-image has no target",
			filename: "mystery.pdf",
			res:      model.CourseResolution{Source: model.ResolvedNone},
			cls:      model.ClassificationResult{Source: model.ClassifiedNone},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := model.NewCandidateFile("/downloads/"+tt.filename, fixedTime())
			got, ok := b.Build(file, tt.res, tt.cls)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
