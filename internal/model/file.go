// Package model defines the core domain models used throughout the application.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// CandidateFile is a file in the monitored folder awaiting processing.
// It is enumerated fresh each batch run and immutable during its own
// processing.
type CandidateFile struct {
	ModifiedAt time.Time
	Path       string
	Name       string
	OriginURL  string
}

// NewCandidateFile builds a CandidateFile from an absolute path and mtime.
func NewCandidateFile(path string, modifiedAt time.Time) CandidateFile {
	return CandidateFile{
		Path:       path,
		Name:       filepath.Base(path),
		ModifiedAt: modifiedAt,
	}
}

// Ext returns the lowercased extension without the leading dot.
func (f CandidateFile) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
}

// HasOrigin reports whether provenance metadata was found for the file.
func (f CandidateFile) HasOrigin() bool {
	return f.OriginURL != ""
}

// ResolutionSource indicates which stage of the course resolver produced a
// result.
type ResolutionSource string

// Resolution source constants.
const (
	ResolvedByURL      ResolutionSource = "URL"
	ResolvedByFilename ResolutionSource = "FILENAME"
	ResolvedNone       ResolutionSource = "NONE"
)

// CourseResolution is the outcome of mapping a file to a destination base
// folder. Produced fresh per file, never persisted.
type CourseResolution struct {
	BaseFolder string
	CourseCode string
	Source     ResolutionSource
}

// Resolved reports whether a destination base folder was found.
func (r CourseResolution) Resolved() bool {
	return r.Source != ResolvedNone
}

// ClassificationSource indicates which classifier stage produced a category.
type ClassificationSource string

// Classification source constants.
const (
	ClassifiedByAI    ClassificationSource = "AI"
	ClassifiedByRules ClassificationSource = "RULES"
	ClassifiedNone    ClassificationSource = "NONE"
)

// ClassificationResult is the outcome of the category classifier chain.
// An empty Category is a normal outcome: the file is placed at the course
// root.
type ClassificationResult struct {
	Category string
	Source   ClassificationSource
}
