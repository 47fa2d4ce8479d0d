// Package target derives canonical filenames and composes final target
// paths under the monitored root.
package target

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/amanzav/scribe/internal/model"
)

// ImagesFolder receives every image file, directly under the monitored root,
// bypassing course and category resolution.
const ImagesFolder = "Images"

// imageExts is the fixed image extension set, matched case-insensitively.
var imageExts = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"tif":  {},
	"tiff": {},
	"webp": {},
	"heic": {},
}

// versionSuffixRe matches a single trailing " (N)" versioning suffix on a
// filename stem. Exactly one group is stripped per canonicalization, so
// "Report (1) (2).pdf" canonicalizes to "Report (1).pdf".
var versionSuffixRe = regexp.MustCompile(`^(.*) \(\d+\)$`)

// IsImage reports whether the file belongs in the Images folder.
func IsImage(file model.CandidateFile) bool {
	_, ok := imageExts[file.Ext()]
	return ok
}

// CanonicalName strips one trailing " (N)" suffix from the filename's stem,
// re-deriving the stable identity used for duplicate detection regardless of
// how many times the file was previously versioned.
func CanonicalName(filename string) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	if m := versionSuffixRe.FindStringSubmatch(stem); m != nil {
		stem = m[1]
	}
	return stem + ext
}

// VersionedName appends " (n)" before the extension, producing the candidate
// names tried by the collision resolver.
func VersionedName(filename string, n int) string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// Builder composes target paths from a monitored root.
type Builder struct {
	root string
}

// NewBuilder creates a path builder rooted at the monitored folder.
func NewBuilder(root string) *Builder {
	return &Builder{root: root}
}

// Build returns the canonical target path for a file, or ok=false when the
// file has no destination and must be left in place. Images always target
// the Images folder; otherwise the path is root/base[/category]/name with
// the category segment omitted when the classifier returned none.
func (b *Builder) Build(file model.CandidateFile, res model.CourseResolution, cls model.ClassificationResult) (string, bool) {
	name := CanonicalName(file.Name)

	if IsImage(file) {
		return filepath.Join(b.root, ImagesFolder, name), true
	}

	if !res.Resolved() {
		return "", false
	}

	if cls.Category == "" {
		return filepath.Join(b.root, res.BaseFolder, name), true
	}
	return filepath.Join(b.root, res.BaseFolder, cls.Category, name), true
}
