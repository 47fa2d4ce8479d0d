package model

// Rule maps a URL glob pattern (may contain * wildcards) to a destination
// base folder relative to the monitored root, e.g. "University/MTE-252".
//
// Rules are carried as an ordered slice, never a map: resolution is
// first-configured-match-wins and must be reproducible across runs.
type Rule struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Folder  string `mapstructure:"folder" yaml:"folder"`
}

// DuplicatePolicy decides what happens when a target path is already
// occupied by a file with different content.
type DuplicatePolicy string

// Duplicate policy constants.
const (
	PolicyRename    DuplicatePolicy = "rename"
	PolicySkip      DuplicatePolicy = "skip"
	PolicyOverwrite DuplicatePolicy = "overwrite"
)

// ParseDuplicatePolicy maps a configured string onto a policy. Unrecognized
// values resolve to rename; the second return reports whether the input was
// recognized so the caller can warn.
func ParseDuplicatePolicy(raw string) (DuplicatePolicy, bool) {
	switch DuplicatePolicy(raw) {
	case PolicyRename, PolicySkip, PolicyOverwrite:
		return DuplicatePolicy(raw), true
	case "":
		return PolicyRename, true
	default:
		return PolicyRename, false
	}
}
