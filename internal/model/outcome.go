package model

import "time"

// Action describes what the engine did (or would do, in dry-run) with a file.
type Action string

// Action constants.
const (
	// ActionMoved means the file was relocated to its canonical target path.
	ActionMoved Action = "MOVED"
	// ActionRenamed means the file was relocated under a versioned " (N)" name.
	ActionRenamed Action = "RENAMED"
	// ActionOverwritten means the file replaced an existing file at the target.
	ActionOverwritten Action = "OVERWRITTEN"
	// ActionSkippedDuplicate means the destination already held identical content.
	ActionSkippedDuplicate Action = "SKIPPED_DUPLICATE"
	// ActionSkippedPolicy means the skip policy left a conflicting file in place.
	ActionSkippedPolicy Action = "SKIPPED_POLICY"
	// ActionUnresolved means no destination could be determined; file untouched.
	ActionUnresolved Action = "UNRESOLVED"
	// ActionVanished means the file disappeared between enumeration and
	// processing. Treated as a skip, not a failure.
	ActionVanished Action = "VANISHED"
	// ActionError means a per-file error stopped processing of this file.
	ActionError Action = "ERROR"
)

// Moved reports whether the action relocated the source file.
func (a Action) Moved() bool {
	return a == ActionMoved || a == ActionRenamed || a == ActionOverwritten
}

// Outcome records the full decision trail for one processed file. Outcomes
// are appended to the history log and reported at the end of a batch.
type Outcome struct {
	ProcessedAt time.Time
	SourcePath  string
	TargetPath  string
	Category    string
	CourseCode  string
	Action      Action
	Source      ResolutionSource
	Classifier  ClassificationSource
	DryRun      bool
	Note        string
}
