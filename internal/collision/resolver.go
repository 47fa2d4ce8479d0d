// Package collision decides what happens when a canonical target path is
// already occupied.
package collision

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/amanzav/scribe/internal/digest"
	"github.com/amanzav/scribe/internal/model"
	"github.com/amanzav/scribe/internal/target"
)

// Decision is the resolver's verdict for one file. Deciding never mutates
// the filesystem; the orchestrator executes (or, in dry-run, only reports)
// the decision.
type Decision struct {
	Action     model.Action
	TargetPath string
	Note       string
}

// Resolver applies the configured duplicate policy.
type Resolver struct {
	logger *slog.Logger
	policy model.DuplicatePolicy
}

// NewResolver creates a collision resolver for the given policy.
func NewResolver(policy model.DuplicatePolicy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		policy: policy,
		logger: logger,
	}
}

// Decide maps (source, proposed target) to an action:
//
//   - target free: plain move.
//   - identical content: no-op, except overwrite still replaces the file.
//   - different content: policy decides among overwrite, skip and
//     versioned rename.
//   - digest failure on either side: versioned rename regardless of policy,
//     so an unreadable file is never silently dropped or overwritten.
func (r *Resolver) Decide(sourcePath, targetPath string) Decision {
	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		return Decision{Action: model.ActionMoved, TargetPath: targetPath}
	}

	equal, err := digest.Equal(targetPath, sourcePath)
	if err != nil {
		r.logger.Warn("digest failed, falling back to versioned rename",
			"source", sourcePath,
			"target", targetPath,
			"error", err)
		return Decision{
			Action:     model.ActionRenamed,
			TargetPath: r.nextVersionedPath(targetPath),
			Note:       "duplicate status unknown: " + err.Error(),
		}
	}

	if equal {
		if r.policy == model.PolicyOverwrite {
			return Decision{
				Action:     model.ActionOverwritten,
				TargetPath: targetPath,
				Note:       "identical content replaced",
			}
		}
		return Decision{
			Action: model.ActionSkippedDuplicate,
			Note:   "identical content already at destination",
		}
	}

	switch r.policy {
	case model.PolicyOverwrite:
		return Decision{Action: model.ActionOverwritten, TargetPath: targetPath}
	case model.PolicySkip:
		return Decision{
			Action: model.ActionSkippedPolicy,
			Note:   "different content at destination, skip policy",
		}
	default:
		return Decision{
			Action:     model.ActionRenamed,
			TargetPath: r.nextVersionedPath(targetPath),
		}
	}
}

// nextVersionedPath appends " (N)" before the extension, starting at N=1 and
// incrementing until the path is free.
func (r *Resolver) nextVersionedPath(targetPath string) string {
	dir := filepath.Dir(targetPath)
	name := filepath.Base(targetPath)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, target.VersionedName(name, n))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
