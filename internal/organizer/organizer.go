// Package organizer enumerates candidate files in the monitored folder and
// drives the classification, resolution and placement pipeline for each one.
package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/gofrs/flock"
	"github.com/schollz/progressbar/v3"

	"github.com/amanzav/scribe/internal/classify"
	"github.com/amanzav/scribe/internal/collision"
	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/course"
	"github.com/amanzav/scribe/internal/fileutil"
	"github.com/amanzav/scribe/internal/history"
	"github.com/amanzav/scribe/internal/model"
	"github.com/amanzav/scribe/internal/provenance"
	"github.com/amanzav/scribe/internal/state"
	"github.com/amanzav/scribe/internal/target"
)

// ErrAlreadyRunning reports that another live run holds the run lock.
var ErrAlreadyRunning = errors.New("another organize run is in progress")

// partialExts are browser temp suffixes for in-flight downloads. Files with
// these extensions vanish from consideration until the browser renames them.
var partialExts = map[string]struct{}{
	"crdownload": {},
	"part":       {},
	"partial":    {},
	"download":   {},
	"opdownload": {},
	"tmp":        {},
}

// Options are the per-run mode flags.
type Options struct {
	// ProcessAll ignores the watermark and considers every top-level file.
	ProcessAll bool
	// DryRun computes and reports every decision without touching the
	// filesystem; not even target directories are created.
	DryRun bool
	// ShowProgress renders a progress bar on stderr during the batch.
	ShowProgress bool
}

// Summary aggregates the outcomes of one batch run.
type Summary struct {
	Outcomes  []model.Outcome
	Moved     int
	Skipped   int
	Errors    int
	Candidate int
}

// Organizer wires the engine components together for batch runs.
type Organizer struct {
	cfg        config.Config
	classifier *classify.Pipeline
	courses    *course.Resolver
	builder    *target.Builder
	collisions *collision.Resolver
	origins    provenance.Lookup
	watermarks *state.Store
	log        *history.Store
	logger     *slog.Logger
	now        func() time.Time
}

// New assembles an organizer from explicit dependencies. history may be nil
// to disable the outcome log (tests do this).
func New(cfg config.Config, classifier *classify.Pipeline, courses *course.Resolver, origins provenance.Lookup, log *history.Store, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{
		cfg:        cfg,
		classifier: classifier,
		courses:    courses,
		builder:    target.NewBuilder(cfg.MonitorFolder),
		collisions: collision.NewResolver(cfg.DuplicatePolicy, logger),
		origins:    origins,
		watermarks: state.NewStore(cfg.StateDir),
		log:        log,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one batch. Only configuration errors are returned; per-file
// failures are absorbed, logged and counted in the summary so every
// remaining candidate is still attempted.
func (o *Organizer) Run(ctx context.Context, opts Options) (Summary, error) {
	if err := o.cfg.Validate(); err != nil {
		return Summary{}, err
	}

	if !opts.DryRun {
		unlock, err := o.acquireLock()
		if err != nil {
			return Summary{}, err
		}
		defer unlock()
	}

	watermark := time.Time{}
	if !opts.ProcessAll {
		var err error
		watermark, err = o.watermarks.Watermark(o.now())
		if err != nil {
			return Summary{}, err
		}
		o.logger.Debug("using watermark", "watermark", watermark)
	}

	files, err := o.enumerate(watermark, opts.ProcessAll)
	if err != nil {
		return Summary{}, err
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress && len(files) > 0 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Organizing downloads..."),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}

	summary := Summary{Candidate: len(files)}
	for _, file := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		outcome := o.processFile(ctx, file, opts.DryRun)
		summary.record(outcome)

		if o.log != nil {
			if err := o.log.Append(ctx, outcome); err != nil {
				o.logger.Warn("failed to record outcome", "file", file.Name, "error", err)
			}
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	// The watermark only advances after every file in the batch was
	// attempted, and never for dry or process-all runs, so an aborted run
	// simply reprocesses the same window next time.
	if !opts.DryRun && !opts.ProcessAll {
		if err := o.watermarks.Advance(o.now()); err != nil {
			o.logger.Warn("failed to advance watermark", "error", err)
		}
	}

	return summary, nil
}

// enumerate lists top-level files in the monitored root. Subdirectories are
// never entered: recursing would re-process files the tool already placed.
func (o *Organizer) enumerate(watermark time.Time, all bool) ([]model.CandidateFile, error) {
	entries, err := os.ReadDir(o.cfg.MonitorFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to read monitor folder: %w", err)
	}

	var files []model.CandidateFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(o.cfg.MonitorFolder, entry.Name())
		file := model.NewCandidateFile(path, time.Time{})

		if _, partial := partialExts[file.Ext()]; partial {
			continue
		}

		ts, err := times.Stat(path)
		if err != nil {
			// Vanished between ReadDir and Stat; skip quietly.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			o.logger.Warn("failed to stat candidate", "file", entry.Name(), "error", err)
			continue
		}
		file.ModifiedAt = ts.ModTime().UTC()

		// Strictly greater than: a file modified exactly at the watermark
		// was processed by the previous run.
		if !all && !file.ModifiedAt.After(watermark) {
			continue
		}

		files = append(files, file)
	}

	return files, nil
}

// processFile runs the full pipeline for one candidate. It never returns an
// error: every failure degrades to a defined fallback or a recorded outcome.
func (o *Organizer) processFile(ctx context.Context, file model.CandidateFile, dryRun bool) model.Outcome {
	outcome := model.Outcome{
		ProcessedAt: o.now().UTC(),
		SourcePath:  file.Path,
		DryRun:      dryRun,
	}

	if _, err := os.Stat(file.Path); errors.Is(err, fs.ErrNotExist) {
		outcome.Action = model.ActionVanished
		outcome.Note = "file vanished before processing"
		o.logger.Info("candidate vanished, skipping", "file", file.Name)
		return outcome
	}

	if url, ok := o.origins.OriginURL(file.Path); ok {
		file.OriginURL = url
	}

	var res model.CourseResolution
	var cls model.ClassificationResult

	// Images bypass course and category resolution entirely.
	if !target.IsImage(file) {
		res = o.courses.Resolve(file)
		if !res.Resolved() {
			outcome.Action = model.ActionUnresolved
			outcome.Note = "no rule or course code matched"
			o.logger.Info("no destination for file, leaving in place",
				"file", file.Name)
			return outcome
		}

		cls = o.classifier.Classify(ctx, classify.Request{
			Filename:   file.Name,
			OriginURL:  file.OriginURL,
			CourseCode: res.CourseCode,
		})
	}

	targetPath, ok := o.builder.Build(file, res, cls)
	if !ok {
		outcome.Action = model.ActionUnresolved
		return outcome
	}

	decision := o.collisions.Decide(file.Path, targetPath)

	outcome.TargetPath = decision.TargetPath
	outcome.Category = cls.Category
	outcome.CourseCode = res.CourseCode
	outcome.Source = res.Source
	outcome.Classifier = cls.Source
	outcome.Action = decision.Action
	outcome.Note = decision.Note

	if !decision.Action.Moved() {
		o.logger.Info("leaving file in place",
			"file", file.Name,
			"action", string(decision.Action),
			"note", decision.Note)
		return outcome
	}

	if dryRun {
		o.logger.Info("dry-run: would move file",
			"file", file.Name,
			"target", decision.TargetPath,
			"action", string(decision.Action))
		return outcome
	}

	if err := o.move(file.Path, decision.TargetPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			outcome.Action = model.ActionVanished
			outcome.Note = "file vanished during move"
			return outcome
		}
		outcome.Action = model.ActionError
		outcome.Note = err.Error()
		o.logger.Error("failed to move file",
			"file", file.Name,
			"target", decision.TargetPath,
			"error", err)
		return outcome
	}

	o.logger.Info("moved file",
		"file", file.Name,
		"target", decision.TargetPath,
		"category", cls.Category,
		"action", string(decision.Action))

	return outcome
}

// move creates the target directory (live runs only reach here) and
// relocates the file.
func (o *Organizer) move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	return fileutil.MoveFile(src, dst)
}

// acquireLock takes the run lock so two live runs cannot interleave moves.
func (o *Organizer) acquireLock() (func(), error) {
	if err := os.MkdirAll(o.cfg.StateDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	lock := flock.New(filepath.Join(o.cfg.StateDir, "scribe.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return func() { _ = lock.Unlock() }, nil
}

// record tallies an outcome into the summary.
func (s *Summary) record(o model.Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch {
	case o.Action.Moved():
		s.Moved++
	case o.Action == model.ActionError:
		s.Errors++
	default:
		s.Skipped++
	}
}

// Describe renders a one-line human summary, used by the CLI.
func (s Summary) Describe() string {
	parts := []string{
		fmt.Sprintf("%d candidate(s)", s.Candidate),
		fmt.Sprintf("%d moved", s.Moved),
		fmt.Sprintf("%d skipped", s.Skipped),
	}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", s.Errors))
	}
	return strings.Join(parts, ", ")
}
