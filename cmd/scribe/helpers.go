package main

import (
	"log/slog"

	"github.com/amanzav/scribe/internal/ai"
	"github.com/amanzav/scribe/internal/classify"
	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/course"
	"github.com/amanzav/scribe/internal/history"
	"github.com/amanzav/scribe/internal/organizer"
	"github.com/amanzav/scribe/internal/provenance"
)

// buildOrganizer assembles the engine from configuration. The external
// classifier is only wired in when its config block is complete; the history
// log degrades to disabled when its database cannot be opened.
func buildOrganizer(cfg config.Config) (*organizer.Organizer, func(), error) {
	logger := slog.Default()

	var external classify.ExternalClassifier
	if cfg.AI.Enabled() {
		client, err := ai.NewClient(cfg.AI, logger)
		if err != nil {
			logger.Warn("external classifier disabled", "error", err)
		} else {
			external = client
		}
	}
	pipeline := classify.NewPipeline(external, logger)

	courses, err := course.NewResolver(cfg.Rules, cfg.CoursePrefix, logger)
	if err != nil {
		return nil, nil, err
	}

	log, err := history.Open(cfg.StateDir)
	cleanup := func() {}
	if err != nil {
		logger.Warn("history log disabled", "error", err)
		log = nil
	} else {
		cleanup = func() { _ = log.Close() }
	}

	org := organizer.New(cfg, pipeline, courses, provenance.NewXattr(), log, logger)
	return org, cleanup, nil
}
