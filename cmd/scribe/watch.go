package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/organizer"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Organize the downloads folder on an interval until interrupted",
		RunE:  runWatch,
	}

	cmd.Flags().Duration("interval", 5*time.Minute, "time between incremental runs")

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	interval, _ := cmd.Flags().GetDuration("interval")

	org, cleanup, err := buildOrganizer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("watching downloads folder",
		"folder", cfg.MonitorFolder,
		"interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		summary, err := org.Run(cmd.Context(), organizer.Options{})
		switch {
		case errors.Is(err, context.Canceled):
			return nil
		case errors.Is(err, organizer.ErrAlreadyRunning):
			slog.Warn("skipping interval, another run holds the lock")
		case err != nil:
			// Configuration went bad mid-watch (folder deleted); stop.
			return err
		default:
			if summary.Candidate > 0 {
				slog.Info("organize pass complete", "summary", summary.Describe())
			}
		}

		select {
		case <-cmd.Context().Done():
			return nil
		case <-ticker.C:
		}
	}
}
