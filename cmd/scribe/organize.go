package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/organizer"
)

func organizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Classify and relocate new downloads once",
		Long: `Enumerates top-level files in the monitored folder, determines a
destination for each and moves it there. By default only files newer than
the last run's watermark are considered.`,
		RunE: runOrganize,
	}

	cmd.Flags().Bool("all", false, "process every file, ignoring the watermark")
	cmd.Flags().Bool("dry-run", false, "report decisions without moving anything")
	cmd.Flags().Bool("progress", false, "show a progress bar")
	cmd.Flags().String("folder", "", "override the monitored folder")

	_ = viper.BindPFlag("monitor_folder", cmd.Flags().Lookup("folder"))

	return cmd
}

func runOrganize(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	processAll, _ := cmd.Flags().GetBool("all")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	progress, _ := cmd.Flags().GetBool("progress")

	org, cleanup, err := buildOrganizer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := org.Run(cmd.Context(), organizer.Options{
		ProcessAll:   processAll,
		DryRun:       dryRun,
		ShowProgress: progress && !dryRun,
	})
	if err != nil {
		if errors.Is(err, organizer.ErrAlreadyRunning) {
			slog.Warn("another organize run is already in progress, nothing to do")
			return nil
		}
		return err
	}

	if dryRun {
		fmt.Printf("dry-run: %s\n", summary.Describe())
		for _, o := range summary.Outcomes {
			if o.TargetPath != "" {
				fmt.Printf("  %-18s %s -> %s\n", o.Action, o.SourcePath, o.TargetPath)
			} else {
				fmt.Printf("  %-18s %s\n", o.Action, o.SourcePath)
			}
		}
		return nil
	}

	fmt.Println(summary.Describe())
	return nil
}
