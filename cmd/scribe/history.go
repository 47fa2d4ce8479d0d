package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/history"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent per-file outcomes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")

			store, err := history.Open(cfg.StateDir)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			outcomes, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(outcomes) == 0 {
				fmt.Println("no history yet")
				return nil
			}

			for _, o := range outcomes {
				line := fmt.Sprintf("%s  %-18s %s",
					o.ProcessedAt.Local().Format("2006-01-02 15:04:05"),
					o.Action, o.SourcePath)
				if o.TargetPath != "" {
					line += " -> " + o.TargetPath
				}
				if o.DryRun {
					line += "  (dry-run)"
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum rows to show")

	return cmd
}
