package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/model"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule list in evaluation order",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(cfg.Rules) == 0 {
				fmt.Println("no rules configured")
				return nil
			}

			for i, rule := range cfg.Rules {
				fmt.Printf("%2d. %-50s -> %s\n", i+1, rule.Pattern, rule.Folder)
			}
			fmt.Printf("\nduplicate policy: %s\n", cfg.DuplicatePolicy)
			fmt.Printf("course prefix:    %s\n", cfg.CoursePrefix)
			return nil
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the built-in category table in evaluation order",
		Run: func(_ *cobra.Command, _ []string) {
			for i, def := range model.BuiltinCategories {
				fmt.Printf("%2d. %-12s %v\n", i+1, def.Name, def.Keywords)
			}
		},
	}
}
