package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show what the classifier has learned from your corrections",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stats, err := store.GetLearningStats(ctx, owner)
	if err != nil {
		return err
	}

	fmt.Printf("Total corrections:   %d\n", stats.TotalCorrections)
	fmt.Printf("Last 30 days:        %d\n", stats.RecentCorrections)
	fmt.Printf("Est. improvement:    %.1f%%\n", stats.AvgConfidenceImprovement)

	if len(stats.TopCategories) > 0 {
		fmt.Println("\nMost corrected categories:")
		for _, cc := range stats.TopCategories {
			fmt.Printf("  %-16s %d\n", cc.Category, cc.Count)
		}
	}

	fmt.Println("\nCorrections per week (oldest to newest):")
	for _, count := range stats.WeeklyCorrections {
		fmt.Printf("%3d", count)
	}
	fmt.Println()

	return nil
}
