package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taxxyapp/taxxy/internal/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved transactions",
		Long: `List saved transactions, newest first.

Examples:
  taxxy list
  taxxy list --from 2026-01-01 --to 2026-03-31
  taxxy list --review`,
		RunE: runList,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Int("limit", 50, "maximum transactions to show")
	cmd.Flags().Bool("review", false, "only transactions flagged for review")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	filter := service.TransactionFilter{}
	filter.Limit, _ = cmd.Flags().GetInt("limit")
	reviewOnly, _ := cmd.Flags().GetBool("review")

	if fromStr, _ := cmd.Flags().GetString("from"); fromStr != "" {
		from, parseErr := time.Parse("2006-01-02", fromStr)
		if parseErr != nil {
			return fmt.Errorf("invalid --from date %q: %w", fromStr, parseErr)
		}
		filter.StartDate = &from
	}
	if toStr, _ := cmd.Flags().GetString("to"); toStr != "" {
		to, parseErr := time.Parse("2006-01-02", toStr)
		if parseErr != nil {
			return fmt.Errorf("invalid --to date %q: %w", toStr, parseErr)
		}
		filter.EndDate = &to
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := store.GetTransactions(ctx, owner, filter)
	if err != nil {
		return err
	}

	shown := 0
	for i := range txns {
		txn := &txns[i]
		if reviewOnly && !txn.NeedsReview() {
			continue
		}
		shown++

		writeOff := " "
		if txn.WriteOff.IsWriteOff {
			writeOff = "W"
		}
		fmt.Printf("%s  %s  %10s  %-8s %s  %q\n",
			shortID(txn.ID),
			txn.Date.Format("2006-01-02"),
			txn.Amount.StringFixed(2),
			txn.Purpose,
			writeOff,
			txn.Description)
	}

	if shown == 0 {
		fmt.Println("No transactions found")
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
