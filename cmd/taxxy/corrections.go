package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxxyapp/taxxy/internal/model"
)

func correctionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corrections",
		Short: "Record and inspect classification corrections",
		Long: `Corrections teach the classifier. When you disagree with a
classification, record the override here; future classifications of similar
descriptions will see it as an example.`,
	}

	cmd.AddCommand(correctionsAddCmd())
	cmd.AddCommand(correctionsListCmd())

	return cmd
}

func correctionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a correction for a transaction description",
		Args:  cobra.ExactArgs(1),
		RunE:  runCorrectionsAdd,
	}

	cmd.Flags().String("from", "", "original purpose (business, personal, unknown)")
	cmd.Flags().String("to", "", "corrected purpose (business, personal)")
	cmd.Flags().String("from-reason", "", "original write-off reason")
	cmd.Flags().String("to-reason", "", "corrected write-off reason")
	cmd.Flags().String("transaction", "", "transaction ID to apply the correction to")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runCorrectionsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	fromReason, _ := cmd.Flags().GetString("from-reason")
	toReason, _ := cmd.Flags().GetString("to-reason")

	correction := &model.Correction{
		Owner:            owner,
		Description:      args[0],
		OriginalPurpose:  model.Purpose(from),
		CorrectedPurpose: model.Purpose(to),
		OriginalReason:   fromReason,
		CorrectedReason:  toReason,
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveCorrection(ctx, correction); err != nil {
		return err
	}

	fmt.Printf("Recorded correction %s\n", correction.ID)

	txnID, _ := cmd.Flags().GetString("transaction")
	if txnID == "" {
		return nil
	}

	result := model.ManualClassification(correction.CorrectedPurpose, correction.CorrectedReason)
	if txn, getErr := store.GetTransactionByID(ctx, txnID); getErr == nil {
		result.Tag = txn.Tag
		result.Category = txn.Category
	}

	if err := store.UpdateTransactionClassification(ctx, txnID, &result); err != nil {
		return err
	}

	fmt.Printf("Updated transaction %s\n", txnID)
	return nil
}

func correctionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent corrections",
		RunE:  runCorrectionsList,
	}

	cmd.Flags().Int("limit", 20, "maximum corrections to show")

	return cmd
}

func runCorrectionsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	corrections, err := store.GetRecentCorrections(ctx, owner, limit)
	if err != nil {
		return err
	}

	if len(corrections) == 0 {
		fmt.Println("No corrections recorded")
		return nil
	}

	for _, c := range corrections {
		fmt.Printf("%s  %q  %s -> %s\n",
			c.Timestamp.Format("2006-01-02"),
			c.Description,
			c.OriginalPurpose,
			c.CorrectedPurpose)
		if c.CorrectedReason != "" {
			fmt.Printf("            reason: %s\n", c.CorrectedReason)
		}
	}

	return nil
}
