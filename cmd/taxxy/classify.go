package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taxxyapp/taxxy/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a transaction and save it",
		Long: `Classify a single transaction description as business or personal,
flagging write-off eligibility, and save it as a new transaction.

Examples:
  taxxy classify "Adobe Creative Cloud subscription" --amount 54.99
  taxxy classify "Dinner at Luigi's" --amount 82.50 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("amount", "a", "", "transaction amount")
	cmd.Flags().StringP("date", "d", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("dry-run", false, "classify without saving")

	_ = viper.BindPFlag("classify.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := args[0]
	amountStr, _ := cmd.Flags().GetString("amount")
	dateStr, _ := cmd.Flags().GetString("date")
	dryRun := viper.GetBool("classify.dry_run")

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	classifier, err := initClassifier(store)
	if err != nil {
		return err
	}
	defer func() { _ = classifier.Close() }()

	profile, err := store.GetTaxProfile(ctx, owner)
	if err != nil {
		return err
	}

	req := model.ClassificationRequest{
		Description: description,
		Amount:      amountStr,
		TaxProfile:  profile,
	}

	classifyCtx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	result, err := classifier.Classify(classifyCtx, req, owner)
	if err != nil {
		return err
	}

	printResult(&result)

	if dryRun {
		return nil
	}

	date := time.Now()
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
	}

	amount := decimal.Zero
	if amountStr != "" {
		amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", amountStr, err)
		}
	}

	txn := &model.Transaction{
		Owner:       owner,
		Date:        date,
		Description: description,
		Amount:      amount,
	}
	txn.ApplyClassification(&result)

	if err := store.SaveTransaction(ctx, txn); err != nil {
		return err
	}

	fmt.Printf("Saved transaction %s\n", txn.ID)
	return nil
}

func printResult(result *model.ClassificationResult) {
	fmt.Printf("Tag:        %s\n", result.Tag)
	fmt.Printf("Category:   %s\n", result.Category)
	fmt.Printf("Purpose:    %s\n", result.Purpose)
	fmt.Printf("Confidence: %.0f%%\n", result.Confidence*100)
	if result.WriteOff.IsWriteOff {
		fmt.Printf("Write-off:  yes (%s)\n", result.WriteOff.Reason)
	} else {
		fmt.Printf("Write-off:  no\n")
	}
	if result.LearnedFrom > 0 {
		fmt.Printf("AI used %d of your past corrections (+%.0f%% confidence)\n",
			result.LearnedFrom, result.CorrectionInfluence*100)
	}
	if result.NeedsReview() {
		fmt.Println("Flagged for manual review (low confidence)")
	}
}
