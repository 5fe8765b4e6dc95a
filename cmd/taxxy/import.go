package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/taxxyapp/taxxy/internal/common"
	"github.com/taxxyapp/taxxy/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import and classify transactions from a CSV file",
		Long: `Import transactions from a CSV file with columns: date, description, amount.
Each row is classified and saved. A header row is skipped automatically when
the first date column fails to parse.

Examples:
  taxxy import statement.csv
  taxxy import statement.csv --skip-classify`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("skip-classify", false, "import rows without AI classification")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]
	skipClassify, _ := cmd.Flags().GetBool("skip-classify")

	owner, err := requireOwner()
	if err != nil {
		return err
	}

	rows, err := readTransactionRows(path, owner)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No transactions found in file")
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var classify classifyFunc
	if !skipClassify {
		classifier, classifierErr := initClassifier(store)
		if classifierErr != nil {
			return classifierErr
		}
		defer func() { _ = classifier.Close() }()

		profile, profileErr := store.GetTaxProfile(ctx, owner)
		if profileErr != nil {
			return profileErr
		}

		classify = func(ctx context.Context, txn *model.Transaction) {
			req := model.ClassificationRequest{
				Description: txn.Description,
				Amount:      txn.Amount.String(),
				TaxProfile:  profile,
			}

			classifyCtx, cancel := context.WithTimeout(ctx, classifyTimeout)
			defer cancel()

			result, classifyErr := classifier.Classify(classifyCtx, req, owner)
			if classifyErr != nil {
				slog.Warn("classification skipped", "description", txn.Description, "error", classifyErr)
				return
			}
			txn.ApplyClassification(&result)
		}
	}

	bar := progressbar.Default(int64(len(rows)), "importing")
	imported := 0
	for i := range rows {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if classify != nil {
			classify(ctx, &rows[i])
		}

		if err := store.SaveTransaction(ctx, &rows[i]); err != nil {
			if errors.Is(err, common.ErrDuplicateEntry) {
				slog.Debug("skipping duplicate row", "description", rows[i].Description)
			} else {
				common.LogError(err, "failed to save transaction", common.Fields{
					"description": rows[i].Description,
				})
			}
		} else {
			imported++
		}
		_ = bar.Add(1)
	}

	fmt.Printf("\nImported %d of %d transactions\n", imported, len(rows))
	return nil
}

type classifyFunc func(ctx context.Context, txn *model.Transaction)

// readTransactionRows parses a date,description,amount CSV into transactions.
func readTransactionRows(path, owner string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows []model.Transaction
	line := 0
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", readErr)
		}
		line++

		if len(record) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 columns (date, description, amount), got %d", line, len(record))
		}

		date, dateErr := time.Parse("2006-01-02", record[0])
		if dateErr != nil {
			if line == 1 {
				// Header row
				continue
			}
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, record[0], dateErr)
		}

		amount, amountErr := decimal.NewFromString(record[2])
		if amountErr != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, record[2], amountErr)
		}

		rows = append(rows, model.Transaction{
			Owner:       owner,
			Date:        date,
			Description: record[1],
			Amount:      amount,
			Category:    "unassigned",
		})
	}

	return rows, nil
}
