package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/taxxyapp/taxxy/internal/common"
	"github.com/taxxyapp/taxxy/internal/model"
	"github.com/taxxyapp/taxxy/internal/service"
)

// SaveTransaction inserts a transaction, assigning an ID and hash if unset.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	hash := txn.GenerateHash()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, owner, hash, date, description, amount,
			tag, category, purpose, confidence,
			is_write_off, write_off_reason, reviewed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID,
		txn.Owner,
		hash,
		txn.Date,
		txn.Description,
		txn.Amount.String(),
		txn.Tag,
		txn.Category,
		string(txn.Purpose),
		txn.Confidence,
		txn.WriteOff.IsWriteOff,
		txn.WriteOff.Reason,
		txn.Reviewed,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("transaction with same date, amount and description: %w", common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	return nil
}

// GetTransactionByID fetches a single transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, date, description, amount,
			tag, category, purpose, confidence,
			is_write_off, write_off_reason, reviewed
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransactions returns the owner's transactions, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, owner string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner, date, description, amount,
			tag, category, purpose, confidence,
			is_write_off, write_off_reason, reviewed
		FROM transactions
		WHERE owner = ?`
	args := []any{owner}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY date DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransactionClassification writes a classifier result onto an existing
// transaction and clears its reviewed flag.
func (s *SQLiteStorage) UpdateTransactionClassification(ctx context.Context, id string, result *model.ClassificationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if err := validateResult(result); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET
			tag = ?,
			category = ?,
			purpose = ?,
			confidence = ?,
			is_write_off = ?,
			write_off_reason = ?,
			reviewed = 0
		WHERE id = ?
	`,
		result.Tag,
		result.Category,
		string(result.Purpose),
		result.Confidence,
		result.WriteOff.IsWriteOff,
		result.WriteOff.Reason,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update classification: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}

	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var amount, purpose string
	if err := row.Scan(
		&txn.ID, &txn.Owner, &txn.Date, &txn.Description, &amount,
		&txn.Tag, &txn.Category, &purpose, &txn.Confidence,
		&txn.WriteOff.IsWriteOff, &txn.WriteOff.Reason, &txn.Reviewed,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	txn.Amount = parsed
	txn.Purpose = model.Purpose(purpose)

	return &txn, nil
}
