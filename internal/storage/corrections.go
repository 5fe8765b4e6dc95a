package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taxxyapp/taxxy/internal/model"
)

// SaveCorrection appends a correction to the log as a single atomic insert.
// Corrections are never updated or deleted; the ID and timestamp are assigned
// here if the caller left them empty.
func (s *SQLiteStorage) SaveCorrection(ctx context.Context, correction *model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCorrection(correction); err != nil {
		return err
	}

	if correction.ID == "" {
		correction.ID = uuid.NewString()
	}
	if correction.Timestamp.IsZero() {
		correction.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO corrections (
			id, owner, description,
			original_purpose, corrected_purpose,
			original_reason, corrected_reason,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		correction.ID,
		correction.Owner,
		correction.Description,
		string(correction.OriginalPurpose),
		string(correction.CorrectedPurpose),
		correction.OriginalReason,
		correction.CorrectedReason,
		correction.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save correction: %w", err)
	}

	return nil
}

// GetRecentCorrections returns up to limit corrections for the owner, newest
// first. The owner filter is part of the query, not post-filtering; rows from
// other users never leave the database.
func (s *SQLiteStorage) GetRecentCorrections(ctx context.Context, owner string, limit int) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, description,
			original_purpose, corrected_purpose,
			original_reason, corrected_reason,
			created_at
		FROM corrections
		WHERE owner = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corrections []model.Correction
	for rows.Next() {
		var c model.Correction
		var originalPurpose, correctedPurpose string
		if err := rows.Scan(
			&c.ID, &c.Owner, &c.Description,
			&originalPurpose, &correctedPurpose,
			&c.OriginalReason, &c.CorrectedReason,
			&c.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		c.OriginalPurpose = model.Purpose(originalPurpose)
		c.CorrectedPurpose = model.Purpose(correctedPurpose)
		corrections = append(corrections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return corrections, nil
}
