package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taxxyapp/taxxy/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidCorrection = errors.New("invalid correction")
	ErrInvalidTxn        = errors.New("invalid transaction")
	ErrInvalidResult     = errors.New("invalid classification result")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCorrection validates a correction before insert. Ownerless
// corrections are rejected outright; a correction that cannot be attributed
// must never enter the log.
func validateCorrection(c *model.Correction) error {
	if c == nil {
		return fmt.Errorf("%w: correction", ErrNilParameter)
	}
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidCorrection)
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidCorrection)
	}
	if !c.OriginalPurpose.IsValid() {
		return fmt.Errorf("%w: original purpose %q", ErrInvalidCorrection, c.OriginalPurpose)
	}
	if !c.CorrectedPurpose.IsValid() {
		return fmt.Errorf("%w: corrected purpose %q", ErrInvalidCorrection, c.CorrectedPurpose)
	}
	return nil
}

// validateTransaction validates a transaction before insert.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if strings.TrimSpace(txn.Owner) == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidTxn)
	}
	if strings.TrimSpace(txn.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTxn)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTxn)
	}
	return nil
}

// validateResult validates a classification result before it is written onto
// a transaction.
func validateResult(result *model.ClassificationResult) error {
	if result == nil {
		return fmt.Errorf("%w: result", ErrNilParameter)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidResult)
	}
	if result.Purpose != model.PurposeBusiness && result.Purpose != model.PurposePersonal {
		return fmt.Errorf("%w: purpose %q", ErrInvalidResult, result.Purpose)
	}
	return nil
}
