package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single financial transaction entered manually or
// imported from a CSV file.
type Transaction struct {
	Date        time.Time
	ID          string
	Owner       string
	Description string
	Tag         string
	Category    string
	Purpose     Purpose
	WriteOff    WriteOff
	Amount      decimal.Decimal
	Confidence  float64
	Reviewed    bool
}

// GenerateHash creates a stable hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.String(),
		t.Description,
		t.Owner)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// NeedsReview reports whether the transaction's classification confidence is
// low enough to warrant a second look.
func (t *Transaction) NeedsReview() bool {
	return t.Confidence < reviewThreshold
}

// ApplyClassification copies a classifier result onto the transaction and
// clears the reviewed flag so the user sees the fresh suggestion.
func (t *Transaction) ApplyClassification(result *ClassificationResult) {
	t.Tag = result.Tag
	t.Category = result.Category
	t.Purpose = result.Purpose
	t.WriteOff = result.WriteOff
	t.Confidence = result.Confidence
	t.Reviewed = false
}
