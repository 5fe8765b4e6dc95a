package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateHash(t *testing.T) {
	base := Transaction{
		Date:        time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		Owner:       "mia",
		Description: "Figma subscription",
		Amount:      decimal.NewFromFloat(15.00),
	}

	t.Run("stable across calls", func(t *testing.T) {
		assert.Equal(t, base.GenerateHash(), base.GenerateHash())
	})

	t.Run("time of day does not matter", func(t *testing.T) {
		other := base
		other.Date = time.Date(2026, 8, 15, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("owner changes the hash", func(t *testing.T) {
		other := base
		other.Owner = "leo"
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("amount changes the hash", func(t *testing.T) {
		other := base
		other.Amount = decimal.NewFromFloat(15.01)
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})
}

func TestApplyClassification(t *testing.T) {
	txn := Transaction{
		Owner:       "mia",
		Description: "Figma subscription",
		Reviewed:    true,
	}

	result := ClassificationResult{
		Tag:        "business-software",
		Category:   "software",
		Purpose:    PurposeBusiness,
		WriteOff:   WriteOff{IsWriteOff: true, Reason: "Design tool"},
		Confidence: 0.8,
	}
	txn.ApplyClassification(&result)

	assert.Equal(t, "business-software", txn.Tag)
	assert.Equal(t, "software", txn.Category)
	assert.Equal(t, PurposeBusiness, txn.Purpose)
	assert.True(t, txn.WriteOff.IsWriteOff)
	assert.InDelta(t, 0.8, txn.Confidence, 0.001)
	assert.False(t, txn.Reviewed, "a fresh suggestion needs another look")
}

func TestManualClassification(t *testing.T) {
	t.Run("business correction", func(t *testing.T) {
		result := ManualClassification(PurposeBusiness, "design tool")

		assert.Equal(t, PurposeBusiness, result.Purpose)
		assert.True(t, result.WriteOff.IsWriteOff)
		assert.Equal(t, "design tool", result.WriteOff.Reason)
		assert.False(t, result.NeedsReview())
		assert.Less(t, result.Confidence, 1.0, "a stored result never reads fully certain")
	})

	t.Run("personal correction", func(t *testing.T) {
		result := ManualClassification(PurposePersonal, "")

		assert.Equal(t, PurposePersonal, result.Purpose)
		assert.False(t, result.WriteOff.IsWriteOff)
	})
}

func TestNeedsReview(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       bool
	}{
		{name: "low confidence", confidence: 0.3, want: true},
		{name: "just below threshold", confidence: 0.69, want: true},
		{name: "at threshold", confidence: 0.7, want: false},
		{name: "high confidence", confidence: 0.95, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassificationResult{Confidence: tt.confidence}
			assert.Equal(t, tt.want, result.NeedsReview())
		})
	}
}
