package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxxyapp/taxxy/internal/common"
	"github.com/taxxyapp/taxxy/internal/model"
	"github.com/taxxyapp/taxxy/internal/service"
)

func TestSaveTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	t.Run("assigns id", func(t *testing.T) {
		txn := testTransaction("mia", "Figma subscription")
		require.NoError(t, store.SaveTransaction(ctx, txn))
		assert.NotEmpty(t, txn.ID)
	})

	t.Run("rejects duplicate hash", func(t *testing.T) {
		first := testTransaction("mia", "duplicate purchase")
		require.NoError(t, store.SaveTransaction(ctx, first))

		// Same date, amount, description and owner hash identically.
		second := testTransaction("mia", "duplicate purchase")
		err := store.SaveTransaction(ctx, second)
		require.ErrorIs(t, err, common.ErrDuplicateEntry)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		txn := testTransaction("", "Figma subscription")
		require.ErrorIs(t, store.SaveTransaction(ctx, txn), ErrInvalidTxn)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		txn := testTransaction("mia", "no date")
		txn.Date = time.Time{}
		require.ErrorIs(t, store.SaveTransaction(ctx, txn), ErrInvalidTxn)
	})
}

func TestGetTransactionByID(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txn := testTransaction("mia", "Figma subscription")
	txn.Tag = "business-software"
	txn.Category = "software"
	txn.Confidence = 0.8
	txn.WriteOff = model.WriteOff{IsWriteOff: true, Reason: "Design tool"}
	require.NoError(t, store.SaveTransaction(ctx, txn))

	t.Run("round trip", func(t *testing.T) {
		got, err := store.GetTransactionByID(ctx, txn.ID)
		require.NoError(t, err)

		assert.Equal(t, "mia", got.Owner)
		assert.Equal(t, "Figma subscription", got.Description)
		assert.True(t, got.Amount.Equal(txn.Amount))
		assert.Equal(t, "business-software", got.Tag)
		assert.Equal(t, "software", got.Category)
		assert.InDelta(t, 0.8, got.Confidence, 0.001)
		assert.True(t, got.WriteOff.IsWriteOff)
		assert.Equal(t, "Design tool", got.WriteOff.Reason)
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := store.GetTransactionByID(ctx, "no-such-id")
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestGetTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		txn := testTransaction("mia", fmt.Sprintf("purchase %d", i))
		txn.Date = base.AddDate(0, 0, i)
		require.NoError(t, store.SaveTransaction(ctx, txn))
	}
	other := testTransaction("leo", "other purchase")
	require.NoError(t, store.SaveTransaction(ctx, other))

	t.Run("newest first for owner", func(t *testing.T) {
		txns, err := store.GetTransactions(ctx, "mia", service.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, txns, 5)
		assert.Equal(t, "purchase 4", txns[0].Description)
		assert.Equal(t, "purchase 0", txns[4].Description)
	})

	t.Run("date range", func(t *testing.T) {
		start := base.AddDate(0, 0, 1)
		end := base.AddDate(0, 0, 3)
		txns, err := store.GetTransactions(ctx, "mia", service.TransactionFilter{
			StartDate: &start,
			EndDate:   &end,
		})
		require.NoError(t, err)
		assert.Len(t, txns, 3)
	})

	t.Run("limit and offset", func(t *testing.T) {
		txns, err := store.GetTransactions(ctx, "mia", service.TransactionFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, "purchase 3", txns[0].Description)
	})
}

func TestUpdateTransactionClassification(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txn := testTransaction("mia", "Figma subscription")
	txn.Reviewed = true
	require.NoError(t, store.SaveTransaction(ctx, txn))

	result := &model.ClassificationResult{
		Tag:        "business-software",
		Category:   "software",
		Purpose:    model.PurposeBusiness,
		WriteOff:   model.WriteOff{IsWriteOff: true, Reason: "Design tool"},
		Confidence: 0.85,
	}

	t.Run("applies result and clears reviewed", func(t *testing.T) {
		require.NoError(t, store.UpdateTransactionClassification(ctx, txn.ID, result))

		got, err := store.GetTransactionByID(ctx, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, "business-software", got.Tag)
		assert.Equal(t, model.PurposeBusiness, got.Purpose)
		assert.InDelta(t, 0.85, got.Confidence, 0.001)
		assert.False(t, got.Reviewed)
	})

	t.Run("missing transaction", func(t *testing.T) {
		err := store.UpdateTransactionClassification(ctx, "no-such-id", result)
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("rejects out of range confidence", func(t *testing.T) {
		bad := &model.ClassificationResult{
			Purpose:    model.PurposeBusiness,
			Confidence: 1.5,
		}
		err := store.UpdateTransactionClassification(ctx, txn.ID, bad)
		require.ErrorIs(t, err, ErrInvalidResult)
	})

	t.Run("rejects unknown purpose", func(t *testing.T) {
		bad := &model.ClassificationResult{
			Purpose:    model.PurposeUnknown,
			Confidence: 0.5,
		}
		err := store.UpdateTransactionClassification(ctx, txn.ID, bad)
		require.ErrorIs(t, err, ErrInvalidResult)
	})
}
