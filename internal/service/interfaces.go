// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/taxxyapp/taxxy/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Correction operations. Corrections are append-only: no update or
	// delete exists anywhere in the interface.
	SaveCorrection(ctx context.Context, correction *model.Correction) error
	GetRecentCorrections(ctx context.Context, owner string, limit int) ([]model.Correction, error)

	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, owner string, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransactionClassification(ctx context.Context, id string, result *model.ClassificationResult) error

	// Tax profile operations
	GetTaxProfile(ctx context.Context, owner string) (*model.TaxProfile, error)
	SaveTaxProfile(ctx context.Context, profile *model.TaxProfile) error

	// Learning statistics derived from the correction log
	GetLearningStats(ctx context.Context, owner string) (*LearningStats, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// LearningStats summarizes how much the classifier has learned from a user's
// correction history.
type LearningStats struct {
	TopCategories            []CategoryCount
	WeeklyCorrections        []int
	TotalCorrections         int
	RecentCorrections        int
	AvgConfidenceImprovement float64
}

// CategoryCount pairs an inferred expense category with a correction count.
type CategoryCount struct {
	Category string
	Count    int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
