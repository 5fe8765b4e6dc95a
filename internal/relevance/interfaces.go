// Package relevance ranks a user's past classification corrections against a
// new transaction description so the most instructive ones can be shown to
// the language model as few-shot examples.
package relevance

import (
	"context"

	"github.com/taxxyapp/taxxy/internal/model"
)

// CorrectionStore provides read access to the append-only correction log.
type CorrectionStore interface {
	// GetRecentCorrections returns up to limit corrections belonging to
	// owner, newest first.
	GetRecentCorrections(ctx context.Context, owner string, limit int) ([]model.Correction, error)
}

// ScoredCorrection pairs a correction with its relevance score against a
// query description.
type ScoredCorrection struct {
	Correction model.Correction
	Score      float64
}
