package relevance

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taxxyapp/taxxy/internal/model"
)

// Retriever finds the past corrections most relevant to a new transaction
// description. Retrieval never fails: storage errors and anonymous callers
// both degrade to an empty result so classification can proceed without
// examples.
type Retriever struct {
	store  CorrectionStore
	logger *slog.Logger
	now    func() time.Time
}

// NewRetriever creates a retriever backed by the given correction store.
func NewRetriever(store CorrectionStore, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// FindRelevantCorrections scores the owner's recent corrections against the
// description and returns the top matches, best first. Candidates arrive
// newest first and the sort is stable, so score ties break toward recency.
func (r *Retriever) FindRelevantCorrections(ctx context.Context, description, owner string) []ScoredCorrection {
	if owner == "" {
		r.logger.Debug("no owner resolved, skipping correction retrieval")
		return nil
	}

	// A blank description carries no signal to score against; the recency
	// and purpose-flip bonuses alone must never surface a match.
	if strings.TrimSpace(description) == "" {
		return nil
	}

	candidates, err := r.store.GetRecentCorrections(ctx, owner, candidateLimit)
	if err != nil {
		r.logger.Warn("failed to fetch corrections, classifying without examples",
			"error", err,
			"owner", owner)
		return nil
	}

	now := r.now()
	matches := make([]ScoredCorrection, 0, len(candidates))
	for i := range candidates {
		// A correction with no owner must never surface; treat it as
		// corrupt rather than shareable.
		if candidates[i].Owner != owner {
			continue
		}

		score := scoreCorrection(description, &candidates[i], now)
		if score <= scoreThreshold {
			continue
		}
		matches = append(matches, ScoredCorrection{
			Correction: candidates[i],
			Score:      score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	if len(matches) > 0 {
		r.logger.Debug("retrieved relevant corrections",
			"owner", owner,
			"candidates", len(candidates),
			"matches", len(matches),
			"top_score", matches[0].Score)
	}

	return matches
}

// Score exposes the pairwise relevance score for explanation surfaces that
// want to show why a correction was chosen.
func Score(description string, correction *model.Correction, now time.Time) float64 {
	return scoreCorrection(description, correction, now)
}
