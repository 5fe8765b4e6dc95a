package relevance

import (
	"strings"
	"time"

	"github.com/taxxyapp/taxxy/internal/model"
)

// Signal weights. Each signal contributes at most its weight; the summed
// score is capped at maxScore.
const (
	substringWeight     = 1.0
	wordOverlapWeight   = 0.8
	topicGroupWeight    = 0.6
	merchantWeight      = 0.5
	recencyWeight       = 0.2
	purposeChangeWeight = 0.3

	maxScore = 2.0

	// recencyWindow is how long a correction keeps earning a recency bonus.
	recencyWindow = 30 * 24 * time.Hour
)

// Thresholds applied by the retriever.
const (
	scoreThreshold = 0.1
	maxMatches     = 5
	candidateLimit = 50
)

// Confidence adjustment tuning: each matched correction contributes
// overlapPerWord per shared substantial word, capped per correction and in
// total.
const (
	overlapPerWord      = 0.05
	perCorrectionCap    = 0.15
	adjustmentCap       = 0.3
	adjustmentTokenSize = 3
)

// scoreCorrection computes the relevance of one past correction against a
// query description. It is a pure function of its arguments so that scoring
// stays reproducible and directly testable.
func scoreCorrection(query string, correction *model.Correction, now time.Time) float64 {
	score := substringScore(query, correction.Description)
	score += overlapScore(query, correction.Description)
	score += topicGroupScore(query, correction.Description)
	score += merchantScore(query, correction.Description)
	score += recencyScore(correction.Timestamp, now)

	// A correction that flipped business/personal is inherently more
	// informative than one that only reworded the reason.
	if correction.PurposeChanged() {
		score += purposeChangeWeight
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// substringScore awards the full weight when either description wholly
// contains the other, case-insensitively.
func substringScore(query, target string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(target))
	if q == "" || t == "" {
		return 0
	}
	if strings.Contains(q, t) || strings.Contains(t, q) {
		return substringWeight
	}
	return 0
}

// overlapScore awards a fraction of the weight proportional to how much of
// the target's vocabulary the query shares.
func overlapScore(query, target string) float64 {
	targetTokens := tokenize(target)
	if len(targetTokens) == 0 {
		return 0
	}

	querySet := tokenSet(query)
	shared := 0
	for _, token := range targetTokens {
		if _, ok := querySet[token]; ok {
			shared++
		}
	}

	return wordOverlapWeight * float64(shared) / float64(len(targetTokens))
}

// topicGroupScore awards the weight when both descriptions hit the same
// expense topic group.
func topicGroupScore(query, target string) float64 {
	queryGroup := matchTopicGroup(query)
	if queryGroup < 0 {
		return 0
	}
	if matchTopicGroup(target) == queryGroup {
		return topicGroupWeight
	}
	return 0
}

// merchantScore awards the weight when both descriptions name the same known
// merchant. When neither side hits the fixed table, it falls back to
// comparing capitalized tokens, worth 80% of the weight.
func merchantScore(query, target string) float64 {
	queryMerchant := matchMerchant(query)
	targetMerchant := matchMerchant(target)

	if queryMerchant >= 0 && queryMerchant == targetMerchant {
		return merchantWeight
	}
	if queryMerchant >= 0 || targetMerchant >= 0 {
		return 0
	}

	// Bank descriptions usually carry merchant names capitalized; a shared
	// capitalized token longer than 3 characters is a weaker merchant hit.
	for _, qt := range properTokens(query) {
		for _, tt := range properTokens(target) {
			shorter := qt
			if len(tt) < len(qt) {
				shorter = tt
			}
			if len(shorter) <= 3 {
				continue
			}
			ql := strings.ToLower(qt)
			tl := strings.ToLower(tt)
			if strings.Contains(ql, tl) || strings.Contains(tl, ql) {
				return 0.8 * merchantWeight
			}
		}
	}
	return 0
}

// recencyScore decays linearly from the full weight at age zero to nothing at
// the recency window.
func recencyScore(timestamp, now time.Time) float64 {
	age := now.Sub(timestamp)
	if age < 0 {
		age = 0
	}
	if age >= recencyWindow {
		return 0
	}
	remaining := float64(recencyWindow-age) / float64(recencyWindow)
	return remaining * recencyWeight
}

// ComputeConfidenceAdjustment converts matched corrections into a confidence
// boost for the classifier. Each match contributes per shared substantial
// word, capped per correction and in total.
func ComputeConfidenceAdjustment(matches []ScoredCorrection, description string) float64 {
	if len(matches) == 0 {
		return 0
	}

	queryTokens := longTokens(description, adjustmentTokenSize)

	var total float64
	for _, match := range matches {
		shared := 0
		for token := range longTokens(match.Correction.Description, adjustmentTokenSize) {
			if _, ok := queryTokens[token]; ok {
				shared++
			}
		}

		contribution := float64(shared) * overlapPerWord
		if contribution > perCorrectionCap {
			contribution = perCorrectionCap
		}
		total += contribution
	}

	if total > adjustmentCap {
		total = adjustmentCap
	}
	return total
}
