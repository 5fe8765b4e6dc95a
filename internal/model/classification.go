package model

// WriteOff indicates whether a transaction is claimed as a tax-deductible
// business expense, and why.
type WriteOff struct {
	Reason     string `json:"reason"`
	IsWriteOff bool   `json:"isWriteOff"`
}

// ClassificationRequest is the ephemeral input to the classifier: one
// transaction description plus optional grounding context. It is created per
// transaction, consumed once, and discarded.
type ClassificationRequest struct {
	Description string
	Amount      string // optional, formatted by the caller
	TaxProfile  *TaxProfile
}

// ClassificationResult is the normalized classifier output. Every field is
// populated even on failure; callers can persist it without further checks.
type ClassificationResult struct {
	Tag                 string   `json:"tag"`
	Category            string   `json:"category"`
	Purpose             Purpose  `json:"purpose"`
	WriteOff            WriteOff `json:"writeOff"`
	Confidence          float64  `json:"confidence"`
	LearnedFrom         int      `json:"learnedFrom"`
	CorrectionInfluence float64  `json:"correctionInfluence"`
}

// reviewThreshold is the confidence below which a classification is flagged
// for manual review.
const reviewThreshold = 0.7

// NeedsReview reports whether the result should be flagged for manual review.
func (r *ClassificationResult) NeedsReview() bool {
	return r.Confidence < reviewThreshold
}

// manualConfidence is the confidence recorded for a human correction. It
// matches the classifier's ceiling; a stored result never reads as fully
// certain.
const manualConfidence = 0.95

// ManualClassification builds the result written back onto a transaction
// when the user corrects it by hand.
func ManualClassification(purpose Purpose, reason string) ClassificationResult {
	return ClassificationResult{
		Tag:      "corrected",
		Category: "unassigned",
		Purpose:  purpose,
		WriteOff: WriteOff{
			IsWriteOff: purpose == PurposeBusiness,
			Reason:     reason,
		},
		Confidence: manualConfidence,
	}
}
