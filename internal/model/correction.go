// Package model defines the core domain models used throughout the application.
package model

import "time"

// Purpose is the business/personal classification axis for a transaction.
type Purpose string

// Purpose constants.
const (
	PurposeBusiness Purpose = "business"
	PurposePersonal Purpose = "personal"
	PurposeUnknown  Purpose = "unknown"
)

// IsValid reports whether p is one of the known purpose values.
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeBusiness, PurposePersonal, PurposeUnknown:
		return true
	}
	return false
}

// Correction records a user overriding a prior AI classification.
// Corrections are immutable once written; a later re-correction creates a
// new record rather than mutating the old one.
type Correction struct {
	Timestamp        time.Time
	ID               string
	Owner            string
	Description      string // description of the transaction that was corrected
	OriginalPurpose  Purpose
	CorrectedPurpose Purpose
	OriginalReason   string
	CorrectedReason  string
}

// PurposeChanged reports whether the correction flipped the business/personal
// classification rather than only rewording the write-off reason.
func (c *Correction) PurposeChanged() bool {
	return c.OriginalPurpose != c.CorrectedPurpose
}
