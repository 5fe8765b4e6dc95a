package relevance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taxxyapp/taxxy/internal/model"
)

func TestSubstringScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{
			name:   "target contained in query",
			query:  "GitHub Pro subscription renewal",
			target: "github pro",
			want:   substringWeight,
		},
		{
			name:   "query contained in target",
			query:  "zoom",
			target: "Zoom monthly plan",
			want:   substringWeight,
		},
		{
			name:   "no containment",
			query:  "office chair",
			target: "standing desk",
			want:   0,
		},
		{
			name:   "empty query",
			query:  "",
			target: "anything",
			want:   0,
		},
		{
			name:   "whitespace only",
			query:  "   ",
			target: "anything",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, substringScore(tt.query, tt.target), 0.001)
		})
	}
}

func TestOverlapScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{
			name:   "partial overlap",
			query:  "Adobe Creative Cloud subscription",
			target: "Adobe Photoshop subscription",
			// target tokens: adobe, photoshop, subscription; two shared
			want: wordOverlapWeight * 2.0 / 3.0,
		},
		{
			name:   "full overlap",
			query:  "hotel lodging",
			target: "hotel lodging",
			want:   wordOverlapWeight,
		},
		{
			name:   "no overlap",
			query:  "hotel lodging",
			target: "printer paper",
			want:   0,
		},
		{
			name:   "stop words ignored",
			query:  "lunch with the client",
			target: "the and for with",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, overlapScore(tt.query, tt.target), 0.001)
		})
	}
}

func TestTopicGroupScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{
			name:   "same software group without shared words",
			query:  "Adobe Photoshop monthly",
			target: "Figma team plan",
			want:   topicGroupWeight,
		},
		{
			name:   "same travel group",
			query:  "Delta airfare",
			target: "hotel in Austin",
			want:   topicGroupWeight,
		},
		{
			name:   "different groups",
			query:  "printer ink refill",
			target: "restaurant dinner",
			want:   0,
		},
		{
			name:   "query matches no group",
			query:  "miscellaneous charge",
			target: "software license",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, topicGroupScore(tt.query, tt.target), 0.001)
		})
	}
}

func TestMerchantScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{
			name:   "same known merchant",
			query:  "UBER TRIP 4532",
			target: "uber eats order",
			want:   merchantWeight,
		},
		{
			name:   "different known merchants",
			query:  "Lyft ride home",
			target: "Uber to airport",
			want:   0,
		},
		{
			name:   "one side known merchant only",
			query:  "Uber trip",
			target: "corner deli",
			want:   0,
		},
		{
			name:   "shared capitalized token outside the table",
			query:  "Spotify Premium",
			target: "SPOTIFY family plan",
			want:   0.8 * merchantWeight,
		},
		{
			name:   "short capitalized token ignored",
			query:  "IBM invoice",
			target: "IBM services",
			want:   0,
		},
		{
			name:   "no merchant signal",
			query:  "parking meter",
			target: "toll booth",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, merchantScore(tt.query, tt.target), 0.001)
		})
	}
}

func TestRecencyScore(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		timestamp time.Time
		want      float64
	}{
		{
			name:      "brand new correction",
			timestamp: now,
			want:      recencyWeight,
		},
		{
			name:      "half the window old",
			timestamp: now.Add(-15 * 24 * time.Hour),
			want:      recencyWeight / 2,
		},
		{
			name:      "exactly at the window",
			timestamp: now.Add(-30 * 24 * time.Hour),
			want:      0,
		},
		{
			name:      "ancient correction",
			timestamp: now.Add(-365 * 24 * time.Hour),
			want:      0,
		},
		{
			name:      "clock skew into the future",
			timestamp: now.Add(time.Hour),
			want:      recencyWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, recencyScore(tt.timestamp, now), 0.001)
		})
	}
}

func TestScoreCorrectionCapped(t *testing.T) {
	now := time.Now()
	correction := &model.Correction{
		Description:      "Adobe Creative Cloud subscription",
		OriginalPurpose:  model.PurposePersonal,
		CorrectedPurpose: model.PurposeBusiness,
		Timestamp:        now,
	}

	// Identical description plus a purpose flip fires every signal at once;
	// the raw sum exceeds the cap.
	score := scoreCorrection("Adobe Creative Cloud subscription", correction, now)
	assert.InDelta(t, maxScore, score, 0.001)
}

func TestScoreCorrectionPurposeFlip(t *testing.T) {
	now := time.Now()
	old := now.Add(-40 * 24 * time.Hour)

	reworded := &model.Correction{
		Description:      "standing desk",
		OriginalPurpose:  model.PurposeBusiness,
		CorrectedPurpose: model.PurposeBusiness,
		Timestamp:        old,
	}
	flipped := &model.Correction{
		Description:      "standing desk",
		OriginalPurpose:  model.PurposePersonal,
		CorrectedPurpose: model.PurposeBusiness,
		Timestamp:        old,
	}

	base := scoreCorrection("office chair", reworded, now)
	boosted := scoreCorrection("office chair", flipped, now)

	assert.InDelta(t, topicGroupWeight, base, 0.001)
	assert.InDelta(t, base+purposeChangeWeight, boosted, 0.001)
}

func TestComputeConfidenceAdjustment(t *testing.T) {
	match := func(description string) ScoredCorrection {
		return ScoredCorrection{
			Correction: model.Correction{Description: description},
			Score:      1.0,
		}
	}

	tests := []struct {
		name        string
		description string
		matches     []ScoredCorrection
		want        float64
	}{
		{
			name:        "no matches",
			description: "adobe photoshop monthly subscription",
			matches:     nil,
			want:        0,
		},
		{
			name:        "two shared substantial words",
			description: "adobe photoshop monthly subscription",
			matches:     []ScoredCorrection{match("adobe creative subscription")},
			want:        2 * overlapPerWord,
		},
		{
			name:        "per correction cap",
			description: "adobe photoshop monthly subscription",
			matches:     []ScoredCorrection{match("adobe photoshop monthly subscription")},
			want:        perCorrectionCap,
		},
		{
			name:        "total cap across matches",
			description: "adobe photoshop monthly subscription",
			matches: []ScoredCorrection{
				match("adobe photoshop monthly subscription"),
				match("adobe photoshop monthly subscription"),
				match("adobe photoshop monthly subscription"),
			},
			want: adjustmentCap,
		},
		{
			name:        "short words do not count",
			description: "gas for van",
			matches:     []ScoredCorrection{match("gas for van")},
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeConfidenceAdjustment(tt.matches, tt.description)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}
