package llm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxxyapp/taxxy/internal/model"
	"github.com/taxxyapp/taxxy/internal/relevance"
)

func TestBuildPromptBasics(t *testing.T) {
	req := model.ClassificationRequest{
		Description: "Figma subscription",
		Amount:      "$15.00",
	}

	prompt := buildPrompt(req, nil)

	assert.Contains(t, prompt, `"Figma subscription"`)
	assert.Contains(t, prompt, "Amount: $15.00")
	assert.Contains(t, prompt, `"writeOff"`)
	assert.NotContains(t, prompt, "tax situation",
		"profile section must be absent without a profile")
	assert.NotContains(t, prompt, "Pattern 1",
		"no correction patterns without matches")
}

func TestBuildPromptOmitsEmptyAmount(t *testing.T) {
	prompt := buildPrompt(model.ClassificationRequest{Description: "coffee"}, nil)
	assert.NotContains(t, prompt, "Amount:")
}

func TestBuildPromptCorrectionPatterns(t *testing.T) {
	var matches []relevance.ScoredCorrection
	for i := 0; i < maxPromptExamples+1; i++ {
		matches = append(matches, relevance.ScoredCorrection{
			Correction: model.Correction{
				Description:      fmt.Sprintf("Figma invoice %d", i),
				OriginalPurpose:  model.PurposePersonal,
				CorrectedPurpose: model.PurposeBusiness,
				CorrectedReason:  "design work",
			},
			Score: 1.5,
		})
	}

	prompt := buildPrompt(model.ClassificationRequest{Description: "Figma subscription"}, matches)

	assert.Contains(t, prompt, "Pattern 1:")
	assert.Contains(t, prompt, fmt.Sprintf("Pattern %d:", maxPromptExamples))
	assert.NotContains(t, prompt, fmt.Sprintf("Pattern %d:", maxPromptExamples+1),
		"patterns beyond the example cap must be dropped")
	assert.Contains(t, prompt, "corrected from personal to business")
	assert.Contains(t, prompt, "(design work)")
}

func TestBuildPromptTaxProfile(t *testing.T) {
	req := model.ClassificationRequest{
		Description: "gas station",
		TaxProfile: &model.TaxProfile{
			Owner:                   "mia",
			BusinessType:            "freelance designer",
			HasHomeOffice:           true,
			HomeOfficeSquareFeet:    120,
			UsesVehicleForBusiness:  true,
			BusinessMilesPercentage: 40,
			FilingStatus:            "single",
			State:                   "CA",
		},
	}

	prompt := buildPrompt(req, nil)

	assert.Contains(t, prompt, "tax situation")
	assert.Contains(t, prompt, "freelance designer")
	assert.Contains(t, prompt, "120 sq ft home office")
	assert.Contains(t, prompt, "vehicle 40% for business")
	assert.Contains(t, prompt, "Filing status: single")
	assert.Contains(t, prompt, "Filing state: CA")
}

func TestBuildPromptEmptyProfileOmitted(t *testing.T) {
	req := model.ClassificationRequest{
		Description: "gas station",
		TaxProfile:  &model.TaxProfile{Owner: "mia"},
	}

	prompt := buildPrompt(req, nil)
	assert.NotContains(t, prompt, "tax situation",
		"a profile with no grounding facts reads as absent")
}

func TestSystemPromptDemandsJSON(t *testing.T) {
	assert.True(t, strings.Contains(systemPrompt, "JSON"))
}
