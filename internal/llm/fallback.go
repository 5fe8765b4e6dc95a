package llm

import (
	"strings"

	"github.com/taxxyapp/taxxy/internal/model"
)

// fallbackReason is stored on write-offs synthesized without model output.
const fallbackReason = "Classification uncertain - manual review needed"

// businessIndicators are description words that suggest a business purpose.
// The list is deliberately conservative: when none match, the inference
// defaults to personal, the classification with lower audit risk.
var businessIndicators = []string{
	"software", "subscription", "office", "client", "meeting",
	"professional", "business", "work", "conference", "training",
}

// tagIndicators is the subset of business words used to derive a tag.
var tagIndicators = []string{
	"software", "office", "meeting", "client", "business", "professional",
}

// categoryRules maps description keywords to expense categories. First match
// wins; order matters because descriptions can hit multiple rules.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{category: "software", keywords: []string{"software", "subscription"}},
	{category: "office-supplies", keywords: []string{"office", "supplies"}},
	{category: "travel", keywords: []string{"travel", "flight"}},
	{category: "meals", keywords: []string{"food", "restaurant", "meal"}},
	{category: "transportation", keywords: []string{"gas", "fuel"}},
}

// extractTag derives a short label from the description alone.
func extractTag(description string) string {
	lower := strings.ToLower(description)
	for _, indicator := range tagIndicators {
		if strings.Contains(lower, indicator) {
			return "business-" + indicator
		}
	}

	for _, token := range strings.Fields(lower) {
		if len(token) > 3 {
			return token
		}
	}

	return "transaction"
}

// guessCategory maps the description onto a fixed expense category.
func guessCategory(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return "unassigned"
}

// inferPurpose guesses business versus personal from description keywords.
func inferPurpose(description string) model.Purpose {
	lower := strings.ToLower(description)
	for _, indicator := range businessIndicators {
		if strings.Contains(lower, indicator) {
			return model.PurposeBusiness
		}
	}
	return model.PurposePersonal
}

// fallbackResponse synthesizes a low-confidence response from the keyword
// heuristics when the model's output cannot be parsed.
func fallbackResponse(description string) modelResponse {
	return modelResponse{
		Tag:        extractTag(description),
		Category:   guessCategory(description),
		Purpose:    string(inferPurpose(description)),
		Confidence: parseFailureConfidence,
		WriteOff: &modelWriteOff{
			IsWriteOff: false,
			Reason:     fallbackReason,
		},
	}
}
