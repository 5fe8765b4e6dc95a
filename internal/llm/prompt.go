package llm

import (
	"fmt"
	"strings"

	"github.com/taxxyapp/taxxy/internal/model"
	"github.com/taxxyapp/taxxy/internal/relevance"
)

// maxPromptExamples bounds how many retrieved corrections are embedded as
// few-shot examples. More than a few adds tokens without adding signal.
const maxPromptExamples = 3

// systemPrompt pins the model to JSON-only output. The parser still slices
// defensively because models do not reliably comply.
const systemPrompt = "You are a tax classification assistant for self-employed users. " +
	"You MUST respond with ONLY a valid JSON object. Do not include any explanatory text, " +
	"markdown formatting, or commentary before or after the JSON. " +
	"Start your response directly with { and end with }."

// buildPrompt assembles the classification prompt: task statement and JSON
// schema, learned patterns from past corrections, optional tax-profile
// grounding, and the transaction to classify. The profile section is omitted
// entirely when no profile context exists.
func buildPrompt(req model.ClassificationRequest, matches []relevance.ScoredCorrection) string {
	var b strings.Builder

	b.WriteString(`Classify this financial transaction for a self-employed user's tax records.

Respond with a JSON object in exactly this shape:
{
  "tag": "short-label",
  "category": "expense category",
  "confidence": 0.0,
  "purpose": "business" or "personal",
  "writeOff": {"isWriteOff": true or false, "reason": "brief explanation"}
}
`)

	if len(matches) > 0 {
		b.WriteString("\nThe user has corrected similar classifications before. Treat each pattern as a lesson:\n")
		limit := len(matches)
		if limit > maxPromptExamples {
			limit = maxPromptExamples
		}
		for i := 0; i < limit; i++ {
			c := matches[i].Correction
			fmt.Fprintf(&b, "Pattern %d: %q was corrected from %s to %s",
				i+1, c.Description, c.OriginalPurpose, c.CorrectedPurpose)
			if c.CorrectedReason != "" {
				fmt.Fprintf(&b, " (%s)", c.CorrectedReason)
			}
			b.WriteString("\n")
		}
	}

	if req.TaxProfile.HasContext() {
		b.WriteString("\nKnown facts about the user's tax situation:\n")
		p := req.TaxProfile
		if p.BusinessType != "" {
			fmt.Fprintf(&b, "- Business type: %s\n", p.BusinessType)
		}
		if p.HasHomeOffice {
			if p.HomeOfficeSquareFeet > 0 {
				fmt.Fprintf(&b, "- Has a %d sq ft home office\n", p.HomeOfficeSquareFeet)
			} else {
				b.WriteString("- Has a home office\n")
			}
		}
		if p.UsesVehicleForBusiness {
			if p.BusinessMilesPercentage > 0 {
				fmt.Fprintf(&b, "- Uses a vehicle %d%% for business\n", p.BusinessMilesPercentage)
			} else {
				b.WriteString("- Uses a vehicle for business\n")
			}
		}
		if p.FilingStatus != "" {
			fmt.Fprintf(&b, "- Filing status: %s\n", p.FilingStatus)
		}
		if p.State != "" {
			fmt.Fprintf(&b, "- Filing state: %s\n", p.State)
		}
	}

	b.WriteString("\nTransaction to classify:\n")
	fmt.Fprintf(&b, "Description: %q\n", req.Description)
	if req.Amount != "" {
		fmt.Fprintf(&b, "Amount: %s\n", req.Amount)
	}

	return b.String()
}
