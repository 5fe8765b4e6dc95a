package relevance

import "strings"

// topicGroup names a cluster of expense vocabulary. Two descriptions that hit
// the same group are likely the same kind of spending even when they share no
// literal words.
type topicGroup struct {
	Name  string
	Words []string
}

// topicGroups is the fixed table of expense topics. Adding a group changes
// scoring behavior without touching control flow.
var topicGroups = []topicGroup{
	{Name: "software", Words: []string{"software", "subscription", "saas", "cloud", "license", "hosting", "domain", "adobe", "github", "figma", "notion"}},
	{Name: "office-supplies", Words: []string{"office", "supplies", "paper", "ink", "printer", "desk", "stationery"}},
	{Name: "travel", Words: []string{"travel", "flight", "hotel", "airline", "airfare", "lodging", "airbnb"}},
	{Name: "meals", Words: []string{"food", "restaurant", "meal", "lunch", "dinner", "coffee", "catering"}},
	{Name: "marketing", Words: []string{"marketing", "ads", "advertising", "promotion", "campaign", "sponsorship"}},
	{Name: "professional-services", Words: []string{"legal", "accounting", "consulting", "lawyer", "accountant", "attorney", "bookkeeping"}},
	{Name: "communications", Words: []string{"phone", "internet", "mobile", "wireless", "broadband", "cellular"}},
	{Name: "transportation", Words: []string{"gas", "fuel", "parking", "mileage", "toll", "rideshare"}},
}

// merchantPatterns is the fixed table of well-known merchant names matched as
// case-insensitive substrings.
var merchantPatterns = []string{
	"amazon", "google", "uber", "lyft", "starbucks", "adobe", "microsoft",
	"apple", "netflix", "zoom", "slack", "dropbox", "staples", "delta",
	"united", "shell", "chevron", "walmart", "costco", "fedex", "usps",
}

// matchTopicGroup returns the index of the first topic group whose vocabulary
// appears in the description, or -1.
func matchTopicGroup(description string) int {
	lower := strings.ToLower(description)
	for i, group := range topicGroups {
		for _, word := range group.Words {
			if strings.Contains(lower, word) {
				return i
			}
		}
	}
	return -1
}

// matchMerchant returns the index of the first known merchant found in the
// description, or -1.
func matchMerchant(description string) int {
	lower := strings.ToLower(description)
	for i, pattern := range merchantPatterns {
		if strings.Contains(lower, pattern) {
			return i
		}
	}
	return -1
}
