package relevance

import (
	"strings"
	"unicode"
)

// stopWords are common filler words excluded from overlap scoring. Tokens of
// two characters or fewer are dropped separately, so only longer words need
// to appear here.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "that": {},
	"this": {}, "was": {}, "are": {}, "has": {}, "had": {}, "were": {},
	"been": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"your": {}, "their": {}, "into": {}, "onto": {}, "via": {}, "per": {},
}

// tokenize splits s on whitespace and punctuation, lowercases each token,
// and drops stop words and tokens of two characters or fewer.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.ToLower(f)
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// tokenSet builds a membership set from tokenize output.
func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range tokenize(s) {
		set[token] = struct{}{}
	}
	return set
}

// longTokens returns lowercased tokens strictly longer than the given length,
// stop words excluded. Used by the confidence adjustment, which only counts
// substantial words.
func longTokens(s string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range tokenize(s) {
		if len(token) > minLen {
			set[token] = struct{}{}
		}
	}
	return set
}

// properTokens extracts capitalized or all-caps tokens from the original
// (uncased) string. These usually carry merchant names in bank descriptions.
func properTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var tokens []string
	for _, f := range fields {
		runes := []rune(f)
		if len(runes) == 0 {
			continue
		}
		if unicode.IsUpper(runes[0]) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
