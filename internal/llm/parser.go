package llm

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// modelResponse is the untrusted shape decoded from a completion. Confidence
// and isWriteOff are declared as any because models frequently return numbers
// as strings and booleans as either; coercion happens in one place below.
type modelResponse struct {
	Tag        string         `json:"tag"`
	Category   string         `json:"category"`
	Purpose    string         `json:"purpose"`
	Confidence any            `json:"confidence"`
	WriteOff   *modelWriteOff `json:"writeOff"`
}

type modelWriteOff struct {
	IsWriteOff any    `json:"isWriteOff"`
	Reason     string `json:"reason"`
}

// extractJSON slices the content between the first '{' and the last '}'.
// Models wrap JSON in prose and markdown fences often enough that the
// response is never trusted to be bare JSON.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// parseResponse attempts to decode a completion into a modelResponse.
// The boolean result distinguishes a usable parse from a parse failure; a
// failure is an expected outcome, not an error.
func parseResponse(content string) (modelResponse, bool) {
	slice, ok := extractJSON(content)
	if !ok {
		return modelResponse{}, false
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(slice), &resp); err != nil {
		return modelResponse{}, false
	}
	return resp, true
}

// coerceConfidence extracts a finite float from whatever the model put in the
// confidence field. The boolean result is false when no usable number exists.
func coerceConfidence(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// coerceBool converts loosely-typed truth values to a bool, defaulting false.
func coerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	case float64:
		return b != 0
	}
	return false
}
