// Package parse extracts a star-rating prediction from free-form LLM output.
//
// Model responses are adversarial in structure: fenced markdown, leading
// prose, malformed JSON. Extraction escalates through three ordered attempts,
// strict to loose, and every attempt keeps the same hard gate: a predicted
// rating outside [1,5] is a failure, never clamped.
package parse

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Prediction is a validated rating extracted from a model response.
type Prediction struct {
	PredictedStars int    `json:"predicted_stars"`
	Explanation    string `json:"explanation"`
}

const (
	minStars           = 1
	maxStars           = 5
	maxExplanationLen  = 100
	defaultExplanation = "No explanation"
	rescuedExplanation = "Extracted from response"
)

var (
	// Deliberately excludes nested braces: an object embedding another
	// object or array falls through to the regex rescue below.
	objectPattern      = regexp.MustCompile(`(?s)\{[^{}]*"predicted_stars"[^}]*\}`)
	starsPattern       = regexp.MustCompile(`"predicted_stars"\s*:\s*([1-5])`)
	explanationPattern = regexp.MustCompile(`"explanation"\s*:\s*"([^"]*)"`)
)

var attempts = []func(string) (Prediction, bool){
	extractStrict,
	extractBracesScan,
	extractRegexRescue,
}

// Extract runs the staged extraction over a raw response. The boolean result
// is false when no attempt produced a valid prediction; Extract never panics.
func Extract(response string) (Prediction, bool) {
	if response == "" {
		return Prediction{}, false
	}
	for _, attempt := range attempts {
		if pred, ok := attempt(response); ok {
			return pred, true
		}
	}
	return Prediction{}, false
}

// extractStrict strips markdown fences and requires the remainder to be a
// fully well-formed JSON object.
func extractStrict(response string) (Prediction, bool) {
	clean := strings.ReplaceAll(response, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var data map[string]any
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		return Prediction{}, false
	}
	stars, ok := coerceStars(data["predicted_stars"])
	if !ok {
		return Prediction{}, false
	}
	explanation := defaultExplanation
	if v, present := data["explanation"]; present && v != nil {
		explanation = stringify(v)
	}
	return Prediction{PredictedStars: stars, Explanation: truncate(explanation, maxExplanationLen)}, true
}

// extractBracesScan locates the first flat JSON object mentioning
// predicted_stars inside the raw text, normalizes whitespace, and parses it.
func extractBracesScan(response string) (Prediction, bool) {
	match := objectPattern.FindString(response)
	if match == "" {
		return Prediction{}, false
	}
	jsonStr := strings.ReplaceAll(match, "\n", " ")
	jsonStr = strings.ReplaceAll(jsonStr, "  ", " ")

	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return Prediction{}, false
	}
	stars, ok := coerceStars(data["predicted_stars"])
	if !ok {
		return Prediction{}, false
	}
	explanation := ""
	if v, present := data["explanation"]; present && v != nil {
		explanation = stringify(v)
	}
	return Prediction{PredictedStars: stars, Explanation: truncate(explanation, maxExplanationLen)}, true
}

// extractRegexRescue pulls a bare rating digit out of the text without any
// JSON parse at all. The digit class is restricted to 1-5 so an out-of-range
// rating can never be rescued.
func extractRegexRescue(response string) (Prediction, bool) {
	starMatch := starsPattern.FindStringSubmatch(response)
	if starMatch == nil {
		return Prediction{}, false
	}
	stars, err := strconv.Atoi(starMatch[1])
	if err != nil {
		return Prediction{}, false
	}
	explanation := rescuedExplanation
	if expMatch := explanationPattern.FindStringSubmatch(response); expMatch != nil {
		explanation = expMatch[1]
	}
	return Prediction{PredictedStars: stars, Explanation: truncate(explanation, maxExplanationLen)}, true
}

// coerceStars converts a decoded JSON value to an integer rating, accepting
// numbers (truncated toward zero) and numeric strings. Anything outside
// [1,5] fails.
func coerceStars(value any) (int, bool) {
	var stars int
	switch v := value.(type) {
	case float64:
		stars = int(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		stars = int(f)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		stars = parsed
	default:
		return 0, false
	}
	if stars < minStars || stars > maxStars {
		return 0, false
	}
	return stars, true
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
