package eval

import "strings"

// The three prompt variants under comparison. Each has a single {review}
// substitution slot; the review text is capped at 500 characters before
// rendering.

const PromptDirect = `Analyze this review and return ONLY a JSON object with no markdown, no extra text.

Review: {review}

Return exactly this format:
{"predicted_stars": <number 1-5>, "explanation": "<one short sentence>"}`

const PromptStructured = `Analyze this review for sentiment and return ONLY JSON (no markdown, no extra text).

Rating scale:
1=Terrible (major complaints), 2=Poor (mostly negative), 3=Okay (mixed), 4=Good (mostly positive), 5=Excellent (outstanding)

Review: {review}

Return exactly:
{"predicted_stars": <1-5>, "explanation": "<one sentence why>"}`

const PromptChainOfThought = `Analyze this review step by step.

Review: {review}

1. What positive aspects are mentioned? (food, service, value, etc.)
2. What negative aspects are mentioned?
3. Is the reviewer satisfied? Will they return?
4. Rate from 1-5 based on balance.

Return ONLY JSON (no markdown, no extra text):
{"predicted_stars": <1-5>, "explanation": "<one sentence>"}`

const maxReviewLen = 500

// Approach pairs a prompt template with its display label.
type Approach struct {
	Name     string
	Template string
}

// Approaches returns the fixed prompt variants in comparison order.
func Approaches() []Approach {
	return []Approach{
		{Name: "Approach 1: Direct Prompt", Template: PromptDirect},
		{Name: "Approach 2: Structured with Guidelines", Template: PromptStructured},
		{Name: "Approach 3: Chain of Thought", Template: PromptChainOfThought},
	}
}

// RenderPrompt substitutes the truncated review text into a template.
func RenderPrompt(template, review string) string {
	return strings.ReplaceAll(template, "{review}", truncate(review, maxReviewLen))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
