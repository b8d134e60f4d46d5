package feedback

import "fmt"

// Prompt builders for the three generation calls. Temperatures and token
// budgets differ per call: the customer-facing reply is allowed more warmth
// than the admin-facing summary.

const (
	responseTemperature = 0.7
	responseMaxTokens   = 200

	summaryTemperature = 0.3
	summaryMaxTokens   = 100

	actionsTemperature = 0.6
	actionsMaxTokens   = 150
)

func buildResponsePrompt(rating int, review string) string {
	return fmt.Sprintf(`You are a professional and empathetic customer service representative responding to a review.

Customer Rating: %d/5 stars
Customer Review: %s

Write a brief, warm, and professional response that:
- Acknowledges their specific feedback
- If positive: Thanks them and highlights what you appreciated
- If negative: Apologizes, addresses their concerns, and offers to improve
- Maximum 2-3 sentences (under 150 words)

Response:`, rating, review)
}

func buildSummaryPrompt(review string) string {
	return fmt.Sprintf(`Extract the key points from this customer review in 1-2 concise sentences (max 50 words).
Focus on specific issues, praise, or problems mentioned.

Review: "%s"

Summary (be specific, not generic):`, review)
}

func buildActionsPrompt(rating int, review string) string {
	return fmt.Sprintf(`Based on this customer feedback, suggest 1-2 specific, concrete business actions.

Rating: %d/5 stars
Review: "%s"

For POSITIVE feedback: How to leverage or reinforce this?
For NEGATIVE feedback: What specific issues need addressing?

Provide 2 actionable items (max 60 words):

Actions:`, rating, review)
}
