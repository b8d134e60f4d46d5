package feedback

// Static fallback texts returned verbatim when a generation call fails or
// produces no usable text. An LLM outage must never surface to the end user
// as an error on this path.

var responseFallbacks = map[int]string{
	5: "Thank you so much for the wonderful 5-star review! We're thrilled you had such a great experience with us. Your positive feedback truly motivates our team!",
	4: "Thank you for your 4-star review! We're glad you enjoyed your experience. We'd love to hear what could make it even better!",
	3: "Thank you for your feedback. We appreciate you taking the time to share. We're always working to improve our service!",
	2: "Thank you for letting us know about your experience. We're sorry it wasn't quite what you expected. We'd like to make it right!",
	1: "We sincerely apologize that your experience fell short of expectations. Your feedback is important, and we'd like the opportunity to improve.",
}

const summaryFallback = "Review provides customer feedback."

func fallbackResponse(rating int) string {
	if text, ok := responseFallbacks[rating]; ok {
		return text
	}
	return responseFallbacks[3]
}

func fallbackActions(rating int) string {
	switch {
	case rating >= 4:
		return "1. Share this feedback with the team to reinforce best practices. 2. Feature this positive review in marketing."
	case rating == 3:
		return "1. Identify specific pain points mentioned. 2. Create improvement plan and track progress."
	default:
		return "1. Contact customer immediately to resolve issues. 2. Implement corrective actions and follow up."
	}
}
