// Package feedback produces the AI-generated content attached to a submitted
// review: a customer-facing reply, an admin summary, and recommended actions.
package feedback

import (
	"context"
	"strings"
	"sync"

	"review-insight/backend/internal/llm"
)

// Content holds the three generated texts for one review.
type Content struct {
	Response string
	Summary  string
	Actions  string
}

// Generator fans out the three generation calls for each review.
type Generator struct {
	client llm.Completer
}

// NewGenerator wraps a completion client.
func NewGenerator(client llm.Completer) *Generator {
	return &Generator{client: client}
}

// Generate issues the three calls concurrently and waits for all of them.
// Each call owns its own fallback: one failing call never blocks or degrades
// the others, and there are no retries.
func (g *Generator) Generate(ctx context.Context, rating int, review string) Content {
	var content Content
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		content.Response = g.respond(ctx, rating, review)
	}()
	go func() {
		defer wg.Done()
		content.Summary = g.summarize(ctx, review)
	}()
	go func() {
		defer wg.Done()
		content.Actions = g.recommend(ctx, rating, review)
	}()

	wg.Wait()
	return content
}

func (g *Generator) respond(ctx context.Context, rating int, review string) string {
	text := g.complete(ctx, llm.Request{
		Prompt:      buildResponsePrompt(rating, review),
		Temperature: responseTemperature,
		MaxTokens:   responseMaxTokens,
	})
	if text == "" {
		return fallbackResponse(rating)
	}
	return text
}

func (g *Generator) summarize(ctx context.Context, review string) string {
	text := g.complete(ctx, llm.Request{
		Prompt:      buildSummaryPrompt(review),
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if text == "" {
		return summaryFallback
	}
	return text
}

func (g *Generator) recommend(ctx context.Context, rating int, review string) string {
	text := g.complete(ctx, llm.Request{
		Prompt:      buildActionsPrompt(rating, review),
		Temperature: actionsTemperature,
		MaxTokens:   actionsMaxTokens,
	})
	if text == "" {
		return fallbackActions(rating)
	}
	return text
}

func (g *Generator) complete(ctx context.Context, req llm.Request) string {
	if g == nil || g.client == nil || !g.client.Enabled() {
		return ""
	}
	return strings.TrimSpace(g.client.Complete(ctx, req))
}
