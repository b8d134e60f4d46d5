package llm

import (
	"context"
	"strings"
)

type completerChain struct {
	primary  Completer
	fallback Completer
}

// WithFallback returns a completer that first tries the primary backend and
// falls back to the provided completer when the primary is unavailable or
// produces an empty response.
func WithFallback(primary, fallback Completer) Completer {
	if primary == nil {
		return fallback
	}
	if fallback == nil {
		return primary
	}
	return &completerChain{primary: primary, fallback: fallback}
}

func (c *completerChain) Enabled() bool {
	if c == nil {
		return false
	}
	if c.primary != nil && c.primary.Enabled() {
		return true
	}
	if c.fallback != nil && c.fallback.Enabled() {
		return true
	}
	return false
}

func (c *completerChain) Complete(ctx context.Context, req Request) string {
	if c == nil {
		return ""
	}
	if c.primary != nil && c.primary.Enabled() {
		if text := c.primary.Complete(ctx, req); strings.TrimSpace(text) != "" {
			return text
		}
	}
	if c.fallback != nil && c.fallback.Enabled() {
		return c.fallback.Complete(ctx, req)
	}
	return ""
}
