package llm

import "context"

// Request carries one prompt and its generation parameters.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer issues a single-shot completion. Implementations absorb transport
// failures: a failed call returns an empty string, never an error.
type Completer interface {
	Enabled() bool
	Complete(ctx context.Context, req Request) string
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) string

func (f CompleterFunc) Enabled() bool { return f != nil }

func (f CompleterFunc) Complete(ctx context.Context, req Request) string {
	if f == nil {
		return ""
	}
	return f(ctx, req)
}
