package feedback

import (
	"context"
	"strings"
	"testing"

	"review-insight/backend/internal/llm"
)

func TestResponseFallbackTableCoversAllRatings(t *testing.T) {
	seen := make(map[string]int)
	for rating := 1; rating <= 5; rating++ {
		text := fallbackResponse(rating)
		if strings.TrimSpace(text) == "" {
			t.Fatalf("empty fallback for rating %d", rating)
		}
		if prev, dup := seen[text]; dup {
			t.Fatalf("ratings %d and %d share the same fallback text", prev, rating)
		}
		seen[text] = rating
	}
	if fallbackResponse(9) != fallbackResponse(3) {
		t.Fatal("out-of-range rating should use the neutral fallback")
	}
}

func TestGenerateUsesFallbacksWhenAllCallsFail(t *testing.T) {
	down := llm.CompleterFunc(func(_ context.Context, _ llm.Request) string { return "" })
	gen := NewGenerator(down)

	for rating := 1; rating <= 5; rating++ {
		content := gen.Generate(context.Background(), rating, "the soup was cold")
		if content.Response != fallbackResponse(rating) {
			t.Fatalf("rating %d: expected response fallback, got %q", rating, content.Response)
		}
		if content.Summary != summaryFallback {
			t.Fatalf("rating %d: expected summary fallback, got %q", rating, content.Summary)
		}
		if content.Actions != fallbackActions(rating) {
			t.Fatalf("rating %d: expected actions fallback, got %q", rating, content.Actions)
		}
	}
}

// One failing call must not affect its siblings.
func TestGenerateIsolatesSingleCallFailure(t *testing.T) {
	client := llm.CompleterFunc(func(_ context.Context, req llm.Request) string {
		if strings.Contains(req.Prompt, "Extract the key points") {
			return ""
		}
		if strings.Contains(req.Prompt, "business actions") {
			return "1. Retrain kitchen staff. 2. Audit plating temperature."
		}
		return "We're sorry about the cold soup and will do better."
	})
	gen := NewGenerator(client)

	content := gen.Generate(context.Background(), 2, "the soup was cold")
	if content.Response != "We're sorry about the cold soup and will do better." {
		t.Fatalf("unexpected response: %q", content.Response)
	}
	if content.Actions != "1. Retrain kitchen staff. 2. Audit plating temperature." {
		t.Fatalf("unexpected actions: %q", content.Actions)
	}
	if content.Summary != summaryFallback {
		t.Fatalf("expected summary fallback, got %q", content.Summary)
	}
}

func TestGenerateWithDisabledClient(t *testing.T) {
	gen := NewGenerator(nil)
	content := gen.Generate(context.Background(), 4, "great service")
	if content.Response != fallbackResponse(4) || content.Summary != summaryFallback || content.Actions != fallbackActions(4) {
		t.Fatalf("disabled client should fall back everywhere, got %+v", content)
	}
}

func TestPromptBuildersEmbedInputs(t *testing.T) {
	review := "the pasta was undercooked"
	if !strings.Contains(buildResponsePrompt(2, review), review) {
		t.Fatal("response prompt missing review text")
	}
	if !strings.Contains(buildResponsePrompt(2, review), "2/5 stars") {
		t.Fatal("response prompt missing rating")
	}
	if !strings.Contains(buildSummaryPrompt(review), review) {
		t.Fatal("summary prompt missing review text")
	}
	if !strings.Contains(buildActionsPrompt(5, review), "5/5 stars") {
		t.Fatal("actions prompt missing rating")
	}
}
