package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOpenRouterServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"content": content}},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "quota exceeded"},
		})
	}))
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if _, err := NewClient(Config{APIKey: "k", Backend: "mystery"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestCompleteOpenRouter(t *testing.T) {
	server := newOpenRouterServer(t, http.StatusOK, `{"predicted_stars": 4}`)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	text := client.Complete(context.Background(), Request{Prompt: "rate this"})
	if text != `{"predicted_stars": 4}` {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestCompleteAbsorbsFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := newOpenRouterServer(t, http.StatusTooManyRequests, "")
		defer server.Close()

		client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		if text := client.Complete(context.Background(), Request{Prompt: "rate this"}); text != "" {
			t.Fatalf("expected empty text, got %q", text)
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		if text := client.Complete(context.Background(), Request{Prompt: "rate this"}); text != "" {
			t.Fatalf("expected empty text, got %q", text)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer server.Close()

		client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
		if err != nil {
			t.Fatalf("new client: %v", err)
		}
		if text := client.Complete(context.Background(), Request{Prompt: "rate this"}); text != "" {
			t.Fatalf("expected empty text, got %q", text)
		}
	})
}

func TestCompleteGemini(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected key query parameter, got %q", r.URL.RawQuery)
		}
		var payload struct {
			GenerationConfig struct {
				Temperature float64 `json:"temperature"`
			} `json:"generationConfig"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.GenerationConfig.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", payload.GenerationConfig.Temperature)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": " summary text "}}}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", Backend: BackendGemini, BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	text := client.Complete(context.Background(), Request{Prompt: "summarize", Temperature: 0.7})
	if text != "summary text" {
		t.Fatalf("expected trimmed text, got %q", text)
	}
}

func TestWithFallback(t *testing.T) {
	empty := CompleterFunc(func(context.Context, Request) string { return "" })
	answer := CompleterFunc(func(context.Context, Request) string { return "from fallback" })

	chain := WithFallback(empty, answer)
	if !chain.Enabled() {
		t.Fatal("chain with enabled members should be enabled")
	}
	if text := chain.Complete(context.Background(), Request{Prompt: "x"}); text != "from fallback" {
		t.Fatalf("expected fallback answer, got %q", text)
	}

	primary := CompleterFunc(func(context.Context, Request) string { return "from primary" })
	chain = WithFallback(primary, answer)
	if text := chain.Complete(context.Background(), Request{Prompt: "x"}); text != "from primary" {
		t.Fatalf("expected primary answer, got %q", text)
	}

	if WithFallback(nil, answer).Complete(context.Background(), Request{}) != "from fallback" {
		t.Fatal("nil primary should collapse to fallback")
	}
}
