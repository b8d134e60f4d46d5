package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Backend selects which hosted completion API the client talks to.
type Backend string

const (
	BackendOpenRouter Backend = "openrouter"
	BackendGemini     Backend = "gemini"
)

// Config holds completion backend configuration parameters.
type Config struct {
	APIKey      string
	Model       string
	Backend     Backend
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client implements the Completer interface against a hosted chat backend.
// Transport failures and non-200 responses are logged and surface as an empty
// string so that callers degrade instead of erroring.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	backend     Backend
	baseURL     string
	temperature float64
	maxTokens   int
}

var ErrDisabled = errors.New("llm client disabled")

// NewClient constructs a Client if the supplied configuration is valid.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrDisabled
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendOpenRouter
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	switch cfg.Backend {
	case BackendOpenRouter:
		if cfg.Model == "" {
			cfg.Model = "mistralai/mistral-7b-instruct:free"
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://openrouter.ai/api/v1"
		}
	case BackendGemini:
		if cfg.Model == "" {
			cfg.Model = "gemini-1.5-flash"
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 200
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		backend:     cfg.Backend,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Enabled reports whether the client can make outbound calls.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Complete sends one prompt and returns the raw response text. Any failure on
// the way (request build, transport, non-200 status, empty envelope) returns
// an empty string after logging.
func (c *Client) Complete(ctx context.Context, req Request) string {
	if !c.Enabled() {
		return ""
	}
	if req.Temperature <= 0 {
		req.Temperature = c.temperature
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = c.maxTokens
	}
	var (
		text string
		err  error
	)
	switch c.backend {
	case BackendGemini:
		text, err = c.completeGemini(ctx, req)
	default:
		text, err = c.completeOpenRouter(ctx, req)
	}
	if err != nil {
		logrus.WithError(err).WithField("backend", c.backend).Warn("llm call failed")
		return ""
	}
	return strings.TrimSpace(text)
}

func (c *Client) completeOpenRouter(ctx context.Context, req Request) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("openrouter empty response")
	}
	return decoded.Choices[0].Message.Content, nil
}

func (c *Client) completeGemini(ctx context.Context, req Request) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": req.Prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     req.Temperature,
			"maxOutputTokens": req.MaxTokens,
			"topP":            0.9,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini empty response")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
