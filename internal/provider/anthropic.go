package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
	anthropicMaxTokens      = 2048
)

// AnthropicClient implements Client for the Anthropic Messages API.
// Anthropic has no official Go SDK dependency here; the wire format is small
// enough to speak directly over net/http.
type AnthropicClient struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
	client  *http.Client
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(cfg *Config) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, &AuthError{Provider: string(ProviderAnthropic), Cause: errors.New("API key is required")}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicDefaultBaseURL
	}

	timeout := cfg.ResolvedTimeout()
	return &AnthropicClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   cfg.ResolvedModel(),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// Name returns the provider identifier
func (c *AnthropicClient) Name() string { return string(ProviderAnthropic) }

// Analyze submits the review prompt and returns the raw JSON response
func (c *AnthropicClient) Analyze(ctx context.Context, req *types.AnalysisRequest) (*Response, error) {
	logger := slog.With("component", "provider", "provider", c.Name(), "model", c.model)

	body, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System:    SystemPrompt(),
		Messages: []anthropicMessage{
			{Role: "user", Content: UserPrompt(req)},
		},
	})
	if err != nil {
		return nil, &CallError{Provider: c.Name(), Message: "failed to marshal request", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, &CallError{Provider: c.Name(), Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		logger.Error("request failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Provider: c.Name(), Timeout: c.timeout}
		}
		return nil, &CallError{Provider: c.Name(), Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CallError{Provider: c.Name(), Message: "failed to read response", Cause: err}
	}
	logger.Info("request complete", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{Provider: c.Name(), Cause: fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody)}
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{Provider: c.Name(), Cause: fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody)}
	default:
		return nil, &CallError{Provider: c.Name(), Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, respBody)}
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, &CallError{Provider: c.Name(), Message: "failed to decode response", Cause: err}
	}
	if len(decoded.Content) == 0 {
		return nil, &CallError{Provider: c.Name(), Message: "empty response content"}
	}

	return &Response{
		Provider: c.Name(),
		Model:    c.model,
		Body:     CleanJSONBlock(decoded.Content[0].Text),
	}, nil
}

// Close releases resources held by the client
func (c *AnthropicClient) Close() error { return nil }
