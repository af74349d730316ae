package provider

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

const openaiMaxTokens = 2048

// OpenAIClient implements Client for OpenAI chat completions
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg *Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, &AuthError{Provider: string(ProviderOpenAI), Cause: errors.New("API key is required")}
	}

	return &OpenAIClient{
		client:  openai.NewClient(cfg.APIKey),
		model:   cfg.ResolvedModel(),
		timeout: cfg.ResolvedTimeout(),
	}, nil
}

// Name returns the provider identifier
func (c *OpenAIClient) Name() string { return string(ProviderOpenAI) }

// Analyze submits the review prompt and returns the raw JSON response
func (c *OpenAIClient) Analyze(ctx context.Context, req *types.AnalysisRequest) (*Response, error) {
	logger := slog.With("component", "provider", "provider", c.Name(), "model", c.model)

	chatReq := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: openaiMaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(req)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		logger.Error("completion failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, c.mapError(err)
	}
	logger.Info("completion complete", "duration_ms", time.Since(start).Milliseconds())

	if len(resp.Choices) == 0 {
		return nil, &CallError{Provider: c.Name(), Message: "no choices in response"}
	}

	return &Response{
		Provider: c.Name(),
		Model:    c.model,
		Body:     CleanJSONBlock(resp.Choices[0].Message.Content),
	}, nil
}

// Close releases resources held by the client
func (c *OpenAIClient) Close() error { return nil }

func (c *OpenAIClient) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: c.Name(), Timeout: c.timeout}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Provider: c.Name(), Cause: err}
		case http.StatusTooManyRequests:
			return &RateLimitError{Provider: c.Name(), Cause: err}
		}
	}

	return &CallError{Provider: c.Name(), Message: "chat completion failed", Cause: err}
}
