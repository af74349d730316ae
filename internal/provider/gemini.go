package provider

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, cfg *Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, &AuthError{Provider: string(ProviderGemini), Cause: errors.New("API key is required")}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, &CallError{Provider: string(ProviderGemini), Message: "failed to create client", Cause: err}
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.ResolvedModel(),
		timeout: cfg.ResolvedTimeout(),
	}, nil
}

// Name returns the provider identifier
func (c *GeminiClient) Name() string { return string(ProviderGemini) }

// Analyze submits the review prompt and returns the raw JSON response
func (c *GeminiClient) Analyze(ctx context.Context, req *types.AnalysisRequest) (*Response, error) {
	logger := slog.With("component", "provider", "provider", c.Name(), "model", c.model)

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(SystemPrompt()+"\n\n"+UserPrompt(req)))
	if err != nil {
		logger.Error("generation failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, c.mapError(err)
	}
	logger.Info("generation complete", "duration_ms", time.Since(start).Milliseconds())

	text, err := geminiResponseText(resp)
	if err != nil {
		return nil, err
	}

	return &Response{
		Provider: c.Name(),
		Model:    c.model,
		Body:     CleanJSONBlock(text),
	}, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: c.Name(), Timeout: c.timeout}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return &AuthError{Provider: c.Name(), Cause: err}
		case 429:
			return &RateLimitError{Provider: c.Name(), Cause: err}
		}
	}

	return &CallError{Provider: c.Name(), Message: "failed to generate content", Cause: err}
}

// geminiResponseText extracts text from a Gemini API response
func geminiResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &CallError{Provider: string(ProviderGemini), Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &CallError{Provider: string(ProviderGemini), Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &CallError{Provider: string(ProviderGemini), Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
