package provider

import (
	"context"
	"fmt"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/types"
)

// Response is the raw structured payload returned by a provider. Body is the
// provider's JSON text, untrusted and possibly partially malformed; the
// aggregate package is the only consumer allowed to interpret it.
type Response struct {
	Provider string
	Model    string
	Body     string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Name returns the provider identifier (e.g. "gemini")
	Name() string
	// Analyze submits the request and returns the provider's raw response.
	// The call is bounded by the configured timeout; it fails with a
	// TimeoutError, AuthError, RateLimitError or CallError. It never retries.
	Analyze(ctx context.Context, req *types.AnalysisRequest) (*Response, error)
	// Close releases any resources held by the client
	Close() error
}

// New creates a client for the configured provider
func New(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, cfg)
	case ProviderOpenAI:
		return NewOpenAIClient(cfg)
	case ProviderAnthropic:
		return NewAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
