// Package provider abstracts the external AI vendors that perform the actual
// resume evaluation. Each vendor is one Client variant behind a common
// interface; adding a vendor means adding a variant, not branching on a string
// tag throughout the codebase.
package provider

import "time"

// Provider identifies an LLM vendor
type Provider string

// Supported providers
const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultTimeout bounds a single provider call. The adapter fails with a
// TimeoutError rather than hanging indefinitely.
const DefaultTimeout = 60 * time.Second

// Default models per provider
const (
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-sonnet-4-5-20250929"
)

// Config holds provider selection and call parameters
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	Timeout  time.Duration

	// BaseURL overrides the API endpoint; used by the Anthropic variant and tests.
	BaseURL string
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Timeout:  DefaultTimeout,
	}
}

// ResolvedModel returns the configured model, or the provider default if unset
func (c *Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderAnthropic:
		return defaultAnthropicModel
	default:
		return defaultGeminiModel
	}
}

// ResolvedTimeout returns the configured timeout, or DefaultTimeout if unset
func (c *Config) ResolvedTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
