package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ResolvedModel(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"Explicit model wins", Config{Provider: ProviderGemini, Model: "gemini-2.5-pro"}, "gemini-2.5-pro"},
		{"Gemini default", Config{Provider: ProviderGemini}, defaultGeminiModel},
		{"OpenAI default", Config{Provider: ProviderOpenAI}, defaultOpenAIModel},
		{"Anthropic default", Config{Provider: ProviderAnthropic}, defaultAnthropicModel},
		{"Unset provider falls back to Gemini", Config{}, defaultGeminiModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolvedModel())
		})
	}
}

func TestConfig_ResolvedTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, (&Config{}).ResolvedTimeout())
	assert.Equal(t, 5*time.Second, (&Config{Timeout: 5 * time.Second}).ResolvedTimeout())
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &Config{Provider: "cohere", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestNew_MissingAPIKey(t *testing.T) {
	for _, p := range []Provider{ProviderOpenAI, ProviderAnthropic} {
		t.Run(string(p), func(t *testing.T) {
			_, err := New(context.Background(), &Config{Provider: p})
			require.Error(t, err)

			var authErr *AuthError
			assert.ErrorAs(t, err, &authErr)
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(&TimeoutError{Provider: "gemini", Timeout: time.Second}))
	assert.True(t, Retryable(&RateLimitError{Provider: "openai"}))
	assert.False(t, Retryable(&AuthError{Provider: "openai"}))
	assert.False(t, Retryable(&CallError{Provider: "gemini", Message: "boom"}))
	assert.False(t, Retryable(nil))
}
