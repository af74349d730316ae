// Package config provides configuration loading and validation for the
// reviewer. Values come from a JSON file, the environment, and CLI flags, in
// ascending priority.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/abhinavkumar786/ai-resume-reviewer/internal/aggregate"
	"github.com/abhinavkumar786/ai-resume-reviewer/internal/provider"
)

// Defaults applied after merging
const (
	DefaultPort           = 8080
	DefaultSessionTTLMins = 30
)

// Config represents the reviewer configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Provider selection
	Provider string `json:"provider,omitempty"` // gemini, openai, or anthropic
	Model    string `json:"model,omitempty"`    // Provider model override

	// API keys. Usually supplied via environment, not the file.
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`

	// Server
	Port           int `json:"port,omitempty"`                // HTTP listen port
	SessionTTLMins int `json:"session_ttl_minutes,omitempty"` // Idle session eviction

	// Scoring fallback weights (0 means use the documented defaults)
	ContentWeight float64 `json:"content_weight,omitempty"`
	ATSWeight     float64 `json:"ats_weight,omitempty"`

	// Behavior
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"` // Provider call timeout
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. godotenv loading in
// main makes .env files visible here.
func FromEnv() *Config {
	cfg := &Config{
		Provider:        os.Getenv("REVIEWER_PROVIDER"),
		Model:           os.Getenv("REVIEWER_MODEL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}
	if port, err := strconv.Atoi(os.Getenv("REVIEWER_PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Note: required fields are checked after merging, when the provider client
// is built.
func (c *Config) Validate() error {
	if c.Provider != "" {
		switch provider.Provider(c.Provider) {
		case provider.ProviderGemini, provider.ProviderOpenAI, provider.ProviderAnthropic:
		default:
			return fmt.Errorf("config error: unknown provider %q", c.Provider)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0,65535]")
	}
	if c.SessionTTLMins < 0 {
		return fmt.Errorf("config error: 'session_ttl_minutes' must be non-negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}

	if c.ContentWeight < 0 || c.ATSWeight < 0 {
		return fmt.Errorf("config error: score weights must be non-negative")
	}
	if c.ContentWeight+c.ATSWeight > 0 && c.ContentWeight+c.ATSWeight < 0.01 {
		return fmt.Errorf("config error: score weights sum too close to zero")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to layer file values under environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.AnthropicAPIKey == "" {
		result.AnthropicAPIKey = defaults.AnthropicAPIKey
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionTTLMins == 0 {
		result.SessionTTLMins = defaults.SessionTTLMins
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.ContentWeight == 0 {
		result.ContentWeight = defaults.ContentWeight
	}
	if result.ATSWeight == 0 {
		result.ATSWeight = defaults.ATSWeight
	}

	// Bool fields: cannot distinguish unset from false, so CLI flags win

	return result
}

// ProviderConfig resolves the provider client configuration. The default
// provider is Gemini when unset.
func (c *Config) ProviderConfig() provider.Config {
	name := provider.Provider(c.Provider)
	if c.Provider == "" {
		name = provider.ProviderGemini
	}

	cfg := provider.Config{
		Provider: name,
		Model:    c.Model,
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}

	switch name {
	case provider.ProviderGemini:
		cfg.APIKey = c.GeminiAPIKey
	case provider.ProviderOpenAI:
		cfg.APIKey = c.OpenAIAPIKey
	case provider.ProviderAnthropic:
		cfg.APIKey = c.AnthropicAPIKey
	}

	return cfg
}

// Aggregator builds an aggregator honoring any configured weight overrides
func (c *Config) Aggregator() *aggregate.Aggregator {
	agg := aggregate.New()
	if c.ContentWeight > 0 && c.ATSWeight > 0 {
		agg.ContentWeight = c.ContentWeight
		agg.ATSWeight = c.ATSWeight
	}
	return agg
}
