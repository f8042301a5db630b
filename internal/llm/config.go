package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider and GEOQUIZ_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a whole Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible gateways
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// DefaultConfig returns a Config with defaults for every provider. No API
// keys are set.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// envOverride assigns the value of key to dst when it is set.
func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ConfigFromEnv builds a Config from GEOQUIZ_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	envOverride(&cfg.Provider, "GEOQUIZ_LLM_PROVIDER")

	envOverride(&cfg.Anthropic.APIKey, "GEOQUIZ_ANTHROPIC_API_KEY")
	envOverride(&cfg.Anthropic.Model, "GEOQUIZ_ANTHROPIC_MODEL")

	envOverride(&cfg.OpenAI.APIKey, "GEOQUIZ_OPENAI_API_KEY")
	envOverride(&cfg.OpenAI.Model, "GEOQUIZ_OPENAI_MODEL")
	envOverride(&cfg.OpenAI.BaseURL, "GEOQUIZ_OPENAI_BASE_URL")

	envOverride(&cfg.Gemini.APIKey, "GEOQUIZ_GEMINI_API_KEY")
	envOverride(&cfg.Gemini.Model, "GEOQUIZ_GEMINI_MODEL")

	envOverride(&cfg.OpenRouter.APIKey, "GEOQUIZ_OPENROUTER_API_KEY")
	envOverride(&cfg.OpenRouter.Model, "GEOQUIZ_OPENROUTER_MODEL")

	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables in order
// Gemini, OpenAI, Anthropic, OpenRouter and returns a Config for the first
// one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}

	return Config{}, false
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "GEOQUIZ_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "GEOQUIZ_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "GEOQUIZ_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "GEOQUIZ_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
