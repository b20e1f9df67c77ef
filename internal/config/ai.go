package config

import (
	"strings"
	"time"
)

// Supported generation providers
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOllama     = "ollama"
)

// LLMModels defines which model serves each kind of generation
type LLMModels struct {
	// User is for the reply shown to the person who left feedback (needs to be fast)
	User string `json:"user"`

	// Admin is for the internal summary and recommended action
	Admin string `json:"admin"`
}

// AIConfig holds all generation-backend configuration
type AIConfig struct {
	Provider       string    `json:"provider"`
	APIKey         string    `json:"-"` // Never serialize
	BaseURL        string    `json:"baseUrl"`
	Models         LLMModels `json:"models"`
	TimeoutSeconds int       `json:"timeoutSeconds"`
}

// DefaultAIConfig returns the AI configuration read from the environment
func DefaultAIConfig() *AIConfig {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenRouter))
	return &AIConfig{
		Provider: provider,
		APIKey:   strings.TrimSpace(getEnv("LLM_API_KEY", "")),
		BaseURL:  strings.TrimRight(getEnv("LLM_BASE_URL", DefaultBaseURL(provider)), "/"),
		Models: LLMModels{
			User:  getEnv("LLM_USER_MODEL", DefaultModel(provider)),
			Admin: getEnv("LLM_ADMIN_MODEL", DefaultModel(provider)),
		},
		TimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 30),
	}
}

// DefaultBaseURL returns the public endpoint root for a provider
func DefaultBaseURL(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderGemini:
		return "" // the SDK owns the endpoint
	case ProviderOllama:
		return "http://localhost:11434"
	default:
		return "https://openrouter.ai/api/v1"
	}
}

// DefaultModel returns the model used when none is configured
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGemini:
		return "gemini-2.0-flash"
	case ProviderOllama:
		return "gemma:7b"
	default:
		return "google/gemma-7b-it"
	}
}

// RequiresAPIKey reports whether the provider refuses to run without a credential
func (c *AIConfig) RequiresAPIKey() bool {
	return c.Provider != ProviderOllama
}

// IsEnabled returns true if the backend can be called
func (c *AIConfig) IsEnabled() bool {
	return !c.RequiresAPIKey() || c.APIKey != ""
}

// Timeout is the upper bound on a single completion
func (c *AIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *AIConfig) missing() []string {
	var out []string
	switch c.Provider {
	case ProviderOpenRouter, ProviderOpenAI, ProviderGemini, ProviderOllama:
	default:
		out = append(out, "LLM_PROVIDER (unknown provider "+c.Provider+")")
	}
	if c.RequiresAPIKey() && c.APIKey == "" {
		out = append(out, "LLM_API_KEY")
	}
	if c.Models.User == "" {
		out = append(out, "LLM_USER_MODEL")
	}
	if c.Models.Admin == "" {
		out = append(out, "LLM_ADMIN_MODEL")
	}
	return out
}
