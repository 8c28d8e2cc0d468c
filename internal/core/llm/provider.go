package llm

import (
	"context"
	"fmt"
	"os"
)

// Provider interface for text-generation backends
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}

// ProviderType for the factory
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderGroq   ProviderType = "groq"
)

// ProviderConfig for creating a provider
type ProviderConfig struct {
	Type ProviderType

	// API keys
	GeminiKey string
	OpenAIKey string
	GroqKey   string

	// Generation settings. Structured extraction wants low-variance output,
	// so the env loader defaults lean deterministic.
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// NewProvider creates the configured text-generation provider
func NewProvider(cfg *ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		return NewGeminiProvider(cfg.GeminiKey, cfg.Model, cfg.Temperature, cfg.TopP, cfg.MaxTokens), nil

	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Temperature, cfg.TopP, cfg.MaxTokens), nil

	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewGroqProvider(cfg.GroqKey, cfg.Model, cfg.Temperature, cfg.TopP, cfg.MaxTokens), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.Type)
	}
}

// LoadProviderFromEnv loads config from environment variables
func LoadProviderFromEnv() *ProviderConfig {
	providerType := os.Getenv("LLM_PROVIDER")
	if providerType == "" {
		providerType = "gemini" // default
	}

	cfg := &ProviderConfig{
		Type:      ProviderType(providerType),
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		GroqKey:   os.Getenv("GROQ_API_KEY"),
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.Model = model
	} else {
		switch cfg.Type {
		case ProviderGemini:
			cfg.Model = "gemini-2.5-flash"
		case ProviderOpenAI:
			cfg.Model = "gpt-4o-mini"
		case ProviderGroq:
			cfg.Model = "llama-3.1-8b-instant"
		}
	}

	// Low temperature and top_p keep the JSON output stable across runs
	cfg.Temperature = 0.1
	cfg.TopP = 0.1
	cfg.MaxTokens = 1024

	return cfg
}
