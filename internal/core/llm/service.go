package llm

import "context"

// Service wraps an LLM provider for dependency injection
type Service struct {
	provider Provider
}

// NewService creates the LLM service from environment config. A missing or
// invalid credential is returned as an error rather than killing the
// process: extraction degrades at call time, the server still starts.
func NewService() (*Service, error) {
	cfg := LoadProviderFromEnv()

	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{provider: provider}, nil
}

// NewServiceWithProvider creates a service with a custom provider (for testing)
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// GenerateResponse generates a completion for the given prompts
func (s *Service) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.provider.GenerateResponse(ctx, systemPrompt, userMessage)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
