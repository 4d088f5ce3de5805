package gateway

import (
	"context"
	"fmt"

	"consult/internal/config"
)

// NewClient constructs the configured provider client.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch Provider(cfg.LLM.Provider) {
	case ProviderGemini, "":
		gc := DefaultGeminiConfig(cfg.LLM.APIKey)
		gc.Model = cfg.LLM.Model
		gc.BaseURL = cfg.LLM.BaseURL
		gc.Timeout = cfg.RequestTimeout()
		gc.Temperature = cfg.LLM.Temp
		return NewGeminiClient(gc), nil
	case ProviderGenAI:
		return NewGenAIClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temp)
	case ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.LLM.Provider)
	}
}
