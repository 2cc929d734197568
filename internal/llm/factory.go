package llm

import (
	"context"
	"fmt"
	"os"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai" // or any OpenAI-compatible endpoint
)

// NewClientFromEnv builds the model client selected by LLM_PROVIDER.
// Gemini is the default.
func NewClientFromEnv(ctx context.Context) (Client, error) {
	switch provider := Provider(os.Getenv("LLM_PROVIDER")); provider {
	case "", ProviderGemini:
		return NewGeminiClient(ctx)
	case ProviderOpenAI:
		return NewLangChainClient(LangChainConfig{
			Model:   os.Getenv("OPENAI_MODEL_ID"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			APIKey:  os.Getenv("OPENAI_API_KEY"),
		})
	default:
		return nil, fmt.Errorf("unknown provider %s", provider)
	}
}
