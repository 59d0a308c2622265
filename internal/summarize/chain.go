package summarize

import (
	"github.com/shobhitsyy/VIDEOIQ/internal/config"
	"github.com/shobhitsyy/VIDEOIQ/internal/llm"
)

// NewChain builds the provider chain from the configured API keys.
// Providers without a key are left out, the local extractive fallback is
// always last so summarizing works with no keys at all.
func NewChain(cfg *config.Config) []Provider {
	var providers []Provider

	if cfg.GroqKey != "" {
		providers = append(providers, &ChatProvider{
			Id:        "groq",
			Display:   "Groq Llama3",
			ModelName: cfg.GroqModel,
			MaxTokens: 2000,
			Chat:      llm.NewGroq(cfg.GroqKey, cfg.GroqModel),
		})
	}

	if cfg.GeminiKey != "" {
		providers = append(providers, &ChatProvider{
			Id:        "gemini",
			Display:   "Google Gemini",
			ModelName: cfg.GeminiModel,
			MaxTokens: 2000,
			Chat:      llm.NewGemini(cfg.GeminiKey, cfg.GeminiModel),
		})
	}

	if cfg.OpenAIKey != "" {
		providers = append(providers, &ChatProvider{
			Id:        "openai",
			Display:   "OpenAI GPT-3.5",
			ModelName: cfg.OpenAIModel,
			MaxTokens: 1500,
			CharLimit: 6000,
			Chat:      llm.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel),
		})
	}

	return append(providers, Extractive{})
}
