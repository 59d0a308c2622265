package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// GroqBaseURL is Groq's OpenAI compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// Chat completes prompts against an OpenAI compatible service.
type Chat struct {
	client *openai.Client
	model  string
}

func NewOpenAI(key, model string) *Chat {
	return NewCompatible(key, "", model)
}

func NewGroq(key, model string) *Chat {
	return NewCompatible(key, GroqBaseURL, model)
}

// NewCompatible talks to any OpenAI compatible endpoint, an empty baseURL
// means OpenAI itself.
func NewCompatible(key, baseURL, model string) *Chat {
	config := openai.DefaultConfig(key)
	config.HTTPClient = DefaultHTTP
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Chat{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends one user prompt and returns the model's reply.
func (c *Chat) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	res, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", ErrNoReply
	}

	return res.Choices[0].Message.Content, nil
}
