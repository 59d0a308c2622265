// Package qna answers free form questions about a transcript with the
// configured models.
package qna

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shobhitsyy/VIDEOIQ/internal/config"
	"github.com/shobhitsyy/VIDEOIQ/internal/llm"
)

const (
	temperature = 0.7
	maxTokens   = 1024
)

var (
	// ErrNoProviders means no provider has an API key configured.
	ErrNoProviders = errors.New("no answer providers configured")

	// ErrNoAnswer means every provider failed to answer.
	ErrNoAnswer = errors.New("no provider could answer")

	// ErrNoTranscriptText means there is no transcript to answer from.
	ErrNoTranscriptText = errors.New("no transcript text to answer from")
)

// Completer completes one prompt, implemented by the llm clients.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

type Provider struct {
	Name string
	Chat Completer
}

type Answer struct {
	Text     string
	Provider string
}

// Answerer tries its providers in order and returns the first answer.
type Answerer struct {
	Providers []Provider
}

// New builds the provider order from the configured API keys, gemini is
// the primary with groq as the fallback.
func New(cfg *config.Config) *Answerer {
	var providers []Provider

	if cfg.GeminiKey != "" {
		providers = append(providers, Provider{
			Name: "gemini",
			Chat: llm.NewGemini(cfg.GeminiKey, cfg.GeminiModel),
		})
	}

	if cfg.GroqKey != "" {
		providers = append(providers, Provider{
			Name: "groq",
			Chat: llm.NewGroq(cfg.GroqKey, cfg.GroqModel),
		})
	}

	return &Answerer{Providers: providers}
}

// Only returns an answerer that asks just the named provider.
func (a *Answerer) Only(name string) (*Answerer, error) {
	for _, p := range a.Providers {
		if p.Name == name {
			return &Answerer{Providers: []Provider{p}}, nil
		}
	}

	return nil, fmt.Errorf("unknown provider %q", name)
}

// Ask answers the question from the transcript, falling through the
// providers until one produces an answer.
func (a *Answerer) Ask(ctx context.Context, transcript, question string) (*Answer, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrNoTranscriptText
	}
	if len(a.Providers) == 0 {
		return nil, ErrNoProviders
	}

	p := prompt(transcript, question)
	for _, provider := range a.Providers {
		log.Printf("[INFO]: asking %q", provider.Name)

		text, err := provider.Chat.Complete(ctx, p, maxTokens, temperature)
		if err != nil {
			log.Printf("[WARN]: provider %q failed: %v", provider.Name, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("[WARN]: provider %q returned no answer", provider.Name)
			continue
		}

		return &Answer{Text: text, Provider: provider.Name}, nil
	}

	return nil, ErrNoAnswer
}

// The model is told to flag answers that go beyond the transcript, the
// marker surfaces as is in the answer text.
func prompt(transcript, question string) string {
	return fmt.Sprintf(`Here's a transcript:
---
%s
---

Question: %s

Please answer the question based on the transcript. If the information isn't directly available in the transcript,
you can use your general knowledge but please indicate that you're doing so by starting with "Based on general knowledge:"`,
		transcript, question)
}
