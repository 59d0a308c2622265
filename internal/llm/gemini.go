package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GeminiBase is the generative language endpoint, the model name and key
// are appended per request.
const GeminiBase = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini completes prompts against Google's generative language API.
type Gemini struct {
	HTTP  *http.Client
	Key   string
	Model string

	// Base overrides GeminiBase in tests.
	Base string
}

func NewGemini(key, model string) *Gemini {
	return &Gemini{Key: key, Model: model}
}

func (g *Gemini) http() *http.Client {
	if g.HTTP != nil {
		return g.HTTP
	}
	return DefaultHTTP
}

func (g *Gemini) base() string {
	if g.Base != "" {
		return g.Base
	}
	return GeminiBase
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig geminiGeneration `json:"generationConfig"`
}

type geminiGeneration struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one prompt and returns the model's reply.
func (g *Gemini) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGeneration{
			Temperature:     temperature,
			MaxOutputTokens: maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.base(), g.Model, g.Key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.http().Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	result := geminiResponse{}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("could not unmarshal gemini response %q: %w", body, err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", result.Error.Code, result.Error.Message)
	}
	if res.StatusCode != 200 {
		return "", fmt.Errorf("gemini status code %d", res.StatusCode)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoReply
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrNoReply
	}

	return text, nil
}
