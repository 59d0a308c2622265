// Package llm holds the language model clients that the summarize and
// qna collaborators talk to. OpenAI compatible services (OpenAI itself,
// Groq) share one client, Gemini speaks its own protocol.
package llm

import (
	"errors"
	"net/http"
	"time"
)

// ErrNoReply means the service answered but returned no usable text.
var ErrNoReply = errors.New("model returned no reply")

// DefaultHTTP bounds every request, completions can take a while.
var DefaultHTTP = &http.Client{Timeout: 30 * time.Second}
