package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"a reply"}}]}`)
	}))
	defer server.Close()

	chat := NewCompatible("test-key", server.URL+"/v1", "test-model")
	got, err := chat.Complete(context.Background(), "a prompt", 100, 0.7)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "a reply" {
		t.Errorf("Complete = %q, want %q", got, "a reply")
	}
}

func TestChatCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	chat := NewCompatible("test-key", server.URL+"/v1", "test-model")
	if _, err := chat.Complete(context.Background(), "a prompt", 100, 0.7); !errors.Is(err, ErrNoReply) {
		t.Errorf("Complete error = %v, want %v", err, ErrNoReply)
	}
}

func TestGeminiComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-model:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"a reply"}]}}]}`)
	}))
	defer server.Close()

	gemini := &Gemini{Key: "test-key", Model: "test-model", Base: server.URL}
	got, err := gemini.Complete(context.Background(), "a prompt", 100, 0.7)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "a reply" {
		t.Errorf("Complete = %q, want %q", got, "a reply")
	}
}

func TestGeminiCompleteErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"api error", `{"error":{"code":429,"message":"quota exceeded"}}`},
		{"no candidates", `{"candidates":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			gemini := &Gemini{Key: "test-key", Model: "test-model", Base: server.URL}
			if _, err := gemini.Complete(context.Background(), "a prompt", 100, 0.7); err == nil {
				t.Error("Complete accepted a bad response")
			}
		})
	}
}
