// Package config loads runtime configuration from the environment.
package config

import (
	"os"
)

type Config struct {
	// Addr is the listen address of the web UI.
	Addr string

	// DatabasePath is the sqlite database file holding the archive.
	DatabasePath string

	// TranscriptsDir and SummariesDir are where extracted records and
	// generated summaries are written.
	TranscriptsDir string
	SummariesDir   string

	// Provider keys. All optional, providers without a key are skipped.
	GroqKey   string
	GeminiKey string
	OpenAIKey string

	// Models per provider.
	GroqModel   string
	GeminiModel string
	OpenAIModel string
}

// Load reads configuration from environment variables, applying defaults
// for everything that has a sensible one. API keys have no defaults.
func Load() *Config {
	return &Config{
		Addr:           getEnv("VIDEOIQ_ADDR", ":8080"),
		DatabasePath:   getEnv("VIDEOIQ_DB", "videoiq.db"),
		TranscriptsDir: getEnv("VIDEOIQ_TRANSCRIPTS_DIR", "transcripts"),
		SummariesDir:   getEnv("VIDEOIQ_SUMMARIES_DIR", "summaries"),
		GroqKey:        os.Getenv("GROQ_API_KEY"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GroqModel:      getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
