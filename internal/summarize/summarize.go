// Package summarize turns a stored transcript record into a short summary
// with key points. Providers are tried in a fixed order, hosted models
// first, a local extractive method that needs no API key at all last.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shobhitsyy/VIDEOIQ/internal/store"
	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
)

var (
	// ErrNoTranscriptText means the record holds no text to summarize.
	ErrNoTranscriptText = errors.New("record has no transcript text")

	// ErrAllProvidersFailed means no provider produced a summary.
	ErrAllProvidersFailed = errors.New("every summary provider failed")
)

// now is swapped out in tests.
var now = time.Now

// Completer completes one prompt, implemented by the llm clients.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error)
}

// Provider is one way of producing a summary. A failed provider means the
// summarizer moves on to the next one.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, record *transcript.Record) (*Result, error)
}

// Result is one produced summary. The json keys line up with the summary
// files written to disk.
type Result struct {
	Title          string   `json:"title"`
	Duration       string   `json:"duration"`
	WordCount      int      `json:"word_count"`
	Summary        string   `json:"summary"`
	KeyPoints      []string `json:"key_points"`
	Provider       string   `json:"ai_provider"`
	Model          string   `json:"model"`
	ProcessingTime float64  `json:"processing_time"`
	GeneratedAt    string   `json:"generated_at"`
	ReadyForQA     bool     `json:"ready_for_qa"`
}

// Summarizer tries its providers in order and returns the first summary.
type Summarizer struct {
	Providers []Provider
}

// Only returns a summarizer that tries just the named provider.
func (s *Summarizer) Only(name string) (*Summarizer, error) {
	for _, p := range s.Providers {
		if p.Name() == name {
			return &Summarizer{Providers: []Provider{p}}, nil
		}
	}

	return nil, fmt.Errorf("unknown provider %q", name)
}

// Summarize runs the providers in order until one produces a summary,
// filling in the record details around it.
func (s *Summarizer) Summarize(ctx context.Context, record *transcript.Record) (*Result, error) {
	if strings.TrimSpace(record.Plain) == "" {
		return nil, ErrNoTranscriptText
	}

	for _, p := range s.Providers {
		log.Printf("[INFO]: trying summary provider %q", p.Name())
		start := time.Now()

		res, err := p.Summarize(ctx, record)
		if err != nil {
			log.Printf("[WARN]: provider %q failed: %v", p.Name(), err)
			continue
		}
		if res == nil || res.Summary == "" {
			log.Printf("[WARN]: provider %q returned no summary", p.Name())
			continue
		}

		res.Title = record.Metadata.Title
		res.Duration = fmt.Sprintf("%g minutes", record.DurationMinutes)
		res.WordCount = record.WordCount
		res.ProcessingTime = time.Since(start).Seconds()
		res.GeneratedAt = now().Format(time.RFC3339)
		res.ReadyForQA = true

		log.Printf(
			"[INFO]: summarized %q with %q in %.2fs",
			record.VideoID,
			p.Name(),
			res.ProcessingTime,
		)
		return res, nil
	}

	return nil, ErrAllProvidersFailed
}

// Service ties the provider chain to the summary files and the archive.
type Service struct {
	Summarizer *Summarizer
	Store      *Store
	Queries    *store.Queries
}

// Summarize summarizes the record and persists the result, both as files
// and as an archive row. Total provider failure is recorded in the
// failures table.
func (s *Service) Summarize(ctx context.Context, record *transcript.Record) (*Result, error) {
	res, err := s.Summarizer.Summarize(ctx, record)
	if err != nil {
		if errors.Is(err, ErrAllProvidersFailed) {
			ferr := s.Queries.CreateFailure(ctx, store.CreateFailureParams{
				Type:    store.FailureTypeSummarize,
				Data:    record.VideoID,
				Message: err.Error(),
			})
			if ferr != nil {
				log.Printf("[WARN]: recording summarize failure: %v", ferr)
			}
		}

		return nil, err
	}

	path, err := s.Store.Save(res, record.VideoID)
	if err != nil {
		return nil, fmt.Errorf("saving summary: %w", err)
	}
	log.Printf("[INFO]: summary saved to %q", path)

	if err := s.Queries.CreateSummary(ctx, store.CreateSummaryParams{
		VideoID:   record.VideoID,
		Provider:  res.Provider,
		Model:     res.Model,
		Summary:   res.Summary,
		KeyPoints: strings.Join(res.KeyPoints, "\n"),
	}); err != nil {
		return nil, fmt.Errorf("recording summary: %w", err)
	}

	return res, nil
}
