// Package extract runs one extraction end to end: url to video id,
// metadata and catalog snapshot, transcript resolution, normalization,
// and finally the record on disk plus its row in the archive.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shobhitsyy/VIDEOIQ/internal/resolve"
	"github.com/shobhitsyy/VIDEOIQ/internal/search"
	"github.com/shobhitsyy/VIDEOIQ/internal/store"
	"github.com/shobhitsyy/VIDEOIQ/internal/summarize"
	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
)

// BatchRoutines caps how many videos are extracted at once. Kept low on
// purpose, every extraction hits the platform several times.
var BatchRoutines = 2

// What the user is told when every acquisition method came up empty. The
// causes are indistinguishable from the outside so all of them are
// listed.
const noTranscriptMessage = `Could not extract transcript. Possible reasons:
- Video has no captions/subtitles available
- Video is private or restricted
- Transcripts are disabled for this video
- Video is unavailable`

// Resolver is the transcript acquisition pipeline, *resolve.Resolver in
// production.
type Resolver interface {
	Resolve(videoId string, prefs resolve.Prefs) (*resolve.Resolved, error)
}

// Summarizer re-runs summarization when retrying queued summary
// failures, *summarize.Service in production.
type Summarizer interface {
	Summarize(ctx context.Context, record *transcript.Record) (*summarize.Result, error)
}

// Options steer one extraction.
type Options struct {
	// Languages in order of preference, the resolver's defaults when
	// empty.
	Languages []string

	// PreferManual puts human authored tracks before auto generated ones.
	PreferManual bool

	// IncludeTimestamps renders [MM:SS] prefixes into the formatted text.
	IncludeTimestamps bool
}

func DefaultOptions() Options {
	return Options{PreferManual: true, IncludeTimestamps: true}
}

// Outcome is the user facing result of one extraction. The error return
// next to it is reserved for environment problems like unwritable
// storage, everything about the video itself lands in OK and Message.
type Outcome struct {
	OK      bool
	Message string
	Record  *transcript.Record
	Path    string
}

type Extractor struct {
	Yt       *tube.Client
	Resolver Resolver
	Records  *transcript.Store
	Queries  *store.Queries

	// Summaries is only needed for Retry, queued summary failures stay
	// queued without it.
	Summaries Summarizer
}

// ExtractAndSave chains the whole pipeline for one url. A video without
// an obtainable transcript is queued in the failures table for Retry.
func (e *Extractor) ExtractAndSave(ctx context.Context, url string, opts Options) (*Outcome, error) {
	videoId, err := tube.ExtractVideoID(url)
	if err != nil {
		return &Outcome{Message: "Invalid YouTube URL"}, nil
	}

	log.Printf("[INFO]: extracting video %q", videoId)

	meta, err := e.Yt.VideoMetadata(videoId)
	if err != nil {
		log.Printf("[WARN]: no metadata for %q: %v", videoId, err)
		meta = &tube.Metadata{Title: "Unknown Title", Tags: []string{}, Categories: []string{}}
	}

	tracks, err := e.Yt.ListTracks(videoId)
	if err != nil {
		log.Printf("[WARN]: no track listing for %q: %v", videoId, err)
	}

	res, err := e.Resolver.Resolve(videoId, resolve.Prefs{
		Languages:    opts.Languages,
		PreferManual: opts.PreferManual,
	})
	if err != nil {
		if ferr := e.Queries.CreateFailure(ctx, store.CreateFailureParams{
			Type:    store.FailureTypeNoTranscript,
			Data:    url,
			Message: err.Error(),
		}); ferr != nil {
			log.Printf("[WARN]: queueing failed extraction: %v", ferr)
		}

		return &Outcome{Message: noTranscriptMessage}, nil
	}

	record := transcript.NewRecord(
		videoId,
		url,
		meta,
		transcript.Info{
			Language:  res.Language,
			Type:      res.Origin.String(),
			Available: transcript.NewAvailable(tracks),
		},
		transcript.Normalize(res.Segments),
		opts.IncludeTimestamps,
	)

	path, err := e.Records.Save(record)
	if err != nil {
		return nil, fmt.Errorf("saving record: %w", err)
	}

	if err := e.Queries.CreateVideo(ctx, archiveRow(record, res, path)); err != nil {
		return nil, fmt.Errorf("archiving record: %w", err)
	}

	log.Printf("[INFO]: extracted %q to %q", videoId, path)
	return &Outcome{
		OK:      true,
		Message: successMessage(record, path),
		Record:  record,
		Path:    path,
	}, nil
}

func archiveRow(record *transcript.Record, res *resolve.Resolved, path string) store.CreateVideoParams {
	extractedAt, _ := time.Parse(time.RFC3339, record.ExtractedAt)

	return store.CreateVideoParams{
		ID:                   record.VideoID,
		Url:                  record.URL,
		Title:                record.Metadata.Title,
		Description:          record.Metadata.Description,
		DurationSeconds:      int64(record.Metadata.Duration),
		UploadDate:           record.Metadata.UploadDate,
		ViewCount:            int64(record.Metadata.ViewCount),
		Language:             res.Language,
		TranscriptType:       transcriptType(res.Origin),
		SearchableTranscript: search.Searchable(record.Raw),
		RecordPath:           path,
		WordCount:            int64(record.WordCount),
		SegmentCount:         int64(record.SegmentCount),
		ExtractedAt:          extractedAt,
	}
}

func transcriptType(origin resolve.Origin) store.TranscriptType {
	switch origin {
	case resolve.OriginAuto:
		return store.TranscriptAuto
	case resolve.OriginTranslated:
		return store.TranscriptTranslated
	}

	return store.TranscriptManual
}

func successMessage(record *transcript.Record, path string) string {
	return fmt.Sprintf(
		"Transcript extracted successfully!\nTitle: %s\nDuration: %g minutes\nLanguage: %s\nType: %s\nSegments: %d\nWord Count: %d\nSaved to: %s",
		record.Metadata.Title,
		record.DurationMinutes,
		record.Info.Language,
		record.Info.Type,
		record.SegmentCount,
		record.WordCount,
		path,
	)
}

// Batch extracts the urls a few at a time. The outcomes line up with the
// urls. Only environment failures abort the batch.
func (e *Extractor) Batch(ctx context.Context, urls []string, opts Options) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(urls))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(BatchRoutines)
	for i, url := range urls {
		i, url := i, url
		group.Go(func() error {
			outcome, err := e.ExtractAndSave(ctx, url, opts)
			if err != nil {
				return err
			}

			outcomes[i] = outcome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// Retry re-attempts every queued failure. Each row is taken off the
// queue before its attempt, an attempt that fails the same way again
// queues itself anew, so the net effect is that only resolved failures
// disappear.
func (e *Extractor) Retry(ctx context.Context, opts Options) error {
	failures, err := e.Queries.Failures(ctx)
	if err != nil {
		return fmt.Errorf("listing failures: %w", err)
	}

	log.Printf("[INFO]: retrying %d queued failures", len(failures))
	for _, failure := range failures {
		if !e.retryable(failure) {
			continue
		}

		if err := e.Queries.DeleteFailure(ctx, failure.ID); err != nil {
			return fmt.Errorf("unqueueing failure %d: %w", failure.ID, err)
		}

		if err := e.retry(ctx, failure, opts); err != nil {
			return err
		}
	}

	return nil
}

// retryable filters rows this extractor can act on, rows it can't stay
// queued untouched.
func (e *Extractor) retryable(failure store.Failure) bool {
	switch failure.Type {
	case store.FailureTypeNoTranscript:
		return true
	case store.FailureTypeSummarize:
		return e.Summaries != nil
	}

	log.Printf("[WARN]: ignoring failure %d of unknown type %q", failure.ID, failure.Type)
	return false
}

func (e *Extractor) retry(ctx context.Context, failure store.Failure, opts Options) error {
	switch failure.Type {
	case store.FailureTypeNoTranscript:
		outcome, err := e.ExtractAndSave(ctx, failure.Data, opts)
		if err != nil {
			return err
		}
		if !outcome.OK {
			log.Printf("[WARN]: video %q still has no obtainable transcript", failure.Data)
		}

	case store.FailureTypeSummarize:
		record, _, err := e.Records.Latest(failure.Data)
		if err != nil {
			log.Printf("[WARN]: no record to summarize for %q: %v", failure.Data, err)
			return nil
		}

		_, err = e.Summaries.Summarize(ctx, record)
		switch {
		case err == nil:
		case errors.Is(err, summarize.ErrAllProvidersFailed):
			log.Printf("[WARN]: summary of %q still fails, queued again", failure.Data)
		case errors.Is(err, summarize.ErrNoTranscriptText):
			log.Printf("[WARN]: record of %q has no text to summarize, dropping", failure.Data)
		default:
			return err
		}
	}

	return nil
}
