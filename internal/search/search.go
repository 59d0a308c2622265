// Package search finds the moments a phrase is spoken anywhere in the
// archive. Candidate videos come from a LIKE prefilter on the stemmed
// searchable transcript, each candidate is then scanned for an exact,
// in order match.
package search

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shobhitsyy/VIDEOIQ/internal/stem"
	"github.com/shobhitsyy/VIDEOIQ/internal/store"
	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
	"golang.org/x/sync/errgroup"
)

var (
	Queries        *store.Queries
	Records        *transcript.Store
	SearchRoutines = 20
	MaxResults     = 100
)

// Moment is one place in a video where the query is spoken.
type Moment struct {
	Start     float64
	Timestamp string
	Text      string
}

type Result struct {
	Video   store.Video
	Moments []Moment
	starts  []int64
}

// Archive retrieves all the videos that might match the query, calling Video
// on each of them. The results are sorted on extraction time, newest first.
func Archive(ctx context.Context, query string) (res []Result, err error) {
	// Retrieves the videos that contain all the words we query.
	// These are optimistic matches, because they have to be in order,
	// and they can span the metadata boundaries, and we have to return the exact part of the transcripts.
	videos, err := Queries.VideosWithWords(ctx, stem.StemLineWords(query))
	if err != nil {
		return nil, fmt.Errorf("retrieving candidate videos: %w", err)
	}

	log.Printf("[INFO]: searching through %d optimistic video matches", len(videos))
	var group errgroup.Group
	group.SetLimit(SearchRoutines)
	var mu sync.Mutex
	for _, vid := range videos {
		vid := vid
		group.Go(func() error {
			starts, err := Video(&vid, query)
			if err != nil {
				return fmt.Errorf("searching: %w", err)
			}

			if len(starts) == 0 {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()

			res = append(res, Result{
				Video:  vid,
				starts: starts,
			})
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("iterating videos: %w", err)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[j].Video.ExtractedAt.Before(res[i].Video.ExtractedAt)
	})

	log.Printf("[INFO]: there were %d actual video matches, capping to %d", len(res), MaxResults)
	if len(res) > MaxResults {
		res = res[:MaxResults]
	}

	// The rows only hold the stemmed text, the spoken lines come from the
	// full records on disk.
	matched := make([]Result, 0, len(res))
	for _, r := range res {
		record, err := Records.Load(r.Video.RecordPath)
		if err != nil {
			log.Printf("[WARN]: loading record of video %q: %v", r.Video.ID, err)
			continue
		}

		r.Moments = moments(record, r.starts)
		r.starts = nil
		matched = append(matched, r)
	}

	return matched, nil
}

func moments(record *transcript.Record, starts []int64) []Moment {
	segments := make(map[int64]transcript.Segment, len(record.Raw))
	for _, seg := range record.Raw {
		key := int64(seg.Start)
		if _, ok := segments[key]; !ok {
			segments[key] = seg
		}
	}

	res := make([]Moment, 0, len(starts))
	for _, start := range starts {
		seg, ok := segments[start]
		if !ok {
			log.Printf("[WARN]: no segment at %ds in record of video %q", start, record.VideoID)
			continue
		}

		res = append(res, Moment{
			Start:     seg.Start,
			Timestamp: transcript.Timestamp(seg.Start),
			Text:      seg.Text,
		})
	}

	return res
}

// Video searches for the query inside the video's searchable_transcript.
// Returning the start offsets of the matching segments.
//
// Optimized to be fast, this is done in O(n) time where n is the length of the searchable_transcript.
//
// The query and the transcript is stemmed using the stem package, so different "styles" of the same word
// will match.
//
// If the match is on the boundary of a segment (so part is in segment 1 and the other part in 2),
// the second segment's start is returned.
func Video(vid *store.Video, query string) (res []int64, err error) {
	runes := []rune(stem.StemLine(query))
	if len(runes) == 0 {
		return nil, nil
	}

	var inMeta bool
	var matching int
	var idStart int
	var idEnd int
	flush := func() error {
		id, err := strconv.ParseInt(vid.SearchableTranscript[idStart:idEnd], 10, 64)
		if err != nil {
			return fmt.Errorf("could not parse start string: %w", err)
		}

		if len(res) == 0 || res[len(res)-1] != id {
			res = append(res, id)
		}
		matching = 0
		return nil
	}

	for i, ch := range vid.SearchableTranscript {
		if matching == len(runes) {
			if err := flush(); err != nil {
				return nil, err
			}
		}

		if ch == '~' {
			if inMeta {
				inMeta = false
				idEnd = i
			} else {
				inMeta = true
				idStart = i + 1
			}
			continue
		}

		if inMeta {
			continue
		}

		if runes[matching] == ch {
			matching++
		} else {
			matching = 0
		}
	}

	if matching == len(runes) {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Searchable encodes segments into the form Video scans: for every
// segment a ~start~ meta followed by its stemmed text and a space, so
// phrases can match across segment boundaries.
func Searchable(segments []transcript.Segment) string {
	b := strings.Builder{}
	for _, seg := range segments {
		b.WriteByte('~')
		b.WriteString(strconv.Itoa(int(seg.Start)))
		b.WriteByte('~')
		b.WriteString(stem.StemLine(seg.Text))
		b.WriteByte(' ')
	}

	return b.String()
}
