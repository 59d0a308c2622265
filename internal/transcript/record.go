package transcript

import (
	"math"
	"strings"
	"time"

	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
)

// now is swapped out in tests for deterministic timestamps and filenames.
var now = time.Now

// TrackInfo describes one caption track in the catalog snapshot stored
// with a record.
type TrackInfo struct {
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}

// AvailableTracks is the catalog snapshot taken at extraction time,
// partitioned the way downstream tooling expects it.
type AvailableTracks struct {
	Manual       []TrackInfo `json:"manual"`
	Generated    []TrackInfo `json:"generated"`
	Translatable []TrackInfo `json:"translatable"`
}

// NewAvailable partitions a track listing into the snapshot shape.
// An empty or failed listing gives empty lists, never nil.
func NewAvailable(tracks []tube.Track) AvailableTracks {
	a := AvailableTracks{
		Manual:       []TrackInfo{},
		Generated:    []TrackInfo{},
		Translatable: []TrackInfo{},
	}

	for i := range tracks {
		t := &tracks[i]
		info := TrackInfo{
			Language:       t.Label(),
			LanguageCode:   t.LanguageCode,
			IsGenerated:    t.IsAuto(),
			IsTranslatable: t.IsTranslatable,
		}

		if info.IsGenerated {
			a.Generated = append(a.Generated, info)
		} else {
			a.Manual = append(a.Manual, info)
		}
		if info.IsTranslatable {
			a.Translatable = append(a.Translatable, info)
		}
	}

	return a
}

// Info records which transcript was actually obtained and what else was
// on offer.
type Info struct {
	Language  string          `json:"language"`
	Type      string          `json:"type"`
	Available AvailableTracks `json:"available_transcripts"`
}

// Record is the persisted unit of one successful extraction. Immutable
// after creation, written once, never overwritten. The json shape is the
// durable contract with the summarization and Q&A tooling, renames here
// break stored data.
type Record struct {
	VideoID         string        `json:"video_id"`
	URL             string        `json:"url"`
	Metadata        tube.Metadata `json:"metadata"`
	Info            Info          `json:"transcript_info"`
	Raw             []Segment     `json:"transcript_raw"`
	Formatted       string        `json:"transcript_formatted"`
	Plain           string        `json:"transcript_plain"`
	ExtractedAt     string        `json:"extracted_at"`
	WordCount       int           `json:"word_count"`
	DurationMinutes float64       `json:"duration_minutes"`
	SegmentCount    int           `json:"segment_count"`
}

// NewRecord assembles a record from its parts, deriving the renderings
// and the stats. Segments are expected to be normalized already.
func NewRecord(videoID, url string, meta *tube.Metadata, info Info, segments []Segment, timestamps bool) *Record {
	plain := Plain(segments)

	return &Record{
		VideoID:         videoID,
		URL:             url,
		Metadata:        *meta,
		Info:            info,
		Raw:             segments,
		Formatted:       Format(segments, timestamps),
		Plain:           plain,
		ExtractedAt:     now().Format(time.RFC3339),
		WordCount:       len(strings.Fields(plain)),
		DurationMinutes: math.Round(float64(meta.Duration)/60*100) / 100,
		SegmentCount:    len(segments),
	}
}
