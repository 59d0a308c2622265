package store

import (
	"time"
)

type Video struct {
	ID                   string
	Url                  string
	Title                string
	Description          string
	DurationSeconds      int64
	UploadDate           string
	ViewCount            int64
	Language             string
	TranscriptType       TranscriptType
	SearchableTranscript string
	RecordPath           string
	WordCount            int64
	SegmentCount         int64
	ExtractedAt          time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Summary struct {
	ID        int64
	VideoID   string
	Provider  string
	Model     string
	Summary   string
	KeyPoints string
	CreatedAt time.Time
}

type Failure struct {
	ID        int64
	Type      FailureType
	Data      string
	Message   string
	CreatedAt time.Time
}
