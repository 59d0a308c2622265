package store

import (
	"context"
	"time"
)

const videoColumns = `id, url, title, description, duration_seconds, upload_date, view_count,
language, transcript_type, searchable_transcript, record_path, word_count, segment_count,
extracted_at, created_at, updated_at`

func scanVideo(row interface{ Scan(...interface{}) error }) (Video, error) {
	var i Video
	err := row.Scan(
		&i.ID,
		&i.Url,
		&i.Title,
		&i.Description,
		&i.DurationSeconds,
		&i.UploadDate,
		&i.ViewCount,
		&i.Language,
		&i.TranscriptType,
		&i.SearchableTranscript,
		&i.RecordPath,
		&i.WordCount,
		&i.SegmentCount,
		&i.ExtractedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

type CreateVideoParams struct {
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
}

const createVideo = `INSERT OR REPLACE INTO videos (
	id, url, title, description, duration_seconds, upload_date, view_count,
	language, transcript_type, searchable_transcript, record_path,
	word_count, segment_count, extracted_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

// CreateVideo inserts the archive row of a video, replacing any previous
// extraction of the same video.
func (q *Queries) CreateVideo(ctx context.Context, arg CreateVideoParams) error {
	_, err := q.db.ExecContext(
		ctx,
		createVideo,
		arg.ID,
		arg.Url,
		arg.Title,
		arg.Description,
		arg.DurationSeconds,
		arg.UploadDate,
		arg.ViewCount,
		arg.Language,
		arg.TranscriptType,
		arg.SearchableTranscript,
		arg.RecordPath,
		arg.WordCount,
		arg.SegmentCount,
		arg.ExtractedAt,
	)
	return err
}

const video = `SELECT ` + videoColumns + ` FROM videos WHERE id = ?;`

func (q *Queries) Video(ctx context.Context, id string) (Video, error) {
	return scanVideo(q.db.QueryRowContext(ctx, video, id))
}

const videos = `SELECT ` + videoColumns + ` FROM videos ORDER BY extracted_at DESC;`

func (q *Queries) Videos(ctx context.Context) ([]Video, error) {
	rows, err := q.db.QueryContext(ctx, videos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Video
	for rows.Next() {
		i, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type CreateSummaryParams struct {
	VideoID   string
	Provider  string
	Model     string
	Summary   string
	KeyPoints string
}

const createSummary = `INSERT INTO summaries (video_id, provider, model, summary, key_points)
VALUES (?, ?, ?, ?, ?);`

func (q *Queries) CreateSummary(ctx context.Context, arg CreateSummaryParams) error {
	_, err := q.db.ExecContext(
		ctx,
		createSummary,
		arg.VideoID,
		arg.Provider,
		arg.Model,
		arg.Summary,
		arg.KeyPoints,
	)
	return err
}

const latestSummaryOfVideo = `SELECT id, video_id, provider, model, summary, key_points, created_at
FROM summaries WHERE video_id = ? ORDER BY id DESC LIMIT 1;`

func (q *Queries) LatestSummaryOfVideo(ctx context.Context, videoID string) (Summary, error) {
	row := q.db.QueryRowContext(ctx, latestSummaryOfVideo, videoID)
	var i Summary
	err := row.Scan(
		&i.ID,
		&i.VideoID,
		&i.Provider,
		&i.Model,
		&i.Summary,
		&i.KeyPoints,
		&i.CreatedAt,
	)
	return i, err
}

const summariesOfVideo = `SELECT id, video_id, provider, model, summary, key_points, created_at
FROM summaries WHERE video_id = ? ORDER BY id DESC;`

func (q *Queries) SummariesOfVideo(ctx context.Context, videoID string) ([]Summary, error) {
	rows, err := q.db.QueryContext(ctx, summariesOfVideo, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Summary
	for rows.Next() {
		var i Summary
		if err := rows.Scan(
			&i.ID,
			&i.VideoID,
			&i.Provider,
			&i.Model,
			&i.Summary,
			&i.KeyPoints,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type CreateFailureParams struct {
	Type    FailureType
	Data    string
	Message string
}

const createFailure = `INSERT INTO failures (type, data, message) VALUES (?, ?, ?);`

func (q *Queries) CreateFailure(ctx context.Context, arg CreateFailureParams) error {
	_, err := q.db.ExecContext(ctx, createFailure, arg.Type, arg.Data, arg.Message)
	return err
}

const failures = `SELECT id, type, data, message, created_at FROM failures ORDER BY id;`

func (q *Queries) Failures(ctx context.Context) ([]Failure, error) {
	rows, err := q.db.QueryContext(ctx, failures)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Failure
	for rows.Next() {
		var i Failure
		if err := rows.Scan(&i.ID, &i.Type, &i.Data, &i.Message, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteFailure = `DELETE FROM failures WHERE id = ?;`

func (q *Queries) DeleteFailure(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteFailure, id)
	return err
}
