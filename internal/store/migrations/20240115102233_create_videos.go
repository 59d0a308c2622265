package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateVideos, downCreateVideos)
}

func upCreateVideos(tx *sql.Tx) error {
	if _, err := tx.Exec(`CREATE TABLE videos (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL,
		upload_date TEXT NOT NULL,
		view_count INTEGER NOT NULL,
		language TEXT NOT NULL,
		transcript_type TEXT NOT NULL,
		searchable_transcript TEXT NOT NULL,
		record_path TEXT NOT NULL,
		word_count INTEGER NOT NULL,
		segment_count INTEGER NOT NULL,
		extracted_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("creating videos table: %w", err)
	}

	if _, err := tx.Exec(`CREATE TABLE failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		data TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("creating failures table: %w", err)
	}

	return nil
}

func downCreateVideos(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE failures;"); err != nil {
		return fmt.Errorf("dropping failures table: %w", err)
	}

	if _, err := tx.Exec("DROP TABLE videos;"); err != nil {
		return fmt.Errorf("dropping videos table: %w", err)
	}

	return nil
}
