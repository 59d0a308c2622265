package migrations

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateSummaries, downCreateSummaries)
}

func upCreateSummaries(tx *sql.Tx) error {
	if _, err := tx.Exec(`CREATE TABLE summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id TEXT NOT NULL REFERENCES videos (id),
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		summary TEXT NOT NULL,
		key_points TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("creating summaries table: %w", err)
	}

	if _, err := tx.Exec("CREATE INDEX summaries_video_id ON summaries (video_id);"); err != nil {
		return fmt.Errorf("creating summaries index: %w", err)
	}

	return nil
}

func downCreateSummaries(tx *sql.Tx) error {
	if _, err := tx.Exec("DROP TABLE summaries;"); err != nil {
		return fmt.Errorf("dropping summaries table: %w", err)
	}

	return nil
}
