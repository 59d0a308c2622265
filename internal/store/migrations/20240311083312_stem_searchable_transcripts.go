package migrations

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/shobhitsyy/VIDEOIQ/internal/stem"
)

func init() {
	goose.AddMigration(upStemSearchableTranscripts, downStemSearchableTranscripts)
}

// Searchable transcripts used to hold the raw caption text, queries were
// stemmed but the text was not, so only exact word forms matched. Stems
// every text span of every row, the ~start~ metas are kept as is.
func upStemSearchableTranscripts(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT id, searchable_transcript FROM videos;")
	if err != nil {
		return fmt.Errorf("retrieving videos: %w", err)
	}
	defer rows.Close()

	// Need this intermediate map, can't execute a query while scanning rows.
	updated := map[string]string{}

	var id, searchable string
	b := strings.Builder{}
	for rows.Next() {
		if err := rows.Scan(&id, &searchable); err != nil {
			return fmt.Errorf("scanning video row: %w", err)
		}

		b.Reset()
		inMeta := false
		spanStart := -1
		for i, ch := range searchable {
			if ch == '~' {
				if inMeta {
					inMeta = false
					spanStart = i + 1
				} else {
					if spanStart >= 0 && i > spanStart {
						b.WriteString(stem.StemLine(searchable[spanStart:i]))
						b.WriteByte(' ')
					}

					inMeta = true
					spanStart = -1
				}

				b.WriteRune(ch)
				continue
			}

			if inMeta {
				b.WriteRune(ch)
			}
		}

		if spanStart >= 0 && spanStart < len(searchable) {
			b.WriteString(stem.StemLine(searchable[spanStart:]))
			b.WriteByte(' ')
		}

		updated[id] = b.String()
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating video rows: %w", err)
	}

	for id, searchable := range updated {
		if _, err := tx.Exec("UPDATE videos SET searchable_transcript = ? WHERE id = ?;", searchable, id); err != nil {
			return fmt.Errorf("updating video %q: %w", id, err)
		}
	}

	return nil
}

func downStemSearchableTranscripts(tx *sql.Tx) error {
	// Stemming loses the original text, can't roll this back.
	return nil
}
