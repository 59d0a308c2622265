package store

import (
	"context"
	"log"
	"time"
)

// VideosWithWords is an optimized query to retrieve videos that
// might be a match of a query, words must be stemmed.
func (q *Queries) VideosWithWords(ctx context.Context, words []string) ([]Video, error) {
	if len(words) == 0 {
		return nil, nil
	}

	start := time.Now()
	defer func() {
		log.Printf("[INFO]: videos query took %s", time.Since(start))
	}()

	query := "SELECT " + videoColumns + " FROM videos"
	for i, word := range words {
		if i == 0 {
			query += " WHERE"
		} else {
			query += " AND"
		}

		// NOTE: this would be dangerous for sql injection, but stemming removes all the special characters that
		// are able to do that already, so this should be save.
		query += " searchable_transcript LIKE \"%" + word + "%\""
	}
	query += ";"

	rows, err := q.db.QueryContext(ctx, query)
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
