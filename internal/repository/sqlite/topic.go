package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/news-api/internal/model"
)

// ListTopics returns every topic ordered by slug.
func (db *DB) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topics: %w", err)
	}
	defer rows.Close()

	// Start from an empty (non-nil) slice so an empty table encodes as [] and
	// not null.
	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating topics: %w", err)
	}
	return topics, nil
}
