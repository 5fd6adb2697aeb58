package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/news-api/internal/model"
)

// ListUsers returns every user ordered by username.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}
	return users, nil
}
