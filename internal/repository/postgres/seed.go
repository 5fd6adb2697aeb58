package postgres

import (
	"context"
	"fmt"

	"github.com/sakif/news-api/internal/fixtures"
)

// schema runs as one simple-protocol statement; lib/pq allows several
// statements per Exec when there are no bind parameters.
const schema = `
	DROP TABLE IF EXISTS comments;
	DROP TABLE IF EXISTS articles;
	DROP TABLE IF EXISTS users;
	DROP TABLE IF EXISTS topics;

	CREATE TABLE topics (
		slug        VARCHAR PRIMARY KEY,
		description VARCHAR NOT NULL DEFAULT ''
	);

	CREATE TABLE users (
		username   VARCHAR PRIMARY KEY,
		name       VARCHAR NOT NULL,
		avatar_url VARCHAR NOT NULL DEFAULT ''
	);

	CREATE TABLE articles (
		article_id      SERIAL PRIMARY KEY,
		title           VARCHAR NOT NULL,
		topic           VARCHAR NOT NULL REFERENCES topics(slug),
		author          VARCHAR NOT NULL REFERENCES users(username),
		body            VARCHAR NOT NULL,
		created_at      TIMESTAMP NOT NULL DEFAULT NOW(),
		votes           INT NOT NULL DEFAULT 0,
		article_img_url VARCHAR NOT NULL DEFAULT 'https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700'
	);

	CREATE TABLE comments (
		comment_id SERIAL PRIMARY KEY,
		body       VARCHAR NOT NULL,
		article_id INT NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
		author     VARCHAR NOT NULL REFERENCES users(username),
		votes      INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
`

// Seed drops and recreates the schema, then loads data, in one transaction.
func (db *DB) Seed(ctx context.Context, data *fixtures.Data) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: beginning seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: creating schema: %w", err)
	}

	for _, t := range data.Topics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO topics (slug, description) VALUES ($1, $2)`,
			t.Slug, t.Description,
		); err != nil {
			return fmt.Errorf("postgres: seeding topic %q: %w", t.Slug, err)
		}
	}
	for _, u := range data.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, name, avatar_url) VALUES ($1, $2, $3)`,
			u.Username, u.Name, u.AvatarURL,
		); err != nil {
			return fmt.Errorf("postgres: seeding user %q: %w", u.Username, err)
		}
	}
	for i, a := range data.Articles {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.Title, a.Topic, a.Author, a.Body, a.CreatedAt.UTC(), a.Votes, a.ArticleImgURL,
		); err != nil {
			return fmt.Errorf("postgres: seeding article %d: %w", i+1, err)
		}
	}
	for i, c := range data.Comments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (body, article_id, author, votes, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("postgres: seeding comment %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: committing seed: %w", err)
	}
	return nil
}
