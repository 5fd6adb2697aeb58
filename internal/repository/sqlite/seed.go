package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/news-api/internal/fixtures"
)

// schema drops and recreates every table. Children are dropped before their
// parents so foreign keys never block the DROP.
//
// INTEGER PRIMARY KEY is SQLite's alias for the rowid: inserting without an id
// assigns max(id)+1, so a fresh table numbers fixture rows 1, 2, 3, ...
const schema = `
	DROP TABLE IF EXISTS comments;
	DROP TABLE IF EXISTS articles;
	DROP TABLE IF EXISTS users;
	DROP TABLE IF EXISTS topics;

	CREATE TABLE topics (
		slug        TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE users (
		username   TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		avatar_url TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE articles (
		article_id      INTEGER PRIMARY KEY,
		title           TEXT NOT NULL,
		topic           TEXT NOT NULL REFERENCES topics(slug),
		author          TEXT NOT NULL REFERENCES users(username),
		body            TEXT NOT NULL,
		created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		votes           INTEGER NOT NULL DEFAULT 0,
		article_img_url TEXT NOT NULL DEFAULT 'https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700'
	);
	CREATE INDEX idx_articles_topic ON articles(topic);

	CREATE TABLE comments (
		comment_id INTEGER PRIMARY KEY,
		body       TEXT NOT NULL,
		article_id INTEGER NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
		author     TEXT NOT NULL REFERENCES users(username),
		votes      INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX idx_comments_article_id ON comments(article_id);
`

// Seed rebuilds the schema and loads data in one transaction: either the whole
// seed lands or the previous database is left untouched.
func (db *DB) Seed(ctx context.Context, data *fixtures.Data) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning seed: %w", err)
	}
	// Rollback after Commit is a no-op, so this is safe on the success path.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: creating schema: %w", err)
	}

	for _, t := range data.Topics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO topics (slug, description) VALUES (?, ?)`,
			t.Slug, t.Description,
		); err != nil {
			return fmt.Errorf("sqlite: seeding topic %q: %w", t.Slug, err)
		}
	}

	for _, u := range data.Users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`,
			u.Username, u.Name, u.AvatarURL,
		); err != nil {
			return fmt.Errorf("sqlite: seeding user %q: %w", u.Username, err)
		}
	}

	if err := seedArticles(ctx, tx, data); err != nil {
		return err
	}
	if err := seedComments(ctx, tx, data); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing seed: %w", err)
	}
	return nil
}

// seedArticles prepares the INSERT once and runs it per fixture row.
func seedArticles(ctx context.Context, tx *sql.Tx, data *fixtures.Data) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: preparing article seed: %w", err)
	}
	defer stmt.Close()

	for i, a := range data.Articles {
		if _, err := stmt.ExecContext(ctx,
			a.Title, a.Topic, a.Author, a.Body, a.CreatedAt.UTC(), a.Votes, a.ArticleImgURL,
		); err != nil {
			return fmt.Errorf("sqlite: seeding article %d: %w", i+1, err)
		}
	}
	return nil
}

func seedComments(ctx context.Context, tx *sql.Tx, data *fixtures.Data) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO comments (body, article_id, author, votes, created_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: preparing comment seed: %w", err)
	}
	defer stmt.Close()

	for i, c := range data.Comments {
		if _, err := stmt.ExecContext(ctx,
			c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt.UTC(),
		); err != nil {
			return fmt.Errorf("sqlite: seeding comment %d: %w", i+1, err)
		}
	}
	return nil
}
