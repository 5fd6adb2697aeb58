package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/repository"
)

func (db *DB) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT slug, description FROM topics ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing topics: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("postgres: scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating topics: %w", err)
	}
	return topics, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("postgres: scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating users: %w", err)
	}
	return users, nil
}

const articleColumns = `a.article_id, a.title, a.topic, a.author, a.body, a.created_at,
	       a.votes, a.article_img_url`

const articleSelect = `
	SELECT ` + articleColumns + `, COUNT(c.comment_id)::INT AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (model.Article, error) {
	var a model.Article
	err := s.Scan(
		&a.ArticleID, &a.Title, &a.Topic, &a.Author, &a.Body, &a.CreatedAt,
		&a.Votes, &a.ArticleImgURL, &a.CommentCount,
	)
	return a, err
}

// ListArticles builds its ORDER BY from the enum fragments only; the topic is
// bound as $1.
func (db *DB) ListArticles(ctx context.Context, opts repository.ArticleListOptions) ([]model.Article, error) {
	var (
		q    strings.Builder
		args []any
	)
	q.WriteString(articleSelect)
	if opts.Topic != "" {
		q.WriteString(" WHERE a.topic = $1")
		args = append(args, opts.Topic)
	}
	q.WriteString(" GROUP BY a.article_id")
	fmt.Fprintf(&q, " ORDER BY %s %s, a.article_id ASC", opts.Sort.Fragment(), opts.Order.Keyword())

	rows, err := db.conn.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing articles: %w", translate(err))
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating articles: %w", err)
	}
	return articles, nil
}

func (db *DB) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	row := db.conn.QueryRowContext(ctx,
		articleSelect+` WHERE a.article_id = $1 GROUP BY a.article_id`, id)

	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Article Not Found")
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: getting article %d: %w", id, translate(err))
	}
	return &a, nil
}

// UpdateArticleVotes increments votes and reads the result back in a single
// statement. The count subquery sees the comments table as of the statement
// start, which the UPDATE does not touch.
func (db *DB) UpdateArticleVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	row := db.conn.QueryRowContext(ctx, `
		WITH a AS (
			UPDATE articles SET votes = votes + $1 WHERE article_id = $2
			RETURNING *
		)
		SELECT `+articleColumns+`,
		       (SELECT COUNT(*) FROM comments c WHERE c.article_id = a.article_id)::INT AS comment_count
		FROM a`, delta, id)

	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Article Not Found")
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: updating votes on article %d: %w", id, translate(err))
	}
	return &a, nil
}

func (db *DB) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT comment_id, article_id, author, body, votes, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, comment_id DESC`, articleID)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing comments for article %d: %w", articleID, translate(err))
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scanning comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating comments: %w", err)
	}
	return comments, nil
}

// InsertComment lets the database assign comment_id and created_at and reads
// them back with RETURNING.
func (db *DB) InsertComment(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	c := model.Comment{ArticleID: articleID, Author: username, Body: body}
	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO comments (body, article_id, author)
		VALUES ($1, $2, $3)
		RETURNING comment_id, votes, created_at`,
		body, articleID, username,
	).Scan(&c.CommentID, &c.Votes, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: inserting comment: %w", translate(err))
	}
	return &c, nil
}

func (db *DB) DeleteComment(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting comment %d: %w", id, translate(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.CommentNotFound(id)
	}
	return nil
}
