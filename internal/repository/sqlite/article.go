package sqlite

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

// articleSelect is shared by the list and single-article queries.
//
// LEFT JOIN keeps articles with zero comments (an inner join would drop them),
// and COUNT(c.comment_id) counts only matched rows, so those articles get 0.
const articleSelect = `
	SELECT a.article_id, a.title, a.topic, a.author, a.body, a.created_at,
	       a.votes, a.article_img_url, COUNT(c.comment_id) AS comment_count
	FROM articles a
	LEFT JOIN comments c ON c.article_id = a.article_id`

// scanner is satisfied by both *sql.Row and *sql.Rows.
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

// ListArticles returns articles filtered by topic and ordered by opts.
//
// Only opts.Sort.Fragment() and opts.Order.Keyword() are written into the
// statement text; both come from fixed tables in the repository package.
// The topic goes through a bind parameter. article_id is the tiebreaker so
// equal sort keys still come back in a stable order.
func (db *DB) ListArticles(ctx context.Context, opts repository.ArticleListOptions) ([]model.Article, error) {
	var (
		q    strings.Builder
		args []any
	)
	q.WriteString(articleSelect)
	if opts.Topic != "" {
		q.WriteString(" WHERE a.topic = ?")
		args = append(args, opts.Topic)
	}
	q.WriteString(" GROUP BY a.article_id")
	fmt.Fprintf(&q, " ORDER BY %s %s, a.article_id ASC", opts.Sort.Fragment(), opts.Order.Keyword())

	rows, err := db.conn.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing articles: %w", err)
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating articles: %w", err)
	}
	return articles, nil
}

// GetArticle returns one article with its comment count, or a NotFound
// AppError when no article has that id.
func (db *DB) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	row := db.conn.QueryRowContext(ctx,
		articleSelect+` WHERE a.article_id = ? GROUP BY a.article_id`, id)

	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Article Not Found")
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting article %d: %w", id, err)
	}
	return &a, nil
}

// UpdateArticleVotes adds delta to the article's votes and returns the
// updated article.
//
// "votes = votes + ?" is evaluated by the database, so two concurrent PATCHes
// both land; reading the value into Go and writing it back would lose one.
func (db *DB) UpdateArticleVotes(ctx context.Context, id int64, delta int) (*model.Article, error) {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE articles SET votes = votes + ? WHERE article_id = ?`, delta, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating votes on article %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("Article Not Found")
	}

	return db.GetArticle(ctx, id)
}
