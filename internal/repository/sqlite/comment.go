package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
)

// ListComments returns an article's comments, newest first. It does not check
// that the article exists; an unknown id simply yields an empty slice.
func (db *DB) ListComments(ctx context.Context, articleID int64) ([]model.Comment, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT comment_id, article_id, author, body, votes, created_at
		FROM comments
		WHERE article_id = ?
		ORDER BY created_at DESC, comment_id DESC`, articleID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for article %d: %w", articleID, err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}
	return comments, nil
}

// InsertComment stores a new comment with zero votes.
//
// An unknown article or author is rejected by the foreign keys and comes back
// as a ForeignKey StoreError naming which reference failed.
func (db *DB) InsertComment(ctx context.Context, articleID int64, username, body string) (*model.Comment, error) {
	// Truncated to microseconds so the value we return equals what a later
	// read gives back, on either backend.
	now := time.Now().UTC().Truncate(time.Microsecond)

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO comments (body, article_id, author, votes, created_at) VALUES (?, ?, ?, 0, ?)`,
		body, articleID, username, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, foreignKeyError(db.missingReference(ctx, articleID), err)
		}
		return nil, fmt.Errorf("sqlite: inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting comment id: %w", err)
	}

	return &model.Comment{
		CommentID: id,
		ArticleID: articleID,
		Author:    username,
		Body:      body,
		Votes:     0,
		CreatedAt: now,
	}, nil
}

// missingReference decides which foreign key an insert tripped over. The
// article is checked first; if it exists, the author must be the culprit.
func (db *DB) missingReference(ctx context.Context, articleID int64) string {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE article_id = ?)`, articleID,
	).Scan(&exists)
	if err != nil || !exists {
		return apperror.RefArticle
	}
	return apperror.RefAuthor
}

// DeleteComment removes a comment. A missing id is a CommentNotFound error.
func (db *DB) DeleteComment(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.CommentNotFound(id)
	}
	return nil
}
