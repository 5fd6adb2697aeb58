// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Article is a single news article as returned by GET /api/articles/{id}.
//
// The `json:"..."` tags keep the wire format in the same snake_case as the
// database columns, so a row and its JSON look alike.
//
// CommentCount is NOT a column. It is computed by the store on every read
// with COUNT(comments.comment_id), so it can never drift from the comments table.
type Article struct {
	ArticleID     int64     `json:"article_id"      db:"article_id"`
	Title         string    `json:"title"           db:"title"`
	Topic         string    `json:"topic"           db:"topic"`
	Author        string    `json:"author"          db:"author"`
	Body          string    `json:"body"            db:"body"`
	CreatedAt     time.Time `json:"created_at"      db:"created_at"`
	Votes         int       `json:"votes"           db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count"   db:"comment_count"`
}

// ArticleSummary is the list-view shape of an article: everything but the body.
// The body is left out by type rather than omitempty, so an empty body on a
// single article is still serialized.
type ArticleSummary struct {
	ArticleID     int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

// Summary strips the body for the list view.
func (a Article) Summary() ArticleSummary {
	return ArticleSummary{
		ArticleID:     a.ArticleID,
		Title:         a.Title,
		Topic:         a.Topic,
		Author:        a.Author,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
		CommentCount:  a.CommentCount,
	}
}
