// Package repository declares the storage interfaces the services depend on.
//
// Implementations live in sub-packages (sqlite, postgres). Services only ever
// see these interfaces, so swapping the backend is a one-line change in the
// composition root.
package repository

import (
	"context"

	"github.com/sakif/news-api/internal/fixtures"
	"github.com/sakif/news-api/internal/model"
)

// ArticleSort names a column the article list may be ordered by.
//
// SQL IDENTIFIERS CANNOT BE BIND PARAMETERS:
// "ORDER BY $1" orders by a constant, not by a column. The column name has to
// be part of the statement text. To keep user input out of that text, the
// validation layer turns the query string into one of these constants and the
// store asks the constant for its fragment. The fragments below are the only
// strings that ever get concatenated into SQL.
type ArticleSort int

const (
	SortByCreatedAt ArticleSort = iota
	SortByAuthor
	SortByTitle
	SortByTopic
	SortByArticleImgURL
	SortByCommentCount
	SortByVotes
)

var sortFragments = map[ArticleSort]string{
	SortByCreatedAt:     "a.created_at",
	SortByAuthor:        "a.author",
	SortByTitle:         "a.title",
	SortByTopic:         "a.topic",
	SortByArticleImgURL: "a.article_img_url",
	SortByCommentCount:  "comment_count",
	SortByVotes:         "a.votes",
}

// Fragment returns the pre-approved ORDER BY expression. Unknown values fall
// back to created_at so a zero or corrupt value can never produce bad SQL.
func (s ArticleSort) Fragment() string {
	if f, ok := sortFragments[s]; ok {
		return f
	}
	return sortFragments[SortByCreatedAt]
}

// SortOrder is the ORDER BY direction.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

func (o SortOrder) Keyword() string {
	if o == Ascending {
		return "ASC"
	}
	return "DESC"
}

// ArticleListOptions is the validated form of GET /api/articles' query string.
// Topic is a plain value and is always passed as a bind parameter.
type ArticleListOptions struct {
	Sort  ArticleSort
	Order SortOrder
	Topic string // empty = all topics
}

type TopicRepository interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

type ArticleRepository interface {
	ListArticles(ctx context.Context, opts ArticleListOptions) ([]model.Article, error)
	GetArticle(ctx context.Context, id int64) (*model.Article, error)
	UpdateArticleVotes(ctx context.Context, id int64, delta int) (*model.Article, error)
}

type CommentRepository interface {
	ListComments(ctx context.Context, articleID int64) ([]model.Comment, error)
	InsertComment(ctx context.Context, articleID int64, username, body string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

// Seeder rebuilds the schema and loads fixture data.
type Seeder interface {
	Seed(ctx context.Context, data *fixtures.Data) error
}

// Store is everything a backend provides. The server owns one and closes it
// on shutdown.
type Store interface {
	TopicRepository
	UserRepository
	ArticleRepository
	CommentRepository
	Seeder
	Ping(ctx context.Context) error
	Close() error
}
