package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/fixtures"
	"github.com/sakif/news-api/internal/repository"
)

// TESTING WITHOUT A SERVER:
// go-sqlmock is a database/sql driver that records expectations instead of
// talking to Postgres. Each test declares the statements it expects (matched
// as regular expressions) and the rows or errors they return, then checks
// that every expectation was met.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return New(conn), mock
}

var articleCols = []string{
	"article_id", "title", "topic", "author", "body", "created_at",
	"votes", "article_img_url", "comment_count",
}

var created = time.Date(2020, 7, 9, 21, 11, 0, 0, time.UTC)

// =========================================================================
// TOPIC / USER TESTS
// =========================================================================

func TestListTopics(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT slug, description FROM topics ORDER BY slug`).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "description"}).
			AddRow("cats", "Not dogs").
			AddRow("mitch", "The man, the Mitch, the legend"))

	topics, err := db.ListTopics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "cats", topics[0].Slug)
}

func TestListUsers_Empty(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT username, name, avatar_url FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "name", "avatar_url"}))

	users, err := db.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

// =========================================================================
// ARTICLE TESTS
// =========================================================================

func TestListArticles_BuildsOrderFromEnums(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE a\.topic = \$1 GROUP BY a\.article_id ORDER BY a\.votes ASC, a\.article_id ASC`).
		WithArgs("mitch").
		WillReturnRows(sqlmock.NewRows(articleCols).
			AddRow(2, "Sony Vaio", "mitch", "icellusedkars", "body", created, 0, "img", 0).
			AddRow(1, "Living in the shadow", "mitch", "butter_bridge", "body", created, 100, "img", 11))

	articles, err := db.ListArticles(context.Background(), repository.ArticleListOptions{
		Sort:  repository.SortByVotes,
		Order: repository.Ascending,
		Topic: "mitch",
	})
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, 11, articles[1].CommentCount)
}

func TestListArticles_NoTopicHasNoArgs(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`GROUP BY a\.article_id ORDER BY comment_count DESC`).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows(articleCols))

	articles, err := db.ListArticles(context.Background(), repository.ArticleListOptions{
		Sort: repository.SortByCommentCount,
	})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestGetArticle_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE a\.article_id = \$1`).
		WithArgs(int64(9999)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	_, err := db.GetArticle(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetArticle_InvalidText(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`WHERE a\.article_id = \$1`).
		WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type integer"})

	_, err := db.GetArticle(context.Background(), 1)
	assert.True(t, apperror.IsStoreError(err, apperror.InvalidText, ""), "got %v", err)
}

func TestUpdateArticleVotes(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE articles SET votes = votes \+ \$1 WHERE article_id = \$2`).
		WithArgs(-40, int64(1)).
		WillReturnRows(sqlmock.NewRows(articleCols).
			AddRow(1, "Living in the shadow", "mitch", "butter_bridge", "body", created, 60, "img", 11))

	a, err := db.UpdateArticleVotes(context.Background(), 1, -40)
	require.NoError(t, err)
	assert.Equal(t, 60, a.Votes)
	assert.Equal(t, 11, a.CommentCount)
}

func TestUpdateArticleVotes_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE articles`).
		WithArgs(1, int64(9999)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	_, err := db.UpdateArticleVotes(context.Background(), 9999, 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateArticleVotes_OutOfRange(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`UPDATE articles`).
		WithArgs(2147483647, int64(1)).
		WillReturnError(&pq.Error{Code: "22003", Message: "integer out of range"})

	_, err := db.UpdateArticleVotes(context.Background(), 1, 2147483647)
	assert.True(t, apperror.IsStoreError(err, apperror.OutOfRange, ""), "got %v", err)
}

// =========================================================================
// COMMENT TESTS
// =========================================================================

func TestInsertComment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs("hello", int64(2), "lurker").
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "votes", "created_at"}).
			AddRow(19, 0, created))

	c, err := db.InsertComment(context.Background(), 2, "lurker", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(19), c.CommentID)
	assert.Equal(t, "lurker", c.Author)
	assert.Equal(t, 0, c.Votes)
	assert.True(t, c.CreatedAt.Equal(created))
}

func TestInsertComment_ForeignKeys(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantRef    string
	}{
		{"article", "comments_article_id_fkey", apperror.RefArticle},
		{"author", "comments_author_fkey", apperror.RefAuthor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(`INSERT INTO comments`).
				WillReturnError(&pq.Error{Code: "23503", Constraint: tt.constraint})

			_, err := db.InsertComment(context.Background(), 1, "nobody", "hello")
			assert.True(t, apperror.IsStoreError(err, apperror.ForeignKey, tt.wantRef), "got %v", err)
		})
	}
}

func TestDeleteComment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM comments WHERE comment_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM comments WHERE comment_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.DeleteComment(context.Background(), 1))

	err := db.DeleteComment(context.Background(), 1)
	assert.ErrorIs(t, err, apperror.ErrCommentNotFound)
	assert.EqualError(t, err, "Comment 1 Not Found")
}

// =========================================================================
// SEED TESTS
// =========================================================================

func TestSeed_CommitsEverything(t *testing.T) {
	db, mock := newMockDB(t)
	data, err := fixtures.Load()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE topics`).WillReturnResult(sqlmock.NewResult(0, 0))
	total := len(data.Topics) + len(data.Users) + len(data.Articles) + len(data.Comments)
	for i := 0; i < total; i++ {
		mock.ExpectExec(`INSERT INTO`).WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	require.NoError(t, db.Seed(context.Background(), data))
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	data, err := fixtures.Load()
	require.NoError(t, err)

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE topics`).WillReturnError(boom)
	mock.ExpectRollback()

	err = db.Seed(context.Background(), data)
	assert.ErrorIs(t, err, boom)
}
