package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/news-api/internal/fixtures"
	"github.com/sakif/news-api/internal/handler"
	"github.com/sakif/news-api/internal/repository/sqlite"
	"github.com/sakif/news-api/internal/service"
)

// newRouter wires the handlers to services over a freshly seeded in-memory
// store. The routes mirror the server's, without its middleware.
func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	data, err := fixtures.Load()
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), data))

	articles := handler.NewArticleHandler(service.NewArticleService(store, store, logger), logger)
	comments := handler.NewCommentHandler(service.NewCommentService(store, store, logger), logger)

	r := chi.NewRouter()
	r.Get("/api", handler.NewAPIHandler().HandleEndpoints)
	r.Get("/api/topics", handler.NewTopicHandler(service.NewTopicService(store, logger), logger).HandleList)
	r.Get("/api/users", handler.NewUserHandler(service.NewUserService(store, logger), logger).HandleList)
	r.Get("/api/articles", articles.HandleList)
	r.Get("/api/articles/{article_id}", articles.HandleGet)
	r.Patch("/api/articles/{article_id}", articles.HandleVote)
	r.Get("/api/articles/{article_id}/comments", comments.HandleList)
	r.Post("/api/articles/{article_id}/comments", comments.HandleCreate)
	r.Delete("/api/comments/{comment_id}", comments.HandleDelete)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPIHandler_HandleEndpoints(t *testing.T) {
	rr := do(t, newRouter(t), http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Endpoints map[string]json.RawMessage `json:"endpoints"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Contains(t, res.Endpoints, "GET /api/topics")
	assert.Contains(t, res.Endpoints, "DELETE /api/comments/:comment_id")
}

func TestTopicHandler_HandleList(t *testing.T) {
	rr := do(t, newRouter(t), http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Topics []map[string]any `json:"topics"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Len(t, res.Topics, 3)
	for _, tp := range res.Topics {
		assert.Contains(t, tp, "slug")
		assert.Contains(t, tp, "description")
	}
}

func TestArticleHandler_HandleVote(t *testing.T) {
	h := newRouter(t)

	t.Run("valid", func(t *testing.T) {
		rr := do(t, h, http.MethodPatch, "/api/articles/1", `{"inc_votes": -40}`)
		require.Equal(t, http.StatusOK, rr.Code)
		var res struct {
			Article map[string]any `json:"article"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.EqualValues(t, 60, res.Article["votes"])
	})

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"string votes", "/api/articles/1", `{"inc_votes": "cats"}`, 400, "Votes must be a valid number"},
		{"missing votes", "/api/articles/1", `{}`, 400, "Votes must be a valid number"},
		{"empty body", "/api/articles/1", ``, 400, "Votes must be a valid number"},
		{"malformed json", "/api/articles/1", `{"inc_votes":`, 400, "Bad Request"},
		{"bad id", "/api/articles/banana", `{"inc_votes": 1}`, 400, "Bad Request"},
		{"missing article", "/api/articles/9999", `{"inc_votes": 1}`, 404, "Article Not Found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, `{"msg":"`+tt.wantMsg+`"}`, rr.Body.String())
		})
	}
}

func TestCommentHandler_HandleCreate(t *testing.T) {
	h := newRouter(t)

	t.Run("created", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/articles/2/comments", `{"username":"lurker","comment":"first!"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		var res struct {
			ReturnedComment map[string]any `json:"returnedComment"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "lurker", res.ReturnedComment["author"])
		assert.Equal(t, "first!", res.ReturnedComment["body"])
		assert.EqualValues(t, 0, res.ReturnedComment["votes"])
		assert.EqualValues(t, 2, res.ReturnedComment["article_id"])
	})

	t.Run("body alias", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/articles/2/comments", `{"username":"lurker","body":"second"}`)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"unknown user", "/api/articles/1/comments", `{"username":"nobody","comment":"hi"}`, 400, "Invalid Username"},
		{"unknown article", "/api/articles/9999/comments", `{"username":"lurker","comment":"hi"}`, 404, "Article Not Found"},
		{"blank", "/api/articles/1/comments", `{"username":"lurker","comment":""}`, 400, "Comment cannot be blank"},
		{"numeric comment", "/api/articles/1/comments", `{"username":"lurker","comment":5}`, 400, "Invalid Comment Type"},
		{"missing username", "/api/articles/1/comments", `{"comment":"hi"}`, 400, "must have both username and body properties"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, `{"msg":"`+tt.wantMsg+`"}`, rr.Body.String())
		})
	}
}

func TestCommentHandler_HandleDelete(t *testing.T) {
	h := newRouter(t)

	rr := do(t, h, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = do(t, h, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg":"Comment 1 Not Found"}`, rr.Body.String())
}
