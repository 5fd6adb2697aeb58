package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/news-api/internal/apperror"
	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/service"
)

type ArticleHandler struct {
	svc    *service.ArticleService
	logger *slog.Logger
}

func NewArticleHandler(svc *service.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

// HandleList serves GET /api/articles?sort_by=&order=&topic=.
//
// The list view is []ArticleSummary: the body is dropped here, at the edge,
// while the service and store keep working with full articles.
//
// r.URL.Query() silently drops pairs it cannot parse (a raw ";" for one),
// which would turn a rejected sort_by into the default. The raw query is
// parsed here instead and any malformed pair is a Bad Request.
func (h *ArticleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		writeError(w, r, h.logger, apperror.BadRequest("Bad Request"))
		return
	}

	articles, err := h.svc.List(r.Context(), params)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	summaries := make([]model.ArticleSummary, len(articles))
	for i, a := range articles {
		summaries[i] = a.Summary()
	}
	writeJSON(w, r, http.StatusOK, struct {
		Articles []model.ArticleSummary `json:"articles"`
	}{summaries})
}

// HandleGet serves GET /api/articles/{article_id}.
func (h *ArticleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	article, err := h.svc.Get(r.Context(), chi.URLParam(r, "article_id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Article *model.Article `json:"article"`
	}{article})
}

// HandleVote serves PATCH /api/articles/{article_id} with {"inc_votes": n}.
//
// IncVotes is `any` so validation can tell a missing field (nil) from a
// string or a fraction, each of which must be rejected.
func (h *ArticleHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IncVotes any `json:"inc_votes"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	article, err := h.svc.AdjustVotes(r.Context(), chi.URLParam(r, "article_id"), req.IncVotes)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Article *model.Article `json:"article"`
	}{article})
}
