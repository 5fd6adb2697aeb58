package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/service"
)

type CommentHandler struct {
	svc    *service.CommentService
	logger *slog.Logger
}

func NewCommentHandler(svc *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, logger: logger}
}

// HandleList serves GET /api/articles/{article_id}/comments.
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListForArticle(r.Context(), chi.URLParam(r, "article_id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Comments []model.Comment `json:"comments"`
	}{comments})
}

// HandleCreate serves POST /api/articles/{article_id}/comments.
//
// REQUEST BODY: {"username": "lurker", "comment": "first!"}
// "body" is accepted as an alias for "comment"; when both are sent, "comment"
// wins.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username any `json:"username"`
		Comment  any `json:"comment"`
		Body     any `json:"body"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	text := req.Comment
	if text == nil {
		text = req.Body
	}

	comment, err := h.svc.Add(r.Context(), chi.URLParam(r, "article_id"), req.Username, text)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, struct {
		ReturnedComment *model.Comment `json:"returnedComment"`
	}{comment})
}

// HandleDelete serves DELETE /api/comments/{comment_id}: 204 with no body.
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "comment_id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.NoContent(w, r)
}
