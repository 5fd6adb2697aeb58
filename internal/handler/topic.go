package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/service"
)

type TopicHandler struct {
	svc    *service.TopicService
	logger *slog.Logger
}

func NewTopicHandler(svc *service.TopicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{svc: svc, logger: logger}
}

// HandleList serves GET /api/topics as {"topics": [...]}.
func (h *TopicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Topics []model.Topic `json:"topics"`
	}{topics})
}
