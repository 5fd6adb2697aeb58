package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/news-api/internal/model"
	"github.com/sakif/news-api/internal/service"
)

type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// HandleList serves GET /api/users as {"users": [...]}.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Users []model.User `json:"users"`
	}{users})
}
