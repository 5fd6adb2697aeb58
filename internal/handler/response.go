package handler

// RESPONSE HELPERS:
// Every handler finishes through one of two functions:
//
//	writeJSON(w, r, http.StatusOK, envelope)
//	writeError(w, r, logger, err)
//
// go-chi/render does the encoding: render.Status stores the status code in the
// request context and render.JSON writes the Content-Type, the status and the
// body in the right order.
//
// CONSISTENT ERROR FORMAT:
// Every error response has the same shape:
//
//	{"msg": "Article Not Found"}

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/apperror"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// errorRule maps one class of error to a response. rules is checked top to
// bottom and the first match wins, so store-level rules come before the
// generic AppError rule.
type errorRule struct {
	match   func(err error) bool
	status  int
	message func(err error) string
}

func fixed(msg string) func(error) string {
	return func(error) string { return msg }
}

var rules = []errorRule{
	{
		match:   func(err error) bool { return apperror.IsStoreError(err, apperror.InvalidText, "") },
		status:  http.StatusBadRequest,
		message: fixed("Bad Request"),
	},
	{
		match:   func(err error) bool { return apperror.IsStoreError(err, apperror.OutOfRange, "") },
		status:  http.StatusBadRequest,
		message: fixed("Bad Request"),
	},
	{
		match:   func(err error) bool { return apperror.IsStoreError(err, apperror.ForeignKey, apperror.RefArticle) },
		status:  http.StatusNotFound,
		message: fixed("Article Not Found"),
	},
	{
		match:   func(err error) bool { return apperror.IsStoreError(err, apperror.ForeignKey, apperror.RefAuthor) },
		status:  http.StatusBadRequest,
		message: fixed("Invalid Username"),
	},
	{
		match:   func(err error) bool { return errors.Is(err, apperror.ErrBadRequest) },
		status:  http.StatusBadRequest,
		message: appMessage,
	},
	{
		match:   func(err error) bool { return errors.Is(err, apperror.ErrNotFound) },
		status:  http.StatusNotFound,
		message: appMessage,
	},
	{
		// A missing comment is reported as 400, unlike a missing article.
		match:   func(err error) bool { return errors.Is(err, apperror.ErrCommentNotFound) },
		status:  http.StatusBadRequest,
		message: appMessage,
	},
}

func appMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return http.StatusText(http.StatusBadRequest)
}

// translate picks the status and message for err.
func translate(err error) (int, string) {
	for _, rule := range rules {
		if rule.match(err) {
			return rule.status, rule.message(err)
		}
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// writeError sends err as {"msg": ...}. Only 500s are logged: everything
// else is a client mistake and already described by the response.
//
// NEVER expose internal error details to the client: the raw error may
// contain SQL or file paths, so a 500 always carries the generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, msg := translate(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, r, status, ErrorResponse{Msg: msg})
}

// NotFound answers any request no route matched, including a known path
// with the wrong method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusNotFound, ErrorResponse{Msg: "Not Found"})
}
