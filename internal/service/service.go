// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Services accept raw request values (path ids as strings, decoded JSON
// fields as `any`), run them through the validation package, and only then
// call the repository. They never see *http.Request, so the same calls work
// from a CLI or a test.
//
// DEPENDENCY INJECTION:
// Each service takes the narrow repository interfaces it needs, not the whole
// Store. Tests pass hand-written fakes (see service_test.go).
package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/news-api/internal/apperror"
)

// expected reports whether err is one the client caused (a classified
// AppError or StoreError). Those are returned without an Error log line;
// anything else is a store failure worth logging.
func expected(err error) bool {
	var appErr *apperror.AppError
	var storeErr *apperror.StoreError
	return errors.As(err, &appErr) || errors.As(err, &storeErr)
}

func logFailure(logger *slog.Logger, msg string, err error, attrs ...slog.Attr) {
	if expected(err) {
		return
	}
	args := make([]any, 0, len(attrs)+1)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.String("error", err.Error()))
	logger.Error(msg, args...)
}
