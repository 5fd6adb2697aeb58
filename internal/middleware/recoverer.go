package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"
)

// Recoverer turns a panic in a later handler into 500 {"msg": "Internal
// Server Error"}, the same body every other failure gets. The panic value and
// stack go to the log, never to the client.
//
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logger.Error("panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, map[string]string{"msg": "Internal Server Error"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
