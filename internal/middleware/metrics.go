package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/news-api/internal/metrics"
)

// Metrics records request count, latency and in-flight requests.
//
// The route label is chi's matched pattern, read AFTER the handler ran
// (routing happens inside next). Unmatched requests are labelled "unmatched"
// so random 404 paths cannot blow up the label set.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)
			m.RequestStarted()

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			m.RequestFinished(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
