package http

import (
	"net/http"
	"time"

	"github.com/medward/medward/internal/logger"
)

// withLogging emits one access-log line per request with method, uri,
// status, duration and response size. The status and size come from the
// responseWriter decorator since the stdlib writer does not expose them.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
