// Package middleware provides HTTP middleware for the API routes.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/corepay/gateway/internal/api/shared"
	"github.com/corepay/gateway/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and installs a
// request-scoped logger carrying it, so everything logged downstream
// correlates with the response's trace_id field. Apply it early in the
// middleware chain.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
