package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// slowRequestThreshold flags requests that overrun their latency budget. The
// compute endpoint fans out to Mapbox, so a slow entry usually points at a
// degraded provider rather than this service.
const slowRequestThreshold = 5 * time.Second

// Logger returns middleware that writes one structured line per request.
// Server errors log at error level and client errors at warn, so estimate
// validation noise stays out of error alerting.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)

			var evt *zerolog.Event
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				evt = log.Error()
			case ww.Status() >= http.StatusBadRequest:
				evt = log.Warn()
			default:
				evt = log.Info()
			}

			evt = evt.
				Str("request_id", GetRequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent())

			// The route pattern groups log lines per endpoint; raw paths
			// would split the estimate endpoint from its rate-limited twin.
			if route := chi.RouteContext(r.Context()); route != nil {
				if pattern := route.RoutePattern(); pattern != "" {
					evt = evt.Str("route", pattern)
				}
			}

			if spanCtx := trace.SpanContextFromContext(r.Context()); spanCtx.HasTraceID() {
				evt = evt.Str("trace_id", spanCtx.TraceID().String())
			}

			if duration > slowRequestThreshold {
				evt = evt.Bool("slow", true)
			}

			evt.Msg("request completed")
		})
	}
}
