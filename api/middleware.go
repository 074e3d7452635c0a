package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"rental-comps/utils"
)

// TraceHeader carries the request trace id in both directions.
const TraceHeader = "X-Trace-ID"

type loggerKey struct{}

// LoggerMiddleware tags each request with a trace id, hands a logger carrying
// it to the handlers and logs the outcome.
func LoggerMiddleware(logger *utils.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}
			reqLogger := logger.With("trace_id", traceID)
			w.Header().Set(TraceHeader, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			ctx := context.WithValue(r.Context(), loggerKey{}, reqLogger)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("[api] %s %s -> %d (%d bytes, %dms)",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start).Milliseconds())
		})
	}
}

func loggerFrom(ctx context.Context, fallback *utils.Logger) *utils.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*utils.Logger); ok {
		return l
	}
	return fallback
}
