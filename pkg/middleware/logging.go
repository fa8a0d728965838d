package middleware

import (
	"context"
	"net/http"
	"time"

	"tourism/pkg/logger"
	"tourism/pkg/model"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// requestTrace is filled in by inner middleware (request id, authenticated
// actor) and read back by the outer logging and recovery middleware.
type requestTrace struct {
	requestID string
	actor     model.Actor
}

type requestTraceKey struct{}

func withRequestTrace(r *http.Request) (*http.Request, *requestTrace) {
	if trace, ok := r.Context().Value(requestTraceKey{}).(*requestTrace); ok {
		return r, trace
	}
	trace := &requestTrace{}
	return r.WithContext(context.WithValue(r.Context(), requestTraceKey{}, trace)), trace
}

func recordActor(ctx context.Context, actor model.Actor) {
	if trace, ok := ctx.Value(requestTraceKey{}).(*requestTrace); ok {
		trace.actor = actor
	}
}

func (t *requestTrace) attrs() []any {
	if t.actor.ID == "" {
		return nil
	}
	return []any{"actor_id", t.actor.ID, "actor_role", string(t.actor.Role)}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func RequestLogging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" || len(requestID) > 64 {
				requestID = uuid.New().String()
			}

			r = r.WithContext(logger.ContextWithRequestID(r.Context(), requestID))
			r, trace := withRequestTrace(r)
			trace.requestID = requestID
			w.Header().Set(RequestIDHeader, requestID)

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			log.Info("HTTP request started",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			next.ServeHTTP(wrapped, r)

			attrs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			attrs = append(attrs, trace.attrs()...)
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				log.Error("HTTP request completed", attrs...)
			case wrapped.statusCode >= http.StatusBadRequest:
				log.Warn("HTTP request completed", attrs...)
			default:
				log.Info("HTTP request completed", attrs...)
			}
		})
	}
}
