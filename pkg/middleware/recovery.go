package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "tourism/pkg/errors"
	httputil "tourism/pkg/http"
	"tourism/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, trace := withRequestTrace(r)
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				attrs := []any{
					"request_id", trace.requestID,
					"panic", p,
					"method", r.Method,
					"path", r.URL.Path,
				}
				attrs = append(attrs, trace.attrs()...)
				log.Error("Panic recovered", append(attrs, "stack", string(debug.Stack()))...)

				httputil.WriteError(w, apperrors.Internal("Handler panicked", fmt.Errorf("panic: %v", p)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
