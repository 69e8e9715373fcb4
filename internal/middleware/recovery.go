package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"threadline/internal/httputil"
)

// Recovery middleware recovers from panics and returns a 500 error.
// Nothing is written when the handler already sent its headers.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := wrapStatus(w)
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
						"stack", string(debug.Stack()),
					)

					if !sw.wroteHeader {
						httputil.RespondError(sw, http.StatusInternalServerError, "internal server error")
					}
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
