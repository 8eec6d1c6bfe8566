package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/shared/apperr"
)

// Recovery turns a handler panic into a JSON 500. The shopper's stores are
// still closed by ClientState's deferred flush, so a panic mid-request does
// not lose a cart write that failed earlier in the same request.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("route", c.FullPath()),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		}
		if id := ClientID(c); id != "" {
			attrs = append(attrs, slog.String("client_id", id))
		}
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered", attrs...)

		Fail(c, apperr.Wrap(fmt.Errorf("panic: %v", recovered)))
		writeError(c, l)
	})
}
