package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/shared/apperr"
)

// Fail records err on the context and stops the chain. ErrorHandler renders
// it once the handlers return.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		writeError(c, l)
	}
}

func writeError(c *gin.Context, l *slog.Logger) {
	if c.Writer.Written() || len(c.Errors) == 0 {
		return
	}

	err := c.Errors.Last().Err
	status := apperr.HTTPStatus(err)
	rid := GetRequestID(c)

	l.LogAttrs(c.Request.Context(), statusLevel(status), "request_failed",
		slog.String("request_id", rid),
		slog.Int("status", status),
		slog.Any("err", err),
	)

	payload := gin.H{
		"error":      apperr.PublicMessage(err),
		"request_id": rid,
	}
	if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
		payload["fields"] = ae.Fields
	}
	c.AbortWithStatusJSON(status, payload)
}
