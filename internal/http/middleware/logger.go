package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one "http_request" line per request. Requests that went
// through ClientState also report the shopper's cart and wishlist sizes as
// they stood when the handler returned.
func Logger(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes", c.Writer.Size()),
		}
		attrs = append(attrs, shopperAttrs(c)...)
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}
		l.LogAttrs(c.Request.Context(), statusLevel(status), "http_request", attrs...)
	}
}

func shopperAttrs(c *gin.Context) []slog.Attr {
	id := ClientID(c)
	if id == "" {
		return nil
	}
	attrs := []slog.Attr{slog.String("client_id", id)}
	if _, ok := c.Get(ctxKeyCart); ok {
		crt := Cart(c)
		attrs = append(attrs, slog.Int("cart_lines", crt.Len()), slog.Int("cart_units", crt.Count()))
	}
	if _, ok := c.Get(ctxKeyWishlist); ok {
		attrs = append(attrs, slog.Int("wishlist_items", Wishlist(c).Len()))
	}
	return attrs
}

// statusLevel is Error for 5xx, Warn for 4xx and Info otherwise.
func statusLevel(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
