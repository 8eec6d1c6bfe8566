package middleware

import (
	"context"
	"log/slog"
)

// ContextHandler adds the request and client ids found on the record's
// context to every record, so logs from the cart, wishlist and checkout
// layers can be joined to the access line.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid := RequestIDFrom(ctx); rid != "" && !hasAttr(r, "request_id") {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if id := ClientIDFrom(ctx); id != "" && !hasAttr(r, "client_id") {
		r.AddAttrs(slog.String("client_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

func hasAttr(r slog.Record, key string) bool {
	found := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			found = true
			return false
		}
		return true
	})
	return found
}
