package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/http/clientcookie"
	"mahirash.com/app/internal/modules/cart"
	"mahirash.com/app/internal/modules/wishlist"
	"mahirash.com/app/internal/storage"
)

const (
	ctxKeyClientID = "client_id"
	ctxKeyCart     = "cart"
	ctxKeyWishlist = "wishlist"
)

type clientIDKey struct{}

// ClientState opens the shopper's cart and wishlist for the request and
// closes them once the handlers are done.
func ClientState(ck *clientcookie.Codec, st storage.Storage, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ck.Ensure(c)
		ctx := context.WithValue(c.Request.Context(), clientIDKey{}, id)
		c.Request = c.Request.WithContext(ctx)

		crt := cart.Open(ctx, st, "cart/"+id, l)
		wl := wishlist.Open(ctx, st, "wishlist/"+id, l)
		defer func() {
			crt.Close(ctx)
			wl.Close(ctx)
		}()

		c.Set(ctxKeyClientID, id)
		c.Set(ctxKeyCart, crt)
		c.Set(ctxKeyWishlist, wl)
		c.Next()
	}
}

func ClientID(c *gin.Context) string { return c.GetString(ctxKeyClientID) }

// ClientIDFrom reads the id ClientState stored on a request context.
func ClientIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}

// Cart returns the request's cart. Outside ClientState it is a memory-only
// store.
func Cart(c *gin.Context) *cart.Store {
	if v, ok := c.Get(ctxKeyCart); ok {
		if s, ok := v.(*cart.Store); ok {
			return s
		}
	}
	return cart.Open(c.Request.Context(), nil, "", nil)
}

func Wishlist(c *gin.Context) *wishlist.Store {
	if v, ok := c.Get(ctxKeyWishlist); ok {
		if s, ok := v.(*wishlist.Store); ok {
			return s
		}
	}
	return wishlist.Open(c.Request.Context(), nil, "", nil)
}
