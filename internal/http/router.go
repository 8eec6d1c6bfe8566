package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/http/clientcookie"
	"mahirash.com/app/internal/http/handlers"
	"mahirash.com/app/internal/http/middleware"
	"mahirash.com/app/internal/storage"
)

type Deps struct {
	Logger   *slog.Logger
	Catalog  handlers.Catalog
	Checkout handlers.Checkout
	Showcase handlers.Showcase
	State    storage.Storage
	Cookie   *clientcookie.Codec
	Currency string
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found.", "request_id": middleware.GetRequestID(c)})
	})

	r.GET("/healthz", handlers.Healthz)

	products := handlers.NewProductsHandler(d.Catalog, d.Currency)
	api := r.Group("/api")
	api.GET("/products", products.List)
	api.GET("/products/:id", products.Detail)
	api.GET("/sizes", products.Sizes)

	if d.Showcase != nil {
		api.GET("/showcase", handlers.NewShowcaseHandler(d.Showcase, d.Currency).Get)
	}

	state := api.Group("", middleware.ClientState(d.Cookie, d.State, logger))

	crt := handlers.NewCartHandler(d.Catalog, d.Currency)
	state.GET("/cart", crt.Get)
	state.POST("/cart/items", crt.Add)
	state.PATCH("/cart/items", crt.Update)
	state.DELETE("/cart/items", crt.Remove)

	wl := handlers.NewWishlistHandler(d.Catalog)
	state.GET("/wishlist", wl.Get)
	state.POST("/wishlist/toggle", wl.Toggle)
	state.GET("/wishlist/:product_id", wl.Contains)
	state.DELETE("/wishlist/:product_id", wl.Remove)

	if d.Checkout != nil {
		state.POST("/checkout", handlers.NewCheckoutHandler(d.Checkout, d.Currency).Place)
	}

	return r
}
