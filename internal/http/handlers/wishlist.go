package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/http/middleware"
	"mahirash.com/app/pkg/view"
)

type WishlistHandler struct {
	Catalog Catalog
}

func NewWishlistHandler(cat Catalog) *WishlistHandler {
	return &WishlistHandler{Catalog: cat}
}

type toggleReq struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *WishlistHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, view.NewWishlist(middleware.Wishlist(c)))
}

// Toggle handles POST /api/wishlist/toggle.
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	wl := middleware.Wishlist(c)
	// removing must work even after the product left the catalog
	if wl.Contains(req.ProductID) {
		wl.Remove(c.Request.Context(), req.ProductID)
		c.JSON(http.StatusOK, gin.H{
			"in_wishlist": false,
			"wishlist":    view.NewWishlist(wl),
			"notice":      view.NewNotice(view.NoticeInfo, "Removed from wishlist."),
		})
		return
	}

	p, err := h.Catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		fail(c, err)
		return
	}
	in := wl.Toggle(c.Request.Context(), p)
	c.JSON(http.StatusOK, gin.H{
		"in_wishlist": in,
		"wishlist":    view.NewWishlist(wl),
		"notice":      view.NewNotice(view.NoticeSuccess, p.Name+" added to wishlist."),
	})
}

// Contains handles GET /api/wishlist/:product_id.
func (h *WishlistHandler) Contains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"in_wishlist": middleware.Wishlist(c).Contains(c.Param("product_id"))})
}

// Remove handles DELETE /api/wishlist/:product_id.
func (h *WishlistHandler) Remove(c *gin.Context) {
	wl := middleware.Wishlist(c)
	wl.Remove(c.Request.Context(), c.Param("product_id"))
	c.JSON(http.StatusOK, view.NewWishlist(wl))
}
