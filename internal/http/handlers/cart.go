package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/http/middleware"
	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/shared/apperr"
	"mahirash.com/app/pkg/view"
)

type CartHandler struct {
	Catalog  Catalog
	Currency string
}

func NewCartHandler(cat Catalog, currency string) *CartHandler {
	return &CartHandler{Catalog: cat, Currency: currency}
}

type addItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Qty       int    `json:"qty" binding:"omitempty,min=1,max=99"`
}

type updateItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1,max=99"`
}

type removeItemReq struct {
	ProductID string `form:"product_id" binding:"required"`
	Size      string `form:"size" binding:"required"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, view.NewCart(middleware.Cart(c), h.Currency))
}

// Add handles POST /api/cart/items. Without a size the displayed variant is
// added.
func (h *CartHandler) Add(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	p, err := h.Catalog.Get(c.Request.Context(), strings.TrimSpace(req.ProductID))
	if err != nil {
		fail(c, err)
		return
	}

	var v catalog.Variant
	if size := strings.TrimSpace(req.Size); size != "" {
		var ok bool
		if v, ok = p.Variant(size); !ok {
			fail(c, apperr.InvalidErr("This size is not available.", map[string]string{"size": "Unknown size."}))
			return
		}
	} else {
		v = catalog.Resolve(p, h.Catalog.PreferredSizes()...)
	}

	crt := middleware.Cart(c)
	line := crt.Add(c.Request.Context(), p, v, req.Qty)
	c.JSON(http.StatusOK, view.CartAdded{
		Line:       view.NewCartLine(line, h.Currency),
		Cart:       view.NewCart(crt, h.Currency),
		Notice:     view.NewNotice(view.NoticeSuccess, p.Name+" added to cart."),
		DrawerOpen: true,
	})
}

// Update handles PATCH /api/cart/items.
func (h *CartHandler) Update(c *gin.Context) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}
	crt := middleware.Cart(c)
	if _, ok := crt.SetQuantity(c.Request.Context(), req.ProductID, req.Size, req.Qty); !ok {
		fail(c, apperr.NotFoundErr("This item is not in your cart."))
		return
	}
	c.JSON(http.StatusOK, view.NewCart(crt, h.Currency))
}

// Remove handles DELETE /api/cart/items?product_id=&size=. Removing an
// absent line is not an error.
func (h *CartHandler) Remove(c *gin.Context) {
	var req removeItemReq
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFail(c, err, &req)
		return
	}
	crt := middleware.Cart(c)
	crt.Remove(c.Request.Context(), req.ProductID, req.Size)
	c.JSON(http.StatusOK, view.NewCart(crt, h.Currency))
}
