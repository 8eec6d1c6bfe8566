package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/shared/apperr"
	"mahirash.com/app/pkg/view"
)

type ProductsHandler struct {
	Catalog  Catalog
	Currency string
}

func NewProductsHandler(cat Catalog, currency string) *ProductsHandler {
	return &ProductsHandler{Catalog: cat, Currency: currency}
}

type listQuery struct {
	Category string `form:"category"`
	Brand    string `form:"brand"`
	Size     string `form:"size"`
	Query    string `form:"q"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	InStock  bool   `form:"in_stock"`
	Sort     string `form:"sort" binding:"omitempty,oneof=price_asc price_desc name"`
}

func (q listQuery) filter() (catalog.Filter, map[string]string) {
	f := catalog.Filter{
		Category: strings.TrimSpace(q.Category),
		Brand:    strings.TrimSpace(q.Brand),
		Size:     strings.TrimSpace(q.Size),
		Query:    strings.TrimSpace(q.Query),
		InStock:  q.InStock,
		Sort:     q.Sort,
	}
	bad := map[string]string{}
	for key, raw := range map[string]string{"min_price": q.MinPrice, "max_price": q.MaxPrice} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			bad[key] = "Must be a non-negative amount."
			continue
		}
		if key == "min_price" {
			f.MinPrice = decimal.NewNullDecimal(d)
		} else {
			f.MaxPrice = decimal.NewNullDecimal(d)
		}
	}
	return f, bad
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFail(c, err, &q)
		return
	}
	f, bad := q.filter()
	if len(bad) > 0 {
		fail(c, apperr.InvalidErr("Please check the highlighted fields.", bad))
		return
	}

	f.Prefs = h.Catalog.PreferredSizes()
	items := h.Catalog.List(c.Request.Context(), f)
	cards := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, view.NewProductCard(p, h.Currency, f.PrefsFor(p)...))
	}
	c.JSON(http.StatusOK, gin.H{"items": cards, "count": len(cards)})
}

// Detail handles GET /api/products/:id. The optional size query is the
// variant hint.
func (h *ProductsHandler) Detail(c *gin.Context) {
	p, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	prefs := h.Catalog.PreferredSizes()
	if size := strings.TrimSpace(c.Query("size")); size != "" {
		if label, ok := p.MatchSize(size); ok {
			size = label
		}
		prefs = append([]string{size}, prefs...)
	}
	c.JSON(http.StatusOK, view.NewProductDetail(p, h.Currency, prefs...))
}

// Sizes handles GET /api/sizes.
func (h *ProductsHandler) Sizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sizes": h.Catalog.Sizes(c.Request.Context())})
}
