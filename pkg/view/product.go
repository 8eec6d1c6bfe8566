package view

import (
	"github.com/shopspring/decimal"

	"mahirash.com/app/internal/modules/catalog"
)

type Variant struct {
	Size          string          `json:"size"`
	Price         decimal.Decimal `json:"price"`
	PriceLabel    string          `json:"price_label"`
	OldPrice      decimal.Decimal `json:"old_price,omitempty"`
	OldPriceLabel string          `json:"old_price_label,omitempty"`
	Discount      int             `json:"discount,omitempty"`
	OutOfStock    bool            `json:"out_of_stock"`
	Images        []string        `json:"images"`
}

func NewVariant(v catalog.Variant, currency string) Variant {
	out := Variant{
		Size:       v.Size,
		Price:      v.Price,
		PriceLabel: Money(v.Price, currency),
		Discount:   v.Discount(),
		OutOfStock: v.OutOfStock,
		Images:     v.Images,
	}
	if out.Discount > 0 {
		out.OldPrice = v.OldPrice
		out.OldPriceLabel = Money(v.OldPrice, currency)
	}
	return out
}

// ProductCard is a listing entry: the product with its displayed variant.
type ProductCard struct {
	ID       string   `json:"id"`
	Brand    string   `json:"brand"`
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Badge    string   `json:"badge,omitempty"`
	Image    string   `json:"image"`
	Sizes    []string `json:"sizes,omitempty"`
	Variant  Variant  `json:"variant"`
}

func NewProductCard(p catalog.Product, currency string, prefs ...string) ProductCard {
	v := catalog.Resolve(p, prefs...)
	return ProductCard{
		ID:       p.ID,
		Brand:    p.Brand,
		Name:     p.Name,
		Category: p.Category,
		Badge:    p.Badge,
		Image:    v.Cover(),
		Sizes:    catalog.AvailableSizes(p),
		Variant:  NewVariant(v, currency),
	}
}

type ProductDetail struct {
	ProductCard
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
}

// NewProductDetail renders a product page. The selected variant follows the
// size hints; Variants lists every size in display order.
func NewProductDetail(p catalog.Product, currency string, prefs ...string) ProductDetail {
	d := ProductDetail{
		ProductCard: NewProductCard(p, currency, prefs...),
		Description: p.Description,
		Images:      p.Images,
	}
	for _, size := range catalog.AvailableSizes(p) {
		if v, ok := p.Variant(size); ok {
			d.Variants = append(d.Variants, NewVariant(v, currency))
		}
	}
	if len(d.Variants) == 0 {
		d.Variants = []Variant{d.Variant}
	}
	return d
}
