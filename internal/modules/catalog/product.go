package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultSize labels the variant synthesized for products sold in a single size.
	DefaultSize = "default"

	PlaceholderImage = "/static/img/placeholder.webp"
)

type Product struct {
	ID          string          `json:"id"`
	Brand       string          `json:"brand"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	OldPrice    decimal.Decimal `json:"old_price"` // zero when not discounted
	Badge       string          `json:"badge,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
	// OutOfStock marks the whole product sold out; the synthesized default
	// variant carries it.
	OutOfStock bool `json:"out_of_stock,omitempty"`
}

type Variant struct {
	Size       string          `json:"size"`
	Price      decimal.Decimal `json:"price"`
	OldPrice   decimal.Decimal `json:"old_price"`
	Images     []string        `json:"images"`
	OutOfStock bool            `json:"out_of_stock"`
}

// Discount returns the whole percent saved against OldPrice.
func (v Variant) Discount() int {
	if !v.OldPrice.IsPositive() || v.OldPrice.LessThanOrEqual(v.Price) {
		return 0
	}
	pct := v.OldPrice.Sub(v.Price).Div(v.OldPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// Cover is the first image of the variant, or the placeholder.
func (v Variant) Cover() string {
	if len(v.Images) > 0 && v.Images[0] != "" {
		return v.Images[0]
	}
	return PlaceholderImage
}

// Variant looks up a variant by its exact size label.
func (p Product) Variant(size string) (Variant, bool) {
	if len(p.Variants) == 0 {
		if size == DefaultSize {
			return p.defaultVariant(), true
		}
		return Variant{}, false
	}
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}

// MatchSize finds the variant label matching size without regard to case.
func (p Product) MatchSize(size string) (string, bool) {
	for _, v := range p.Variants {
		if strings.EqualFold(v.Size, size) {
			return v.Size, true
		}
	}
	return "", false
}

// Ref is the slice of a product that carts and wishlists keep.
type Ref struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (p Product) Ref() Ref {
	img := p.Image
	if img == "" && len(p.Images) > 0 {
		img = p.Images[0]
	}
	if img == "" && len(p.Variants) > 0 {
		img = p.Variants[0].Cover()
	}
	if img == "" {
		img = PlaceholderImage
	}
	return Ref{ID: p.ID, Brand: p.Brand, Name: p.Name, Image: img}
}

func (p Product) defaultVariant() Variant {
	imgs := p.Images
	if len(imgs) == 0 && p.Image != "" {
		imgs = []string{p.Image}
	}
	if len(imgs) == 0 {
		imgs = []string{PlaceholderImage}
	}
	return Variant{
		Size:       DefaultSize,
		Price:      p.Price,
		OldPrice:   p.OldPrice,
		Images:     append([]string(nil), imgs...),
		OutOfStock: p.OutOfStock,
	}
}
