package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// Filter narrows a full catalog scan. Zero fields match everything.
// Price bounds and price sorting use the price of the resolved variant.
type Filter struct {
	Category string
	Brand    string
	Size     string
	Query    string
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
	InStock  bool
	Sort     string
	Prefs    []string
}

func (f Filter) Match(p Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.Size != "" {
		if _, ok := p.MatchSize(f.Size); !ok {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(p.Brand + " " + p.Name + " " + p.Category)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	v := Resolve(p, f.PrefsFor(p)...)
	if f.InStock && v.OutOfStock {
		return false
	}
	if f.MinPrice.Valid && v.Price.LessThan(f.MinPrice.Decimal) {
		return false
	}
	if f.MaxPrice.Valid && v.Price.GreaterThan(f.MaxPrice.Decimal) {
		return false
	}
	return true
}

// Apply returns the matching products in the requested order. The input is
// left untouched.
func (f Filter) Apply(items []Product) []Product {
	out := make([]Product, 0, len(items))
	for _, p := range items {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	price := func(p Product) decimal.Decimal { return Resolve(p, f.PrefsFor(p)...).Price }
	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return price(out[i]).LessThan(price(out[j]))
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return price(out[i]).GreaterThan(price(out[j]))
		})
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

// PrefsFor makes a size filter steer variant resolution too, so the price
// shown is the price of the size the shopper filtered on. The filter matches
// sizes without regard to case, so the hint is p's own spelling of the label.
func (f Filter) PrefsFor(p Product) []string {
	if f.Size == "" {
		return f.Prefs
	}
	label, ok := p.MatchSize(f.Size)
	if !ok {
		return f.Prefs
	}
	return append([]string{label}, f.Prefs...)
}
