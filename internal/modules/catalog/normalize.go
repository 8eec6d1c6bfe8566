package catalog

import (
	"fmt"
	"strings"
)

// Normalize converts a database document into the canonical Product shape.
// Missing prices default to zero and missing images to PlaceholderImage; a
// document without an id is rejected with ErrMalformed.
func Normalize(raw RawProduct) (Product, error) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return Product{}, fmt.Errorf("%w: missing id (name=%q)", ErrMalformed, raw.Name)
	}

	p := Product{
		ID:          id,
		Brand:       strings.TrimSpace(raw.Brand),
		Name:        strings.TrimSpace(raw.Name),
		Price:       raw.Price.Value,
		OldPrice:    raw.OldPrice.Value,
		Badge:       strings.TrimSpace(raw.Badge),
		Category:    strings.TrimSpace(raw.Category),
		Description: strings.TrimSpace(raw.Description),
		Image:       strings.TrimSpace(raw.Image),
		Images:      cleanImages(raw.Images),
		OutOfStock:  raw.OutOfStock,
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if p.Image == "" {
		p.Image = PlaceholderImage
	}
	productImages := p.Images
	if len(productImages) == 0 {
		productImages = []string{p.Image}
	}

	seen := make(map[string]struct{}, len(raw.Sizes))
	for _, rs := range raw.Sizes {
		if rs.Size == "" {
			continue
		}
		if _, dup := seen[rs.Size]; dup {
			continue
		}
		seen[rs.Size] = struct{}{}

		v := Variant{Size: rs.Size, OutOfStock: raw.OutOfStock}
		switch rs.Kind {
		case SizeObject:
			v.Price = rs.Price.Value
			v.OldPrice = rs.OldPrice.Value
			if !rs.Price.Set {
				v.Price = p.Price
			}
			if !rs.OldPrice.Set && !rs.Price.Set {
				v.OldPrice = p.OldPrice
			}
			v.OutOfStock = v.OutOfStock || rs.OutOfStock
			v.Images = cleanImages(rs.Images)
		default:
			v.Price = p.Price
			v.OldPrice = p.OldPrice
		}
		if len(v.Images) == 0 {
			v.Images = append([]string(nil), productImages...)
		}
		p.Variants = append(p.Variants, v)
	}
	return p, nil
}

func cleanImages(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
