package checkout

import (
	"context"
	"errors"

	"mahirash.com/app/internal/modules/cart"
	"mahirash.com/app/internal/modules/catalog"
)

// checkStock re-reads every line's product and reports lines whose product
// is gone, whose size no longer exists, or whose variant is out of stock.
func (s *Service) checkStock(ctx context.Context, lines []cart.Line) error {
	var oos []OutOfStockItem
	seen := make(map[string]catalog.Product, len(lines))

	for _, l := range lines {
		p, ok := seen[l.Product.ID]
		if !ok {
			var err error
			p, err = s.products.Get(ctx, l.Product.ID)
			switch {
			case errors.Is(err, catalog.ErrNotFound):
				oos = append(oos, OutOfStockItem{ProductID: l.Product.ID, Size: l.Variant.Size, Reason: ReasonGone})
				continue
			case err != nil:
				return err
			}
			seen[l.Product.ID] = p
		}

		v, ok := p.Variant(l.Variant.Size)
		switch {
		case !ok:
			oos = append(oos, OutOfStockItem{ProductID: l.Product.ID, Size: l.Variant.Size, Reason: ReasonNoSize})
		case v.OutOfStock:
			oos = append(oos, OutOfStockItem{ProductID: l.Product.ID, Size: l.Variant.Size, Reason: ReasonOutOfStock})
		}
	}

	if len(oos) > 0 {
		return &OutOfStockError{Items: oos}
	}
	return nil
}
