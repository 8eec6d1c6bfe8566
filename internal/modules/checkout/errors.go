package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCartEmpty = errors.New("cart is empty")

const (
	ReasonGone       = "gone"
	ReasonNoSize     = "size_unavailable"
	ReasonOutOfStock = "out_of_stock"
)

type OutOfStockItem struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Reason    string `json:"reason"`
}

// OutOfStockError lists every cart line that cannot be purchased.
type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	parts := make([]string, len(e.Items))
	for i, it := range e.Items {
		parts[i] = fmt.Sprintf("%s/%s (%s)", it.ProductID, it.Size, it.Reason)
	}
	return "out of stock: " + strings.Join(parts, ", ")
}
