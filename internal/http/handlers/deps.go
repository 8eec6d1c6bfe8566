package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/http/middleware"
	"mahirash.com/app/internal/http/validation"
	"mahirash.com/app/internal/modules/cart"
	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/modules/checkout"
	"mahirash.com/app/internal/modules/orders"
	"mahirash.com/app/internal/modules/showcase"
	"mahirash.com/app/internal/shared/apperr"
)

// Catalog is the read side the handlers need; *catalog.Service implements it.
type Catalog interface {
	List(ctx context.Context, f catalog.Filter) []catalog.Product
	Get(ctx context.Context, id string) (catalog.Product, error)
	Sizes(ctx context.Context) []string
	PreferredSizes() []string
}

type Checkout interface {
	PlaceOrder(ctx context.Context, c *cart.Store, clientID string, cu checkout.Customer) (orders.Order, error)
}

type Showcase interface {
	Window() []showcase.Card
}

var errProductNotFound = apperr.NotFoundErr("This product is no longer available.")

// fail maps domain errors onto apperr kinds before handing them to the
// error handler.
func fail(c *gin.Context, err error) {
	var oos *checkout.OutOfStockError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		err = errProductNotFound
	case errors.Is(err, checkout.ErrCartEmpty):
		err = apperr.InvalidErr("Your cart is empty.", nil)
	case errors.As(err, &oos):
		fields := make(map[string]string, len(oos.Items))
		for _, it := range oos.Items {
			fields[it.ProductID+"/"+it.Size] = it.Reason
		}
		err = &apperr.AppError{
			Kind:      apperr.Conflict,
			PublicMsg: "Some items in your cart can no longer be ordered.",
			Fields:    fields,
			Err:       err,
		}
	}
	if _, ok := apperr.As(err); !ok {
		err = apperr.Wrap(err)
	}
	middleware.Fail(c, err)
}

func bindFail(c *gin.Context, err error, dst any) {
	middleware.Fail(c, apperr.InvalidErr("Please check the highlighted fields.", validation.FromBindError(err, dst)))
}
