package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/internal/http/middleware"
	"mahirash.com/app/internal/modules/checkout"
	"mahirash.com/app/pkg/view"
)

type CheckoutHandler struct {
	Checkout Checkout
	Currency string
}

func NewCheckoutHandler(co Checkout, currency string) *CheckoutHandler {
	return &CheckoutHandler{Checkout: co, Currency: currency}
}

type checkoutReq struct {
	Name    string `json:"name" binding:"required,max=128"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=32"`
	Address string `json:"address" binding:"required,max=512"`
}

// Place handles POST /api/checkout.
func (h *CheckoutHandler) Place(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err, &req)
		return
	}

	o, err := h.Checkout.PlaceOrder(c.Request.Context(), middleware.Cart(c), middleware.ClientID(c), checkout.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.NewOrder(o, h.Currency))
}
