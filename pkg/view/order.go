package view

import (
	"time"

	"mahirash.com/app/internal/modules/orders"
)

type OrderItem struct {
	ProductID string `json:"product_id"`
	Brand     string `json:"brand"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
	Image     string `json:"image,omitempty"`
}

type Order struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	Customer   string      `json:"customer"`
	Email      string      `json:"email"`
	Address    string      `json:"address"`
	Items      []OrderItem `json:"items"`
	TotalLabel string      `json:"total_label"`
	CreatedAt  time.Time   `json:"created_at"`
}

func NewOrder(o orders.Order, currency string) Order {
	out := Order{
		ID:         o.ID,
		Status:     o.Status,
		Customer:   o.CustomerName,
		Email:      o.CustomerEmail,
		Address:    o.Address,
		Items:      make([]OrderItem, 0, len(o.Items)),
		TotalLabel: Money(o.Total, currency),
		CreatedAt:  o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItem{
			ProductID: it.ProductID,
			Brand:     it.Brand,
			Name:      it.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: Money(it.UnitPrice, currency),
			LineTotal: Money(it.LineTotal(), currency),
			Image:     it.Image,
		})
	}
	return out
}
