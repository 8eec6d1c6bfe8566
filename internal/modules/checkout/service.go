package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mahirash.com/app/internal/mailer"
	"mahirash.com/app/internal/modules/cart"
	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/modules/email"
	"mahirash.com/app/internal/modules/orders"
)

type Products interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}

type Orders interface {
	Create(ctx context.Context, o *orders.Order) error
}

type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type Service struct {
	products Products
	orders   Orders
	mail     mailer.Service
	from     string
	fromName string
	currency string
	logger   *slog.Logger
}

type Options struct {
	Mail     mailer.Service
	From     string
	FromName string
	Currency string
	Logger   *slog.Logger
}

func NewService(products Products, ords Orders, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		products: products,
		orders:   ords,
		mail:     opts.Mail,
		from:     opts.From,
		fromName: opts.FromName,
		currency: opts.Currency,
		logger:   logger,
	}
}

// PlaceOrder turns the cart into an order. Lines are priced at what the cart
// holds; availability is re-checked against the catalog. On success the cart
// is cleared and a confirmation mail is sent.
func (s *Service) PlaceOrder(ctx context.Context, c *cart.Store, clientID string, cu Customer) (orders.Order, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return orders.Order{}, ErrCartEmpty
	}
	if err := s.checkStock(ctx, lines); err != nil {
		return orders.Order{}, err
	}

	o := orders.Order{
		ClientID:      clientID,
		CustomerName:  strings.TrimSpace(cu.Name),
		CustomerEmail: strings.TrimSpace(cu.Email),
		Phone:         strings.TrimSpace(cu.Phone),
		Address:       strings.TrimSpace(cu.Address),
	}
	for _, l := range lines {
		o.Items = append(o.Items, orders.OrderItem{
			ProductID: l.Product.ID,
			Brand:     l.Product.Brand,
			Name:      l.Product.Name,
			Size:      l.Variant.Size,
			UnitPrice: l.Variant.Price,
			Quantity:  l.Quantity,
			Image:     l.Variant.Cover(),
		})
	}

	if err := s.orders.Create(ctx, &o); err != nil {
		return orders.Order{}, fmt.Errorf("create order: %w", err)
	}
	c.Clear(ctx)

	s.logger.InfoContext(ctx, "order_placed",
		slog.String("order_id", o.ID),
		slog.Int("items", len(o.Items)),
		slog.String("total", o.Total.StringFixed(2)),
	)
	s.sendConfirmation(ctx, o)
	return o, nil
}

func (s *Service) sendConfirmation(ctx context.Context, o orders.Order) {
	if s.mail == nil || o.CustomerEmail == "" {
		return
	}
	msg, err := email.OrderConfirmation(o, s.currency)
	if err == nil {
		err = s.mail.Send(ctx, mailer.Email{
			From:     s.from,
			FromName: s.fromName,
			To:       []string{o.CustomerEmail},
			Subject:  msg.Subject,
			TextBody: msg.Text,
			HTMLBody: msg.HTML,
		})
	}
	if err != nil {
		s.logger.WarnContext(ctx, "order_mail_failed", slog.String("order_id", o.ID), slog.Any("err", err))
	}
}
