package view

import (
	"time"

	"github.com/shopspring/decimal"

	"mahirash.com/app/internal/modules/cart"
	"mahirash.com/app/internal/modules/wishlist"
)

type CartLine struct {
	ProductID     string          `json:"product_id"`
	Brand         string          `json:"brand"`
	Name          string          `json:"name"`
	Image         string          `json:"image"`
	Variant       Variant         `json:"variant"`
	Quantity      int             `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	SubtotalLabel string          `json:"subtotal_label"`
}

func NewCartLine(l cart.Line, currency string) CartLine {
	sub := l.Subtotal()
	return CartLine{
		ProductID:     l.Product.ID,
		Brand:         l.Product.Brand,
		Name:          l.Product.Name,
		Image:         l.Variant.Cover(),
		Variant:       NewVariant(l.Variant, currency),
		Quantity:      l.Quantity,
		Subtotal:      sub,
		SubtotalLabel: Money(sub, currency),
	}
}

type Cart struct {
	Lines      []CartLine      `json:"lines"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"total_label"`
}

func NewCart(s *cart.Store, currency string) Cart {
	lines := s.Lines()
	out := Cart{Lines: make([]CartLine, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		cl := NewCartLine(l, currency)
		out.Lines = append(out.Lines, cl)
		out.Count += l.Quantity
		out.Total = out.Total.Add(cl.Subtotal)
	}
	out.TotalLabel = Money(out.Total, currency)
	return out
}

const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeError   = "error"
)

const NoticeTTL = 3 * time.Second

// Notice is a transient message the client shows for TTLMillis.
type Notice struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	TTLMillis int64  `json:"ttl_ms"`
}

func NewNotice(kind, msg string) Notice {
	return Notice{Kind: kind, Message: msg, TTLMillis: NoticeTTL.Milliseconds()}
}

type CartAdded struct {
	Line       CartLine `json:"line"`
	Cart       Cart     `json:"cart"`
	Notice     Notice   `json:"notice"`
	DrawerOpen bool     `json:"drawer_open"`
}

type WishlistEntry struct {
	ProductID string    `json:"product_id"`
	Brand     string    `json:"brand"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	AddedAt   time.Time `json:"added_at"`
}

type Wishlist struct {
	Entries []WishlistEntry `json:"entries"`
	Count   int             `json:"count"`
}

func NewWishlist(s *wishlist.Store) Wishlist {
	entries := s.Entries()
	out := Wishlist{Entries: make([]WishlistEntry, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		out.Entries = append(out.Entries, WishlistEntry{
			ProductID: e.Product.ID,
			Brand:     e.Product.Brand,
			Name:      e.Product.Name,
			Image:     e.Product.Image,
			AddedAt:   e.AddedAt,
		})
	}
	return out
}
