package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/storage"
)

// Line is one cart entry. A product appears once per size label.
type Line struct {
	Product  catalog.Ref     `json:"product"`
	Variant  catalog.Variant `json:"variant"`
	Quantity int             `json:"quantity"`
}

func (l Line) Key() Key { return Key{ProductID: l.Product.ID, Size: l.Variant.Size} }

func (l Line) Subtotal() decimal.Decimal {
	return l.Variant.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// clone detaches l from the store's backing arrays.
func (l Line) clone() Line {
	l.Variant.Images = append([]string(nil), l.Variant.Images...)
	return l
}

type Key struct {
	ProductID string
	Size      string
}

// Persister is where the line list is written after every change.
// storage.Storage satisfies it.
type Persister interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Store holds one shopper's cart. Every mutation writes the full line list
// through the Persister before returning; write failures are logged and the
// in-memory state stays authoritative.
type Store struct {
	mu     sync.Mutex
	lines  []Line
	dirty  bool
	p      Persister
	key    string
	logger *slog.Logger
}

// Open creates a store and hydrates it from p. A nil p gives a memory-only
// store. Unreadable persisted state hydrates as an empty cart.
func Open(ctx context.Context, p Persister, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{p: p, key: key, logger: logger}
	if p == nil {
		return s
	}

	b, err := p.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s
	case err != nil:
		logger.WarnContext(ctx, "cart_hydrate_failed", slog.String("key", key), slog.Any("err", err))
		return s
	}

	var lines []Line
	if err := json.Unmarshal(b, &lines); err != nil {
		logger.WarnContext(ctx, "cart_hydrate_corrupt", slog.String("key", key), slog.Any("err", err))
		return s
	}
	s.lines = sanitize(lines)
	return s
}

// sanitize restores the invariants on state that came from outside.
func sanitize(in []Line) []Line {
	out := make([]Line, 0, len(in))
	at := make(map[Key]int, len(in))
	for _, l := range in {
		if l.Product.ID == "" {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		if i, ok := at[l.Key()]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		at[l.Key()] = len(out)
		out = append(out, l)
	}
	return out
}

// Add merges qty into the line for (product, variant) or appends a new one.
// qty below 1 counts as 1.
func (s *Store) Add(ctx context.Context, p catalog.Product, v catalog.Variant, qty int) Line {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{ProductID: p.ID, Size: v.Size}
	for i := range s.lines {
		if s.lines[i].Key() == k {
			s.lines[i].Quantity += qty
			s.persist(ctx)
			return s.lines[i].clone()
		}
	}
	l := Line{Product: p.Ref(), Variant: v, Quantity: qty}.clone()
	s.lines = append(s.lines, l)
	s.persist(ctx)
	return l.clone()
}

// Remove deletes the line if present.
func (s *Store) Remove(ctx context.Context, productID, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{ProductID: productID, Size: size}
	for i := range s.lines {
		if s.lines[i].Key() == k {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQuantity sets the quantity of an existing line, clamped to at least 1.
// It never removes a line; absent lines are left alone.
func (s *Store) SetQuantity(ctx context.Context, productID, size string, qty int) (Line, bool) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{ProductID: productID, Size: size}
	for i := range s.lines {
		if s.lines[i].Key() == k {
			s.lines[i].Quantity = qty
			s.persist(ctx)
			return s.lines[i].clone(), true
		}
	}
	return Line{}, false
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx)
}

// Total is the sum of price × quantity. Out-of-stock lines count.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units, as shown on the header badge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Lines returns a copy in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.clone()
	}
	return out
}

func (s *Store) Line(productID, size string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := Key{ProductID: productID, Size: size}
	for _, l := range s.lines {
		if l.Key() == k {
			return l.clone(), true
		}
	}
	return Line{}, false
}

// Close flushes state whose last write failed.
func (s *Store) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.persist(ctx)
	}
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	if s.p == nil {
		return
	}
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	b, err := json.Marshal(lines)
	if err == nil {
		err = s.p.Put(ctx, s.key, b)
	}
	if err != nil {
		s.dirty = true
		s.logger.WarnContext(ctx, "cart_persist_failed", slog.String("key", s.key), slog.Any("err", err))
		return
	}
	s.dirty = false
}
