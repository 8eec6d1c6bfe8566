package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/storage"
)

// Entry is a wished-for product, independent of size.
type Entry struct {
	Product catalog.Ref `json:"product"`
	AddedAt time.Time   `json:"added_at"`
}

type Persister interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Store holds one shopper's wishlist. Same persistence contract as the cart
// store: write-through on every change, failures logged and ignored.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	dirty   bool
	p       Persister
	key     string
	logger  *slog.Logger
	now     func() time.Time
}

func Open(ctx context.Context, p Persister, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{p: p, key: key, logger: logger, now: time.Now}
	if p == nil {
		return s
	}

	b, err := p.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s
	case err != nil:
		logger.WarnContext(ctx, "wishlist_hydrate_failed", slog.String("key", key), slog.Any("err", err))
		return s
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		logger.WarnContext(ctx, "wishlist_hydrate_corrupt", slog.String("key", key), slog.Any("err", err))
		return s
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Product.ID == "" {
			continue
		}
		if _, dup := seen[e.Product.ID]; dup {
			continue
		}
		seen[e.Product.ID] = struct{}{}
		s.entries = append(s.entries, e)
	}
	return s
}

// Toggle adds p if absent and removes it if present. It reports whether p is
// on the list afterwards.
func (s *Store) Toggle(ctx context.Context, p catalog.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(p.ID); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.persist(ctx)
		return false
	}
	s.entries = append(s.entries, Entry{Product: p.Ref(), AddedAt: s.now().UTC()})
	s.persist(ctx)
	return true
}

func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(productID); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		s.persist(ctx)
	}
}

func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(productID) >= 0
}

func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.persist(ctx)
	}
}

func (s *Store) index(productID string) int {
	for i, e := range s.entries {
		if e.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	if s.p == nil {
		return
	}
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.Marshal(entries)
	if err == nil {
		err = s.p.Put(ctx, s.key, b)
	}
	if err != nil {
		s.dirty = true
		s.logger.WarnContext(ctx, "wishlist_persist_failed", slog.String("key", s.key), slog.Any("err", err))
		return
	}
	s.dirty = false
}
