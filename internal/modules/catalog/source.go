package catalog

import (
	"context"
	"sync"
)

// Source reads the products collection of the hosted document database.
type Source interface {
	All(ctx context.Context) ([]RawProduct, error)
	Get(ctx context.Context, id string) (RawProduct, error)
}

// Memory is an in-process Source, used for seeding and tests.
type Memory struct {
	mu    sync.RWMutex
	items []RawProduct
}

func NewMemory(items ...RawProduct) *Memory {
	return &Memory{items: append([]RawProduct(nil), items...)}
}

func (m *Memory) All(ctx context.Context) ([]RawProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RawProduct(nil), m.items...), nil
}

func (m *Memory) Get(ctx context.Context, id string) (RawProduct, error) {
	if err := ctx.Err(); err != nil {
		return RawProduct{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return RawProduct{}, ErrNotFound
}

// Put inserts or replaces a document by id.
func (m *Memory) Put(raw RawProduct) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == raw.ID {
			m.items[i] = raw
			return
		}
	}
	m.items = append(m.items, raw)
}
