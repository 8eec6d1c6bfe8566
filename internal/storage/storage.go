// Package storage keeps client-local state blobs (serialized carts and
// wishlists) addressed by a key such as "cart/<client id>". It is
// best-effort persistence: no versioning, no transactions.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

var (
	ErrNotFound   = errors.New("storage: key not found")
	ErrInvalidKey = errors.New("storage: invalid key")
)

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var validKey = regexp.MustCompile(`^[a-z]+/[A-Za-z0-9_-]{1,64}$`)

// ValidateKey accepts "<namespace>/<id>" keys only, so drivers can map keys
// to paths and object names without escaping.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Memory keeps blobs in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	// Err, when set, is returned by Put; lets tests simulate a full disk.
	Err error
}

func NewMemory() *Memory { return &Memory{data: map[string][]byte{}} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Put(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) String() string { return "memory" }
