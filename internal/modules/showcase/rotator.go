// Package showcase drives the promotional carousel on the landing page: a
// window of featured product cards that advances by one on a timer.
package showcase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/schedule"
)

type Lister interface {
	List(ctx context.Context, f catalog.Filter) []catalog.Product
}

type Card struct {
	Product  catalog.Ref     `json:"product"`
	Badge    string          `json:"badge,omitempty"`
	Variant  catalog.Variant `json:"variant"`
	Discount int             `json:"discount"`
}

type Config struct {
	Sizes    []string
	Window   int
	Interval time.Duration
}

type Rotator struct {
	src    Lister
	cfg    Config
	logger *slog.Logger

	mu     sync.RWMutex
	cards  []Card
	offset int
	task   *schedule.Task
}

func NewRotator(src Lister, cfg Config, logger *slog.Logger) *Rotator {
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 4 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Rotator{src: src, cfg: cfg, logger: logger}
}

// Reload rebuilds the card list. Products with a badge are featured; when
// none has one, every product is.
func (r *Rotator) Reload(ctx context.Context) {
	all := r.src.List(ctx, catalog.Filter{Prefs: r.cfg.Sizes})

	featured := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if p.Badge != "" {
			featured = append(featured, p)
		}
	}
	if len(featured) == 0 {
		featured = all
	}

	cards := make([]Card, len(featured))
	for i, p := range featured {
		v := catalog.Resolve(p, r.cfg.Sizes...)
		cards[i] = Card{Product: p.Ref(), Badge: p.Badge, Variant: v, Discount: v.Discount()}
	}

	r.mu.Lock()
	r.cards = cards
	if r.offset >= len(cards) {
		r.offset = 0
	}
	r.mu.Unlock()
	r.logger.DebugContext(ctx, "showcase_reloaded", slog.Int("cards", len(cards)))
}

// Advance moves the window by one card. The card list is reloaded each time
// the rotation wraps around.
func (r *Rotator) Advance(ctx context.Context) {
	r.mu.Lock()
	n := len(r.cards)
	if n > 0 {
		r.offset = (r.offset + 1) % n
	}
	wrapped := r.offset == 0
	r.mu.Unlock()

	if wrapped {
		r.Reload(ctx)
	}
}

// Window returns the visible cards in order, wrapping past the end.
func (r *Rotator) Window() []Card {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.cards)
	size := r.cfg.Window
	if size > n {
		size = n
	}
	out := make([]Card, size)
	for i := range out {
		out[i] = r.cards[(r.offset+i)%n]
	}
	return out
}

// Start loads the cards and begins rotating. Calling Start again restarts
// the timer.
func (r *Rotator) Start(ctx context.Context) {
	r.Stop()
	r.Reload(ctx)
	t := schedule.Every(ctx, r.cfg.Interval, r.Advance)

	r.mu.Lock()
	r.task = t
	r.mu.Unlock()
}

func (r *Rotator) Stop() {
	r.mu.Lock()
	t := r.task
	r.task = nil
	r.mu.Unlock()
	t.Stop()
}
