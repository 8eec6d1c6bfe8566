package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var oud = catalog.Product{
	ID:    "oud",
	Brand: "Mahirash",
	Name:  "Oud Noir",
	Price: dec("100"),
	Image: "/img/oud.jpg",
	Variants: []catalog.Variant{
		{Size: "10ml", Price: dec("100")},
		{Size: "50ml", Price: dec("400"), OutOfStock: true},
	},
}

func v(p catalog.Product, size string) catalog.Variant {
	got, ok := p.Variant(size)
	if !ok {
		panic("no variant " + size)
	}
	return got
}

func TestAddMergesSameVariant(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)

	s.Add(ctx, oud, v(oud, "10ml"), 1)
	s.Add(ctx, oud, v(oud, "10ml"), 2)

	require.Equal(t, 1, s.Len())
	l, ok := s.Line("oud", "10ml")
	require.True(t, ok)
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, "Oud Noir", l.Product.Name)
}

func TestAddDistinctVariantsAreDistinctLines(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)

	s.Add(ctx, oud, v(oud, "10ml"), 1)
	s.Add(ctx, oud, v(oud, "50ml"), 1)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "10ml", lines[0].Variant.Size)
	assert.Equal(t, "50ml", lines[1].Variant.Size)
}

func TestAddClampsQuantity(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)
	l := s.Add(ctx, oud, v(oud, "10ml"), 0)
	assert.Equal(t, 1, l.Quantity)
	l = s.Add(ctx, oud, v(oud, "10ml"), -5)
	assert.Equal(t, 2, l.Quantity)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)
	s.Add(ctx, oud, v(oud, "10ml"), 1)
	s.Add(ctx, oud, v(oud, "50ml"), 1)

	assert.NotPanics(t, func() { s.Remove(ctx, "nope", "10ml") })
	assert.Equal(t, 2, s.Len())

	s.Remove(ctx, "oud", "10ml")
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "50ml", lines[0].Variant.Size)
}

func TestSetQuantityNeverBelowOne(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)
	s.Add(ctx, oud, v(oud, "10ml"), 4)

	for _, q := range []int{0, -1, -100} {
		l, ok := s.SetQuantity(ctx, "oud", "10ml", q)
		require.True(t, ok)
		assert.Equal(t, 1, l.Quantity)
	}
	l, _ := s.SetQuantity(ctx, "oud", "10ml", 7)
	assert.Equal(t, 7, l.Quantity)

	_, ok := s.SetQuantity(ctx, "oud", "50ml", 3)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len(), "setting an absent line does not create it")
}

func TestTotalIncludesOutOfStock(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)
	s.Add(ctx, oud, v(oud, "10ml"), 2)
	s.Add(ctx, oud, v(oud, "50ml"), 1)

	assert.True(t, dec("600").Equal(s.Total()), "got %s", s.Total())
	assert.Equal(t, 3, s.Count())

	s.Clear(ctx)
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 0, s.Count())
}

func TestDefaultVariantProduct(t *testing.T) {
	ctx := context.Background()
	single := catalog.Product{ID: "mist", Name: "Body Mist", Price: dec("250")}
	s := Open(ctx, nil, "cart/t", nil)
	s.Add(ctx, single, catalog.Resolve(single), 2)

	l, ok := s.Line("mist", catalog.DefaultSize)
	require.True(t, ok)
	assert.True(t, dec("500").Equal(l.Subtotal()))
	assert.Equal(t, catalog.PlaceholderImage, l.Product.Image)
}

func TestPersistedCartSurvivesReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	s := Open(ctx, mem, "cart/c1", nil)
	s.Add(ctx, oud, v(oud, "10ml"), 2)
	s.Add(ctx, oud, v(oud, "50ml"), 1)
	s.SetQuantity(ctx, "oud", "10ml", 3)

	reloaded := Open(ctx, mem, "cart/c1", nil)
	assert.Equal(t, normalized(s.Lines()), normalized(reloaded.Lines()))
	assert.True(t, s.Total().Equal(reloaded.Total()))

	other := Open(ctx, mem, "cart/c2", nil)
	assert.Equal(t, 0, other.Len())
}

// decimals that went through JSON compare by value, not by representation
func normalized(lines []Line) []Line {
	for i := range lines {
		lines[i].Variant.Price = dec(lines[i].Variant.Price.String())
		lines[i].Variant.OldPrice = dec(lines[i].Variant.OldPrice.String())
	}
	return lines
}

func TestHydrateRepairsInvariants(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Put(ctx, "cart/c1", []byte(`[
		{"product":{"id":"oud"},"variant":{"size":"10ml","price":"100"},"quantity":0},
		{"product":{"id":"oud"},"variant":{"size":"10ml","price":"100"},"quantity":2},
		{"product":{"id":""},"variant":{"size":"10ml","price":"100"},"quantity":2}
	]`)))

	s := Open(ctx, mem, "cart/c1", nil)
	require.Equal(t, 1, s.Len())
	l, _ := s.Line("oud", "10ml")
	assert.Equal(t, 3, l.Quantity)
}

func TestCorruptStateHydratesEmpty(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Put(ctx, "cart/c1", []byte(`{not json`)))

	s := Open(ctx, mem, "cart/c1", nil)
	assert.Equal(t, 0, s.Len())
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	mem.Err = errors.New("quota exceeded")

	s := Open(ctx, mem, "cart/c1", nil)
	s.Add(ctx, oud, v(oud, "10ml"), 1)
	assert.Equal(t, 1, s.Len(), "in-memory state stays authoritative")

	_, err := mem.Get(ctx, "cart/c1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	mem.Err = nil
	s.Close(ctx)
	reloaded := Open(ctx, mem, "cart/c1", nil)
	assert.Equal(t, 1, reloaded.Len(), "Close flushes the failed write")
}

func TestReturnedLinesDoNotAliasStore(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "cart/t", nil)

	variant := catalog.Variant{Size: "10ml", Price: dec("100"), Images: []string{"/img/oud-10.jpg"}}
	added := s.Add(ctx, oud, variant, 1)
	variant.Images[0] = "/img/caller.jpg"
	added.Variant.Images[0] = "/img/added.jpg"

	lines := s.Lines()
	lines[0].Variant.Images[0] = "/img/lines.jpg"
	one, _ := s.Line("oud", "10ml")
	one.Variant.Images[0] = "/img/line.jpg"
	set, _ := s.SetQuantity(ctx, "oud", "10ml", 2)
	set.Variant.Images[0] = "/img/set.jpg"

	got, ok := s.Line("oud", "10ml")
	require.True(t, ok)
	assert.Equal(t, []string{"/img/oud-10.jpg"}, got.Variant.Images)
}
