package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/storage"
)

var (
	amber = catalog.Product{ID: "amber", Name: "Amber Dusk", Variants: []catalog.Variant{{Size: "10ml"}, {Size: "50ml"}}}
	cedar = catalog.Product{ID: "cedar", Name: "Cedar Line"}
)

func TestToggleIsAnInvolution(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "wishlist/t", nil)

	for _, start := range []bool{false, true} {
		if start != s.Contains("amber") {
			s.Toggle(ctx, amber)
		}
		require.Equal(t, start, s.Contains("amber"))

		s.Toggle(ctx, amber)
		s.Toggle(ctx, amber)
		assert.Equal(t, start, s.Contains("amber"), "two toggles restore membership")
	}
}

func TestToggleReportsMembership(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "wishlist/t", nil)

	assert.True(t, s.Toggle(ctx, amber))
	assert.True(t, s.Toggle(ctx, cedar))
	assert.False(t, s.Toggle(ctx, amber))

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "cedar", entries[0].Product.ID)
}

func TestOneEntryPerProductRegardlessOfSize(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "wishlist/t", nil)
	s.Toggle(ctx, amber)

	sized := amber
	sized.Variants = sized.Variants[1:]
	s.Toggle(ctx, sized)
	assert.False(t, s.Contains("amber"), "same product id toggles the same entry")
	assert.Equal(t, 0, s.Len())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, nil, "wishlist/t", nil)
	s.Toggle(ctx, cedar)
	s.Remove(ctx, "amber")
	assert.Equal(t, 1, s.Len())
	s.Remove(ctx, "cedar")
	assert.Equal(t, 0, s.Len())
}

func TestWishlistSurvivesReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	s := Open(ctx, mem, "wishlist/c1", nil)
	s.Toggle(ctx, amber)
	s.Toggle(ctx, cedar)

	reloaded := Open(ctx, mem, "wishlist/c1", nil)
	assert.True(t, reloaded.Contains("amber"))
	assert.True(t, reloaded.Contains("cedar"))
	assert.Equal(t, 2, reloaded.Len())
}

func TestHydrateDropsDuplicates(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Put(ctx, "wishlist/c1", []byte(`[
		{"product":{"id":"amber"}},
		{"product":{"id":"amber"}},
		{"product":{"id":""}}
	]`)))
	s := Open(ctx, mem, "wishlist/c1", nil)
	assert.Equal(t, 1, s.Len())
}
