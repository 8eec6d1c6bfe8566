package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"mahirash.com/app/internal/modules/catalog"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in, cur, want string
	}{
		{"0", "INR", "₹0.00"},
		{"999.5", "INR", "₹999.50"},
		{"1250", "INR", "₹1,250.00"},
		{"1234567.891", "EUR", "€1,234,567.89"},
		{"-42", "USD", "-$42.00"},
		{"10", "CHF", "CHF 10.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Money(decimal.RequireFromString(tc.in), tc.cur), tc.in)
	}
}

func TestProductDetailVariants(t *testing.T) {
	p := catalog.Product{
		ID: "oud", Name: "Oud",
		Variants: []catalog.Variant{
			{Size: "50ml", Price: decimal.NewFromInt(400), OldPrice: decimal.NewFromInt(500)},
			{Size: "10ml", Price: decimal.NewFromInt(100)},
		},
	}
	d := NewProductDetail(p, "INR", "50ml")
	assert.Equal(t, "50ml", d.Variant.Size)
	assert.Equal(t, 20, d.Variant.Discount)
	assert.Equal(t, "₹500.00", d.Variant.OldPriceLabel)
	assert.Equal(t, []string{"10ml", "50ml"}, d.Sizes)
	if assert.Len(t, d.Variants, 2) {
		assert.Equal(t, "10ml", d.Variants[0].Size)
		assert.Empty(t, d.Variants[0].OldPriceLabel)
	}
}

func TestProductDetailWithoutVariants(t *testing.T) {
	p := catalog.Product{ID: "mist", Name: "Mist", Price: decimal.NewFromInt(250)}
	d := NewProductDetail(p, "INR")
	assert.Equal(t, catalog.DefaultSize, d.Variant.Size)
	assert.Len(t, d.Variants, 1)
	assert.Equal(t, catalog.PlaceholderImage, d.Image)
}
