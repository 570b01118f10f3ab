package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.50", 12.5},
		{"12,50", 12.5},
		{"  19.99 ", 19.99},
		{"1 250,75", 1250.75},
		{"0", 0},
		{"-3", -3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parsePrice(tc.in), "input %q", tc.in)
	}

	assert.True(t, math.IsNaN(parsePrice("")))
	assert.True(t, math.IsNaN(parsePrice("abc")))
	assert.True(t, math.IsNaN(parsePrice("12.3.4")))
}

func TestValidateProductField_Price(t *testing.T) {
	assert.Equal(t, errPriceRequired, validateProductField(fieldPrice, "   "))
	assert.Equal(t, errPricePositive, validateProductField(fieldPrice, "abc"))
	assert.Equal(t, errPricePositive, validateProductField(fieldPrice, "0"))
	assert.Equal(t, errPricePositive, validateProductField(fieldPrice, "-5"))
	assert.Empty(t, validateProductField(fieldPrice, "12,50"))
	assert.Empty(t, validateProductField(fieldPrice, "0.01"))
}

func TestValidateProductField_Text(t *testing.T) {
	for _, field := range []string{fieldName, fieldVendor, fieldSKU} {
		assert.Equal(t, errFieldRequired, validateProductField(field, ""), field)
		assert.Equal(t, errFieldRequired, validateProductField(field, "  "), field)
		assert.Empty(t, validateProductField(field, "x"), field)
	}
}

func TestValidateDraft(t *testing.T) {
	errs := validateDraft(productDraft{})
	require.Len(t, errs, 4)
	assert.Equal(t, errFieldRequired, errs[fieldName])
	assert.Equal(t, errPriceRequired, errs[fieldPrice])

	errs = validateDraft(productDraft{
		Name:   "Keyboard",
		Price:  "49,99",
		Vendor: "Logi",
		SKU:    "KB-1",
	})
	assert.Empty(t, errs)
}
