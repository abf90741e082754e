package vinted

import (
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/resale-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"comma string", "12,5", "12.50"},
		{"dot string", "12.50", "12.50"},
		{"currency suffix", "8 €", "8.00"},
		{"float", 19.9, "19.90"},
		{"json number", json.Number("7"), "7.00"},
		{"amount in cents", map[string]any{"amount": json.Number("1250")}, "12.50"},
		{"amount major units", map[string]any{"amount": "12.50", "currency_code": "EUR"}, "12.50"},
		{"amount integer string", map[string]any{"amount": "990"}, "9.90"},
		{"dot thousands comma decimals", "1.234,56", "1234.56"},
		{"space thousands with currency", "1 234,56 €", "1234.56"},
		{"nbsp thousands", "2\u00a0500,00\u00a0€", "2500.00"},
		{"comma thousands dot decimals", "1,234.56", "1234.56"},
		{"negative", "-5,00", "-5.00"},
		{"json number with decimals", json.Number("3.335"), "3.34"},
		{"garbage", "free", "0.00"},
		{"nil", nil, "0.00"},
		{"empty object", map[string]any{}, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePrice(tt.in))
		})
	}
}

func TestNormalizePrice_Idempotent(t *testing.T) {
	for _, in := range []any{"12,5", 3.333, map[string]any{"amount": json.Number("199")}, "abc", "0", "1.234,56", "1 234,56 €"} {
		once := NormalizePrice(in)
		assert.Equal(t, once, NormalizePrice(once), "input %v", in)
	}
}

func TestNormalizeItem(t *testing.T) {
	item := map[string]any{
		"title":       "  Pull en laine ",
		"price":       map[string]any{"amount": "15.0"},
		"size_title":  "S",
		"brand_title": "",
		"photos": []any{
			map[string]any{
				"url":             "https://img/small.jpg",
				"full_size_url":   "https://img/full.jpg",
				"high_resolution": map[string]any{"url": "https://img/hr.jpg"},
			},
		},
	}

	got, ok := normalizeItem(item)
	assert.True(t, ok)
	assert.Equal(t, domain.Listing{
		Title:    "Pull en laine",
		Price:    "15.00",
		Size:     "S",
		Brand:    domain.DefaultListingBrand,
		ImageURL: "https://img/hr.jpg",
	}, got)
}

func TestNormalizeItem_PhotoFallbacks(t *testing.T) {
	base := func(photo map[string]any) map[string]any {
		return map[string]any{"title": "T", "price": "1", "photos": []any{photo}}
	}

	got, ok := normalizeItem(base(map[string]any{"full_size_url": "https://img/full.jpg", "url": "https://img/u.jpg"}))
	assert.True(t, ok)
	assert.Equal(t, "https://img/full.jpg", got.ImageURL)

	got, ok = normalizeItem(base(map[string]any{"url": "https://img/u.jpg"}))
	assert.True(t, ok)
	assert.Equal(t, "https://img/u.jpg", got.ImageURL)
	assert.Equal(t, domain.DefaultListingSize, got.Size)
}

func TestNormalizeItem_RequiresTitlePriceAndPhoto(t *testing.T) {
	photos := []any{map[string]any{"url": "https://img/u.jpg"}}

	cases := []map[string]any{
		{"price": "1", "photos": photos},
		{"title": "  ", "price": "1", "photos": photos},
		{"title": "T", "photos": photos},
		{"title": "T", "price": "n/a", "photos": photos},
		{"title": "T", "price": "-3,00", "photos": photos},
		{"title": "T", "price": "1", "photos": []any{}},
		{"title": "T", "price": "1"},
	}

	for i, c := range cases {
		_, ok := normalizeItem(c)
		assert.False(t, ok, "case %d", i)
	}
}
