package domain_test

import (
	"testing"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3}, {" 12 ", 12}, {"3.7", 3}, {"7abc", 7},
		{"", 1}, {"abc", 1}, {"0", 1}, {"-2", 1},
		{"1000000000", domain.MaxQuantity}, {"1000000001", domain.MaxQuantity},
		{"99999999999999999999", domain.MaxQuantity}, {"+99999999999999999999999", domain.MaxQuantity},
		{"-99999999999999999999", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseQuantity(tt.in), "input %q", tt.in)
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50", "50"}, {"10.005", "10.005"}, {".5", "0.5"}, {"12abc", "12"},
		{"1e2", "100"}, {"+4.25", "4.25"},
		{"", "0"}, {"abc", "0"}, {"-3", "0"}, {"$5", "0"},
		{"999999999999.99", "999999999999.99"},
		{"1000000000000", "1000000000000"}, {"5e12", "1000000000000"},
		{"1e50000000", "1000000000000"}, {"1e999999999", "1000000000000"},
		{"1e-50000000", "0"}, {"0e50000000", "0"}, {"0.00000000001", "0"},
		{"0.12345678905", "0.1234567891"}, {"0.0000000001", "0.0000000001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ParseRate(tt.in).String(), "input %q", tt.in)
	}
}

func TestNormalizeItem(t *testing.T) {
	item := domain.NormalizeItem(domain.RawItem{ID: "a", Description: "Logo work", Quantity: "0", Rate: "-1"})

	assert.Equal(t, "a", item.ID)
	assert.Equal(t, "Logo work", item.Description)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Rate.IsZero())
}

func TestNormalizeItem_Idempotent(t *testing.T) {
	inputs := []domain.RawItem{
		{ID: "a", Quantity: "3", Rate: "10.005"},
		{ID: "b", Quantity: "x", Rate: "y"},
		{ID: "c", Quantity: "-9", Rate: "-9"},
		{ID: "d", Quantity: "2.9", Rate: "1e3"},
		{ID: "e", Description: " spaced ", Quantity: " 4 ", Rate: " 0.10 "},
	}
	for _, raw := range inputs {
		once := domain.NormalizeItem(raw)
		twice := domain.NormalizeItem(once.Raw())
		assert.True(t, once.Equal(twice), "not idempotent for %+v: %+v vs %+v", raw, once, twice)
	}
}

func TestItem_With(t *testing.T) {
	item := domain.NewItem("a")

	next := item.With(domain.ItemRate, "50")
	assert.Equal(t, "50", next.Rate.String())
	assert.True(t, item.Rate.IsZero(), "original untouched")

	next = next.With(domain.ItemQuantity, "abc")
	assert.Equal(t, 1, next.Quantity)

	next = next.With(domain.ItemDescription, "Hosting")
	assert.Equal(t, "Hosting", next.Description)
	assert.Equal(t, "50", next.Get(domain.ItemRate))

	assert.True(t, next.Equal(next.With(domain.ItemField("colour"), "red")))
}
