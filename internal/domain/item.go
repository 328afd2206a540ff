package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one billable row on the invoice
type Item struct {
	ID          string
	Description string
	Quantity    int
	Rate        decimal.Decimal
}

// RawItem is an item as typed by the user, before coercion
type RawItem struct {
	ID          string
	Description string
	Quantity    string
	Rate        string
}

var (
	leadingInt    = regexp.MustCompile(`^[+-]?\d+`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)
)

// NewItem returns an empty row: no description, quantity 1, rate 0
func NewItem(id string) Item {
	return Item{ID: id, Quantity: 1, Rate: decimal.Zero}
}

// NormalizeItem coerces raw input into a well-formed item. It never fails:
// a quantity that is unparseable or below 1 becomes 1, and a rate that is
// unparseable or negative becomes 0. Like a form field, only the leading
// numeric part of the input counts ("3.7" is quantity 3, "12abc" is rate 12).
// Oversized values are clamped to MaxQuantity and MaxRate.
func NormalizeItem(raw RawItem) Item {
	return Item{
		ID:          raw.ID,
		Description: raw.Description,
		Quantity:    ParseQuantity(raw.Quantity),
		Rate:        ParseRate(raw.Rate),
	}
}

// MaxQuantity is the largest quantity an item holds; larger input is
// clamped to it
const MaxQuantity = 1_000_000_000

// Rates are capped at MaxRate and keep at most maxRateScale decimal places.
// Both limits are checked on the exponent before any arithmetic, so input
// like "1e50000000" never expands into millions of digits.
var MaxRate = decimal.New(1, 12)

const (
	maxRateScale     = 10
	maxRateMagnitude = 12 // decimal exponent of MaxRate
)

// ParseQuantity applies the quantity coercion rule to a single input
func ParseQuantity(s string) int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 1
	}
	q, err := strconv.Atoi(m)
	switch {
	case err != nil && strings.HasPrefix(m, "-"), err == nil && q < 1:
		return 1
	case err != nil, q > MaxQuantity:
		// only ErrRange is possible, the match is all digits
		return MaxQuantity
	}
	return q
}

// ParseRate applies the rate coercion rule to a single input
func ParseRate(s string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	r, err := decimal.NewFromString(strings.TrimPrefix(m, "+"))
	if err != nil || r.IsNegative() || r.IsZero() {
		return decimal.Zero
	}

	// magnitude is the exponent of the leading digit
	digits := int64(len(r.Coefficient().String()))
	magnitude := int64(r.Exponent()) + digits - 1
	switch {
	case magnitude >= maxRateMagnitude:
		return MaxRate
	case magnitude < -maxRateScale-1:
		return decimal.Zero
	case r.Exponent() < -maxRateScale:
		r = r.Round(maxRateScale)
	}
	return r
}

// Raw converts the item back to user-input form
func (i Item) Raw() RawItem {
	return RawItem{
		ID:          i.ID,
		Description: i.Description,
		Quantity:    strconv.Itoa(i.Quantity),
		Rate:        i.Rate.String(),
	}
}

// With returns a copy of the item with one field replaced by a coerced value
func (i Item) With(field ItemField, value string) Item {
	raw := i.Raw()
	switch field {
	case ItemDescription:
		raw.Description = value
	case ItemQuantity:
		raw.Quantity = value
	case ItemRate:
		raw.Rate = value
	default:
		return i
	}
	return NormalizeItem(raw)
}

// Equal compares items by value
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID &&
		i.Description == other.Description &&
		i.Quantity == other.Quantity &&
		i.Rate.Equal(other.Rate)
}

// itemJSON is the stored layout; numbers stay JSON numbers
type itemJSON struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	Rate        json.Number `json:"rate"`
}

// MarshalJSON writes quantity and rate as plain JSON numbers
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		ID:          i.ID,
		Description: i.Description,
		Quantity:    json.Number(strconv.Itoa(i.Quantity)),
		Rate:        json.Number(i.Rate.String()),
	})
}

// UnmarshalJSON reads the stored layout and coerces the numbers
func (i *Item) UnmarshalJSON(data []byte) error {
	var v itemJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*i = NormalizeItem(RawItem{
		ID:          v.ID,
		Description: v.Description,
		Quantity:    v.Quantity.String(),
		Rate:        v.Rate.String(),
	})
	return nil
}
