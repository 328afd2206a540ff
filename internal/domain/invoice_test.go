package domain_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqTokens hands out "t1", "t2", ... padded to the requested length
type seqTokens struct{ n int }

func (s *seqTokens) Token(n int) string {
	s.n++
	tok := fmt.Sprintf("t%d", s.n)
	for len(tok) < n {
		tok += "x"
	}
	return tok
}

var fixedNow = time.Date(2026, time.January, 31, 15, 4, 5, 0, time.UTC)

func TestNewDefaultInvoice(t *testing.T) {
	inv := domain.NewDefaultInvoice(&seqTokens{}, fixedNow, domain.DefaultInvoiceOptions())

	assert.Equal(t, domain.Freelancer{}, inv.Freelancer)
	assert.Equal(t, domain.Client{}, inv.Client)
	assert.Equal(t, "INV-T1XXXXXXX", inv.Details.Number)
	assert.Equal(t, "2026-01-31", inv.Details.Date)
	assert.Equal(t, "2026-03-02", inv.Details.DueDate)
	assert.Empty(t, inv.Details.Notes)
	assert.Empty(t, inv.Details.PaymentLink)

	require.Len(t, inv.Items, 1)
	item := inv.Items[0]
	assert.NotEmpty(t, item.ID)
	assert.Empty(t, item.Description)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.Rate.IsZero())
}

func TestNewDefaultInvoice_CustomOptions(t *testing.T) {
	inv := domain.NewDefaultInvoice(&seqTokens{}, fixedNow, domain.DefaultOptions{NumberPrefix: "ACME", DueDays: 14})
	assert.Equal(t, "ACME-T1XXXXXXX", inv.Details.Number)
	assert.Equal(t, "2026-02-14", inv.Details.DueDate)

	inv = domain.NewDefaultInvoice(&seqTokens{}, fixedNow, domain.DefaultOptions{})
	assert.Equal(t, "T1XXXXXXX", inv.Details.Number)
	assert.Equal(t, "2026-03-02", inv.Details.DueDate, "zero due days falls back to 30")
}

func TestRandomTokens(t *testing.T) {
	tokens := domain.NewRandomTokens()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		tok := tokens.Token(9)
		require.Len(t, tok, 9)
		assert.Regexp(t, `^[0-9a-z]{9}$`, tok)
		assert.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
	assert.Len(t, tokens.Token(40), 40)
}

func TestNewItemID_SkipsTakenIDs(t *testing.T) {
	tokens := &seqTokens{}
	existing := []domain.Item{domain.NewItem("t1xxxxxxx"), domain.NewItem("t2xxxxxxx")}
	assert.Equal(t, "t3xxxxxxx", domain.NewItemID(tokens, existing))
}

func TestInvoice_CloneDoesNotAlias(t *testing.T) {
	inv := domain.NewDefaultInvoice(&seqTokens{}, fixedNow, domain.DefaultInvoiceOptions())
	clone := inv.Clone()
	clone.Items[0].Description = "changed"

	assert.Empty(t, inv.Items[0].Description)
	assert.False(t, inv.Equal(clone))
}

func TestInvoice_WithHelpersCopy(t *testing.T) {
	inv := domain.NewDefaultInvoice(&seqTokens{}, fixedNow, domain.DefaultInvoiceOptions())

	next := inv.WithFreelancer(inv.Freelancer.With(domain.FreelancerName, "Jane"))
	assert.Equal(t, "Jane", next.Freelancer.Name)
	assert.Empty(t, inv.Freelancer.Name)

	next = next.WithClient(next.Client.With(domain.ClientCompany, "Acme"))
	next = next.WithDetails(next.Details.With(domain.DetailNotes, "thanks"))
	assert.Equal(t, "Acme", next.Client.Company)
	assert.Equal(t, "thanks", next.Details.Notes)
	assert.Equal(t, "Jane", next.Freelancer.Name)
	assert.Equal(t, inv.Details.Number, next.Details.Number)
}

func TestInvoice_JSONLayout(t *testing.T) {
	inv := domain.Invoice{
		Freelancer: domain.Freelancer{Name: "Jane", Logo: "https://example.com/l.png"},
		Client:     domain.Client{Company: "Acme"},
		Details:    domain.Details{Number: "INV-1", Date: "2026-01-01", DueDate: "2026-01-31", PaymentLink: "https://pay"},
		Items: []domain.Item{
			{ID: "a", Description: "Design", Quantity: 2, Rate: decimal.RequireFromString("10.005")},
		},
	}

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "freelancer")
	assert.Contains(t, raw, "client")
	assert.Contains(t, raw, "invoice")
	assert.Equal(t, "https://example.com/l.png", raw["freelancer"].(map[string]any)["logo"])
	assert.Equal(t, "2026-01-31", raw["invoice"].(map[string]any)["dueDate"])

	item := raw["items"].([]any)[0].(map[string]any)
	assert.Equal(t, 2.0, item["quantity"])
	assert.Equal(t, 10.005, item["rate"], "rate is written as a JSON number")

	var back domain.Invoice
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, inv.Equal(back))
}

func TestInvoice_UnmarshalCoercesNumbers(t *testing.T) {
	data := `{"items":[{"id":"a","description":"x","quantity":0,"rate":-3},{"id":"b","quantity":"4","rate":"2.5"}]}`

	var inv domain.Invoice
	require.NoError(t, json.Unmarshal([]byte(data), &inv))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.True(t, inv.Items[0].Rate.IsZero())
	assert.Equal(t, 4, inv.Items[1].Quantity)
	assert.Equal(t, "2.5", inv.Items[1].Rate.String())
}

func TestInvoice_UnmarshalBoundsHugeNumbers(t *testing.T) {
	data := `{"items":[{"id":"a","quantity":99999999999999999999,"rate":1e50000000},{"id":"b","quantity":2,"rate":1e-50000000}]}`

	var inv domain.Invoice
	require.NoError(t, json.Unmarshal([]byte(data), &inv))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, domain.MaxQuantity, inv.Items[0].Quantity)
	assert.True(t, inv.Items[0].Rate.Equal(domain.MaxRate))
	assert.True(t, inv.Items[1].Rate.IsZero())

	out, err := json.Marshal(inv.Items)
	require.NoError(t, err)
	assert.Less(t, len(out), 200)
	assert.Equal(t, "$1,000,000,000,000,000,000,000.00", domain.FormatMoney(domain.InvoiceTotal(inv.Items)))
}

func TestInvoice_Repair(t *testing.T) {
	inv := domain.Invoice{
		Items: []domain.Item{
			{ID: "dup", Quantity: 2, Rate: decimal.NewFromInt(1)},
			{ID: "dup", Quantity: 0, Rate: decimal.NewFromInt(-1)},
			{ID: "", Quantity: 1, Rate: decimal.NewFromInt(3)},
		},
	}

	repaired := inv.Repair(&seqTokens{}, domain.DefaultInvoiceOptions())

	require.Len(t, repaired.Items, 3)
	assert.Equal(t, "dup", repaired.Items[0].ID)
	assert.NotEqual(t, "dup", repaired.Items[1].ID)
	assert.NotEmpty(t, repaired.Items[2].ID)
	assert.NotEqual(t, repaired.Items[1].ID, repaired.Items[2].ID)
	assert.Equal(t, 1, repaired.Items[1].Quantity)
	assert.True(t, repaired.Items[1].Rate.IsZero())
	assert.NotEmpty(t, repaired.Details.Number)

	// input untouched
	assert.Equal(t, "dup", inv.Items[1].ID)
}

func TestInvoice_RepairEmptyItems(t *testing.T) {
	repaired := domain.Invoice{Details: domain.Details{Number: "INV-KEEP"}}.Repair(&seqTokens{}, domain.DefaultInvoiceOptions())

	require.Len(t, repaired.Items, 1)
	assert.Equal(t, 1, repaired.Items[0].Quantity)
	assert.Equal(t, "INV-KEEP", repaired.Details.Number)
}

func TestParseFields(t *testing.T) {
	f, err := domain.ParseFreelancerField("logo")
	require.NoError(t, err)
	assert.Equal(t, domain.FreelancerLogo, f)

	d, err := domain.ParseDetailField("due_date")
	require.NoError(t, err)
	assert.Equal(t, domain.DetailDueDate, d)

	i, err := domain.ParseItemField("qty")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemQuantity, i)

	_, err = domain.ParseClientField("phone")
	assert.ErrorIs(t, err, domain.ErrUnknownField)
}
