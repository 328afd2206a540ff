package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for issue and due dates
const DateLayout = "2006-01-02"

// Freelancer is the party issuing the invoice
type Freelancer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Logo    string `json:"logo"` // URL of the logo image
}

// Client is the party being billed
type Client struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Details holds the invoice header fields
type Details struct {
	Number      string `json:"number"`
	Date        string `json:"date"`
	DueDate     string `json:"dueDate"`
	Notes       string `json:"notes"`
	PaymentLink string `json:"paymentLink"`
}

// Invoice is the aggregate root edited by the builder
type Invoice struct {
	Freelancer Freelancer `json:"freelancer"`
	Client     Client     `json:"client"`
	Details    Details    `json:"invoice"`
	Items      []Item     `json:"items"`
}

// DefaultOptions controls how a fresh invoice is filled in
type DefaultOptions struct {
	NumberPrefix string
	DueDays      int
}

const (
	numberTokenLen = 9
	itemIDLen      = 9
)

// DefaultInvoiceOptions matches a plain "INV" prefix and a 30 day payment term
func DefaultInvoiceOptions() DefaultOptions {
	return DefaultOptions{NumberPrefix: "INV", DueDays: 30}
}

// NewDefaultInvoice creates an empty invoice with one zero-rate item,
// a fresh number, and dates anchored at now.
func NewDefaultInvoice(tokens TokenSource, now time.Time, opts DefaultOptions) Invoice {
	if opts.DueDays <= 0 {
		opts.DueDays = DefaultInvoiceOptions().DueDays
	}

	return Invoice{
		Details: Details{
			Number:  NewInvoiceNumber(tokens, opts.NumberPrefix),
			Date:    now.Format(DateLayout),
			DueDate: now.AddDate(0, 0, opts.DueDays).Format(DateLayout),
		},
		Items: []Item{NewItem(tokens.Token(itemIDLen))},
	}
}

// NewInvoiceNumber returns "<prefix>-XXXXXXXXX" with an upper-case token
func NewInvoiceNumber(tokens TokenSource, prefix string) string {
	token := strings.ToUpper(tokens.Token(numberTokenLen))
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return token
	}
	return prefix + "-" + token
}

// NewItemID returns an id that does not collide with any id in existing
func NewItemID(tokens TokenSource, existing []Item) string {
	taken := make(map[string]bool, len(existing))
	for _, item := range existing {
		taken[item.ID] = true
	}
	return uniqueToken(tokens, taken)
}

func uniqueToken(tokens TokenSource, taken map[string]bool) string {
	for {
		id := tokens.Token(itemIDLen)
		if id != "" && !taken[id] {
			return id
		}
	}
}

// Clone returns a deep copy so callers never share the item slice
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = make([]Item, len(inv.Items))
	copy(out.Items, inv.Items)
	return out
}

// WithFreelancer returns a copy with the freelancer record replaced
func (inv Invoice) WithFreelancer(f Freelancer) Invoice {
	out := inv.Clone()
	out.Freelancer = f
	return out
}

// WithClient returns a copy with the client record replaced
func (inv Invoice) WithClient(c Client) Invoice {
	out := inv.Clone()
	out.Client = c
	return out
}

// WithDetails returns a copy with the details record replaced
func (inv Invoice) WithDetails(d Details) Invoice {
	out := inv.Clone()
	out.Details = d
	return out
}

// WithItems returns a copy holding its own copy of items
func (inv Invoice) WithItems(items []Item) Invoice {
	out := inv
	out.Items = make([]Item, len(items))
	copy(out.Items, items)
	return out
}

// FindItem returns the item with the given id
func (inv Invoice) FindItem(id string) (Item, bool) {
	i := indexOfItem(inv.Items, id)
	if i < 0 {
		return Item{}, false
	}
	return inv.Items[i], true
}

// Equal reports structural equality; rates compare by value, not representation
func (inv Invoice) Equal(other Invoice) bool {
	if inv.Freelancer != other.Freelancer || inv.Client != other.Client || inv.Details != other.Details {
		return false
	}
	if len(inv.Items) != len(other.Items) {
		return false
	}
	for i := range inv.Items {
		if !inv.Items[i].Equal(other.Items[i]) {
			return false
		}
	}
	return true
}

// Repair restores the builder invariants on data that came from outside,
// such as a stored snapshot: items are normalised, empty or duplicate ids are
// replaced, the list gets one item if empty, and a missing number is generated.
func (inv Invoice) Repair(tokens TokenSource, opts DefaultOptions) Invoice {
	out := inv.Clone()

	taken := make(map[string]bool, len(out.Items))
	for _, item := range out.Items {
		taken[item.ID] = true
	}

	seen := make(map[string]bool, len(out.Items))
	items := make([]Item, 0, len(out.Items))
	for _, item := range out.Items {
		item = NormalizeItem(item.Raw())
		if item.ID == "" || seen[item.ID] {
			item.ID = uniqueToken(tokens, taken)
			taken[item.ID] = true
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	if len(items) == 0 {
		items = append(items, NewItem(tokens.Token(itemIDLen)))
	}
	out.Items = items

	if strings.TrimSpace(out.Details.Number) == "" {
		out.Details.Number = NewInvoiceNumber(tokens, opts.NumberPrefix)
	}

	return out
}

func indexOfItem(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
