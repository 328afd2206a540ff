// Package preview lays out an invoice the way it is shown to the user and
// printed. The terminal renderer and the PDF rasteriser both draw from the
// same Document.
package preview

import (
	"strconv"
	"strings"
	"time"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	Title = "INVOICE"

	PlaceholderFreelancer  = "Your Name"
	PlaceholderClient      = "Client Name"
	PlaceholderDescription = "Service description"
	PlaceholderDate        = "Select Date"
	PlaceholderDueDate     = "Select Due Date"

	PaymentPrompt = "Click the link below to make a payment:"

	displayDateLayout = "January 2, 2006"
)

// Party is one side of the invoice header
type Party struct {
	Name        string
	Placeholder bool     // Name is a placeholder, not user input
	Lines       []string // contact lines below the name, address split per line
}

// Row is one printed line item
type Row struct {
	Description string
	Placeholder bool
	Quantity    string
	Rate        string
	Amount      string
}

// Document is a fully resolved, display-ready invoice
type Document struct {
	Number      string
	Logo        string
	From        Party
	BillTo      Party
	Date        string
	DueDate     string
	Rows        []Row
	Total       string
	PaymentLink string
	Notes       []string
}

// Build resolves placeholders, dates and money for inv. total is the exact
// invoice total; it is rounded here for display only.
func Build(inv domain.Invoice, total decimal.Decimal) Document {
	doc := Document{
		Number:      inv.Details.Number,
		Logo:        strings.TrimSpace(inv.Freelancer.Logo),
		Date:        displayDate(inv.Details.Date, PlaceholderDate),
		DueDate:     displayDate(inv.Details.DueDate, PlaceholderDueDate),
		Total:       domain.FormatMoney(total),
		PaymentLink: strings.TrimSpace(inv.Details.PaymentLink),
		Notes:       splitLines(inv.Details.Notes),
	}

	doc.From = party(inv.Freelancer.Name, PlaceholderFreelancer,
		inv.Freelancer.Email, inv.Freelancer.Phone, inv.Freelancer.Address)
	doc.BillTo = party(inv.Client.Name, PlaceholderClient,
		inv.Client.Company, inv.Client.Email, inv.Client.Address)

	doc.Rows = make([]Row, 0, len(inv.Items))
	for _, item := range inv.Items {
		row := Row{
			Description: item.Description,
			Quantity:    strconv.Itoa(item.Quantity),
			Rate:        domain.FormatMoney(item.Rate),
			Amount:      domain.FormatMoney(domain.LineAmount(item)),
		}
		if strings.TrimSpace(row.Description) == "" {
			row.Description = PlaceholderDescription
			row.Placeholder = true
		}
		doc.Rows = append(doc.Rows, row)
	}

	return doc
}

// party builds a header block. The last detail is treated as a multi-line
// address; empty details are skipped.
func party(name, placeholder string, details ...string) Party {
	p := Party{Name: strings.TrimSpace(name)}
	if p.Name == "" {
		p.Name = placeholder
		p.Placeholder = true
	}
	for i, d := range details {
		if i == len(details)-1 {
			p.Lines = append(p.Lines, splitLines(d)...)
			continue
		}
		if d = strings.TrimSpace(d); d != "" {
			p.Lines = append(p.Lines, d)
		}
	}
	return p
}

// displayDate formats a stored YYYY-MM-DD date as "January 2, 2006".
// Values that are not dates are shown as typed.
func displayDate(value, placeholder string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return placeholder
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return value
	}
	return t.Format(displayDateLayout)
}

func splitLines(s string) []string {
	s = strings.TrimRight(strings.ReplaceAll(s, "\r\n", "\n"), "\n ")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
