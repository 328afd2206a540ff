package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/service"
)

type rowKind int

const (
	rowFreelancer rowKind = iota
	rowClient
	rowDetail
	rowItem
)

// formRow is one editable field of the form
type formRow struct {
	kind    rowKind
	section string
	label   string

	freelancer domain.FreelancerField
	client     domain.ClientField
	detail     domain.DetailField
	itemID     string
	item       domain.ItemField
}

var (
	freelancerLabels = map[domain.FreelancerField]string{
		domain.FreelancerName:    "Name",
		domain.FreelancerEmail:   "Email",
		domain.FreelancerPhone:   "Phone",
		domain.FreelancerLogo:    "Logo",
		domain.FreelancerAddress: "Address",
	}
	clientLabels = map[domain.ClientField]string{
		domain.ClientName:    "Name",
		domain.ClientCompany: "Company",
		domain.ClientEmail:   "Email",
		domain.ClientAddress: "Address",
	}
	detailLabels = map[domain.DetailField]string{
		domain.DetailNumber:      "Number",
		domain.DetailDate:        "Date",
		domain.DetailDueDate:     "Due Date",
		domain.DetailPaymentLink: "Payment Link",
		domain.DetailNotes:       "Notes",
	}
	itemLabels = map[domain.ItemField]string{
		domain.ItemDescription: "Description",
		domain.ItemQuantity:    "Quantity",
		domain.ItemRate:        "Rate",
	}
)

// buildRows lays out the form for inv, items last
func buildRows(inv domain.Invoice) []formRow {
	rows := make([]formRow, 0, 14+3*len(inv.Items))

	for _, f := range domain.FreelancerFields {
		rows = append(rows, formRow{kind: rowFreelancer, section: "Your Details", label: freelancerLabels[f], freelancer: f})
	}
	for _, f := range domain.ClientFields {
		rows = append(rows, formRow{kind: rowClient, section: "Bill To", label: clientLabels[f], client: f})
	}
	for _, f := range domain.DetailFields {
		rows = append(rows, formRow{kind: rowDetail, section: "Invoice", label: detailLabels[f], detail: f})
	}
	for i, item := range inv.Items {
		section := fmt.Sprintf("Item %d", i+1)
		for _, f := range domain.ItemFields {
			rows = append(rows, formRow{kind: rowItem, section: section, label: itemLabels[f], itemID: item.ID, item: f})
		}
	}

	return rows
}

// value returns the field in editable form. Line breaks show as \n so
// multi-line fields fit a single-line input.
func (r formRow) value(inv domain.Invoice) string {
	var v string
	switch r.kind {
	case rowFreelancer:
		v = inv.Freelancer.Get(r.freelancer)
	case rowClient:
		v = inv.Client.Get(r.client)
	case rowDetail:
		v = inv.Details.Get(r.detail)
	case rowItem:
		if item, ok := inv.FindItem(r.itemID); ok {
			v = item.Get(r.item)
		}
	}
	return strings.ReplaceAll(v, "\n", `\n`)
}

// apply writes an edited value back through the builder
func (r formRow) apply(ctx context.Context, b *service.Builder, value string) {
	value = strings.ReplaceAll(value, `\n`, "\n")
	switch r.kind {
	case rowFreelancer:
		b.UpdateFreelancerField(ctx, r.freelancer, value)
	case rowClient:
		b.UpdateClientField(ctx, r.client, value)
	case rowDetail:
		b.UpdateDetailField(ctx, r.detail, value)
	case rowItem:
		b.UpdateItem(ctx, r.itemID, r.item, value)
	}
}

func (r formRow) placeholder() string {
	switch r.kind {
	case rowDetail:
		switch r.detail {
		case domain.DetailDate, domain.DetailDueDate:
			return "YYYY-MM-DD"
		case domain.DetailPaymentLink:
			return "https://"
		}
	case rowItem:
		switch r.item {
		case domain.ItemQuantity:
			return "1"
		case domain.ItemRate:
			return "0.00"
		}
	case rowFreelancer, rowClient:
		if r.freelancer == domain.FreelancerAddress || r.client == domain.ClientAddress {
			return `Street\nCity`
		}
	}
	return ""
}

// indexOf finds the row for an item field, or -1
func indexOf(rows []formRow, itemID string, field domain.ItemField) int {
	for i, r := range rows {
		if r.kind == rowItem && r.itemID == itemID && r.item == field {
			return i
		}
	}
	return -1
}
