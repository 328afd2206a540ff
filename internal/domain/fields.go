package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a field name does not match any record field
var ErrUnknownField = errors.New("unknown field")

type FreelancerField string

const (
	FreelancerName    FreelancerField = "name"
	FreelancerEmail   FreelancerField = "email"
	FreelancerPhone   FreelancerField = "phone"
	FreelancerAddress FreelancerField = "address"
	FreelancerLogo    FreelancerField = "logo"
)

// FreelancerFields lists the fields in form order
var FreelancerFields = []FreelancerField{
	FreelancerName, FreelancerEmail, FreelancerPhone, FreelancerLogo, FreelancerAddress,
}

type ClientField string

const (
	ClientName    ClientField = "name"
	ClientCompany ClientField = "company"
	ClientEmail   ClientField = "email"
	ClientAddress ClientField = "address"
)

var ClientFields = []ClientField{ClientName, ClientCompany, ClientEmail, ClientAddress}

type DetailField string

const (
	DetailNumber      DetailField = "number"
	DetailDate        DetailField = "date"
	DetailDueDate     DetailField = "dueDate"
	DetailNotes       DetailField = "notes"
	DetailPaymentLink DetailField = "paymentLink"
)

var DetailFields = []DetailField{DetailNumber, DetailDate, DetailDueDate, DetailPaymentLink, DetailNotes}

type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemRate        ItemField = "rate"
)

var ItemFields = []ItemField{ItemDescription, ItemQuantity, ItemRate}

// ParseFreelancerField resolves a field name as used by the CLI
func ParseFreelancerField(s string) (FreelancerField, error) {
	for _, f := range FreelancerFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: freelancer.%s", ErrUnknownField, s)
}

func ParseClientField(s string) (ClientField, error) {
	for _, f := range ClientFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: client.%s", ErrUnknownField, s)
}

func ParseDetailField(s string) (DetailField, error) {
	// accept the snake-case spelling too, it is what people type on a shell
	if s == "due_date" || s == "due" {
		return DetailDueDate, nil
	}
	if s == "payment_link" || s == "link" {
		return DetailPaymentLink, nil
	}
	for _, f := range DetailFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: invoice.%s", ErrUnknownField, s)
}

func ParseItemField(s string) (ItemField, error) {
	switch s {
	case "qty":
		return ItemQuantity, nil
	case "desc":
		return ItemDescription, nil
	}
	for _, f := range ItemFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: item.%s", ErrUnknownField, s)
}

// With returns a copy with one field replaced
func (f Freelancer) With(field FreelancerField, value string) Freelancer {
	switch field {
	case FreelancerName:
		f.Name = value
	case FreelancerEmail:
		f.Email = value
	case FreelancerPhone:
		f.Phone = value
	case FreelancerAddress:
		f.Address = value
	case FreelancerLogo:
		f.Logo = value
	}
	return f
}

// Get returns the value of one field
func (f Freelancer) Get(field FreelancerField) string {
	switch field {
	case FreelancerName:
		return f.Name
	case FreelancerEmail:
		return f.Email
	case FreelancerPhone:
		return f.Phone
	case FreelancerAddress:
		return f.Address
	case FreelancerLogo:
		return f.Logo
	}
	return ""
}

func (c Client) With(field ClientField, value string) Client {
	switch field {
	case ClientName:
		c.Name = value
	case ClientCompany:
		c.Company = value
	case ClientEmail:
		c.Email = value
	case ClientAddress:
		c.Address = value
	}
	return c
}

func (c Client) Get(field ClientField) string {
	switch field {
	case ClientName:
		return c.Name
	case ClientCompany:
		return c.Company
	case ClientEmail:
		return c.Email
	case ClientAddress:
		return c.Address
	}
	return ""
}

func (d Details) With(field DetailField, value string) Details {
	switch field {
	case DetailNumber:
		d.Number = value
	case DetailDate:
		d.Date = value
	case DetailDueDate:
		d.DueDate = value
	case DetailNotes:
		d.Notes = value
	case DetailPaymentLink:
		d.PaymentLink = value
	}
	return d
}

func (d Details) Get(field DetailField) string {
	switch field {
	case DetailNumber:
		return d.Number
	case DetailDate:
		return d.Date
	case DetailDueDate:
		return d.DueDate
	case DetailNotes:
		return d.Notes
	case DetailPaymentLink:
		return d.PaymentLink
	}
	return ""
}

// Get returns the value of one item field in user-input form
func (i Item) Get(field ItemField) string {
	raw := i.Raw()
	switch field {
	case ItemDescription:
		return raw.Description
	case ItemQuantity:
		return raw.Quantity
	case ItemRate:
		return raw.Rate
	}
	return ""
}
