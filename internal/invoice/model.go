package invoice

import "time"

// Item represents a single billable line item on an invoice.
// Item identity is positional: reordering or removal shifts identity.
type Item struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Invoice is the canonical mutable record of an invoice. It holds only
// inputs; subtotal, tax and total are always derived, never stored.
type Invoice struct {
	InvoiceNumber string  `json:"invoice_number"`
	Date          string  `json:"date"`
	DueDate       string  `json:"due_date"`
	ClientName    string  `json:"client_name"`
	ClientEmail   string  `json:"client_email"`
	CompanyName   string  `json:"company_name"`
	CompanyEmail  string  `json:"company_email"`
	Items         []Item  `json:"items"`
	Notes         string  `json:"notes"`
	Terms         string  `json:"terms"`
	TaxRate       float64 `json:"tax_rate"`
}

// Branding holds per-deployment defaults for a fresh invoice. The two
// original page variants differed only in these values.
type Branding struct {
	CompanyName   string
	CompanyEmail  string
	InvoicePrefix string
}

// New creates a fresh invoice seeded from branding defaults: the invoice
// number is the configured prefix, the date is today in ISO-8601 form, and
// the item list starts with a single blank line item.
func New(branding Branding) Invoice {
	return Invoice{
		InvoiceNumber: branding.InvoicePrefix,
		Date:          time.Now().Format("2006-01-02"),
		CompanyName:   branding.CompanyName,
		CompanyEmail:  branding.CompanyEmail,
		Items:         []Item{{}},
	}
}

// Clone returns a deep copy of the invoice. Snapshots handed to the export
// pipeline must not alias the live item slice.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = append([]Item(nil), inv.Items...)
	return out
}
