package email

import (
	"fmt"

	"github.com/lightspeedlabs/invoicegen/internal/invoice"
)

// Draft is the editable mail-compose state: recipient, subject and body.
// Defaults are seeded once when the session reaches the compose step and are
// never re-seeded over the user's edits.
type Draft struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// DraftPatch carries a partial draft update; nil fields are left untouched.
type DraftPatch struct {
	Recipient *string `json:"recipient"`
	Subject   *string `json:"subject"`
	Body      *string `json:"body"`
}

// DraftContext is the slice of invoice state the default draft derives from.
type DraftContext struct {
	InvoiceNumber  string
	CompanyName    string
	ClientName     string
	ClientEmail    string
	FormattedTotal string
}

// DefaultDraft derives the seeded draft from the invoice: the client contact
// as recipient, and a templated subject and body naming the invoice number,
// company and formatted total.
func DefaultDraft(dc DraftContext) Draft {
	number := dc.InvoiceNumber
	if number == "" {
		number = "New"
	}
	company := dc.CompanyName
	if company == "" {
		company = "Your Company"
	}
	client := dc.ClientName
	if client == "" {
		client = "Client"
	}

	body := fmt.Sprintf(`Dear %s,

Please find attached the invoice #%s.

Total Amount: %s

If you have any questions, please don't hesitate to contact us.

Best regards,
%s`, client, number, dc.FormattedTotal, company)

	return Draft{
		Recipient: dc.ClientEmail,
		Subject:   fmt.Sprintf("Invoice #%s from %s", number, company),
		Body:      body,
	}
}

// StoreSource derives the draft context from the live invoice store.
type StoreSource struct {
	store     *invoice.Store
	formatter *invoice.Formatter
}

// NewStoreSource creates a draft source over the store.
func NewStoreSource(store *invoice.Store, formatter *invoice.Formatter) *StoreSource {
	return &StoreSource{store: store, formatter: formatter}
}

// DraftContext captures the fields the default draft needs.
func (s *StoreSource) DraftContext() DraftContext {
	inv := s.store.Snapshot()
	totals := invoice.Compute(inv.Items, inv.TaxRate)
	return DraftContext{
		InvoiceNumber:  inv.InvoiceNumber,
		CompanyName:    inv.CompanyName,
		ClientName:     inv.ClientName,
		ClientEmail:    inv.ClientEmail,
		FormattedTotal: s.formatter.Format(totals.Total),
	}
}
