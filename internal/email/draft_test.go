package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDraft_Subject(t *testing.T) {
	tests := []struct {
		name     string
		dc       DraftContext
		expected string
	}{
		{
			name:     "number and company present",
			dc:       DraftContext{InvoiceNumber: "INV-7", CompanyName: "Acme"},
			expected: "Invoice #INV-7 from Acme",
		},
		{
			name:     "missing number falls back to New",
			dc:       DraftContext{CompanyName: "Acme"},
			expected: "Invoice #New from Acme",
		},
		{
			name:     "missing company falls back to Your Company",
			dc:       DraftContext{InvoiceNumber: "INV-7"},
			expected: "Invoice #INV-7 from Your Company",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultDraft(tt.dc).Subject)
		})
	}
}

func TestDefaultDraft_Body(t *testing.T) {
	draft := DefaultDraft(DraftContext{
		InvoiceNumber:  "INV-7",
		CompanyName:    "Acme",
		ClientName:     "Globex",
		ClientEmail:    "ap@globex.example",
		FormattedTotal: "LKR 132.00",
	})

	assert.Equal(t, "ap@globex.example", draft.Recipient)
	assert.Contains(t, draft.Body, "Dear Globex,")
	assert.Contains(t, draft.Body, "invoice #INV-7")
	assert.Contains(t, draft.Body, "Total Amount: LKR 132.00")
	assert.Contains(t, draft.Body, "Best regards,\nAcme")
}

func TestDefaultDraft_BodyFallbacks(t *testing.T) {
	draft := DefaultDraft(DraftContext{FormattedTotal: "LKR 0.00"})

	assert.Contains(t, draft.Body, "Dear Client,")
	assert.Contains(t, draft.Body, "invoice #New")
	assert.Contains(t, draft.Body, "Your Company")
}

func TestComposeURL(t *testing.T) {
	link := ComposeURL(Draft{
		Recipient: "ap@globex.example",
		Subject:   "Invoice #INV-7 from Acme",
		Body:      "line one\nline two & more",
	})

	assert.Equal(t,
		"mailto:ap@globex.example"+
			"?subject=Invoice%20%23INV-7%20from%20Acme"+
			"&body=line%20one%0Aline%20two%20%26%20more",
		link)
}
