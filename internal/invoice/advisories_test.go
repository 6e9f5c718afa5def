package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvisories(t *testing.T) {
	complete := Invoice{
		ClientName:  "Globex",
		ClientEmail: "ap@globex.example",
		DueDate:     "2026-09-15",
	}
	assert.Empty(t, Advisories(complete))

	blank := Invoice{}
	warnings := Advisories(blank)
	assert.Len(t, warnings, 3)
	assert.Contains(t, warnings, "client name is empty")

	badEmail := complete
	badEmail.ClientEmail = "not-an-address"
	warnings = Advisories(badEmail)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "does not look like an email address")
}
