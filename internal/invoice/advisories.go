package invoice

import "github.com/lightspeedlabs/invoicegen/pkg/utils"

// Advisories returns non-blocking warnings about fields that are usually
// expected on a finished invoice. Nothing downstream gates on them; exports
// proceed regardless.
func Advisories(inv Invoice) []string {
	var out []string
	if inv.ClientName == "" {
		out = append(out, "client name is empty")
	}
	if inv.ClientEmail == "" {
		out = append(out, "client email is empty")
	} else if err := utils.ValidateEmail(inv.ClientEmail); err != nil {
		out = append(out, "client email does not look like an email address")
	}
	if inv.DueDate == "" {
		out = append(out, "due date is not set")
	}
	return out
}
