package email

import (
	"net/url"
	"strings"
)

// ComposeURL builds the platform mail-compose invocation for the draft.
// Subject and body are percent-encoded the way mail clients expect: spaces
// become %20, never '+'.
func ComposeURL(d Draft) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(d.Recipient)
	b.WriteString("?subject=")
	b.WriteString(encodeComponent(d.Subject))
	b.WriteString("&body=")
	b.WriteString(encodeComponent(d.Body))
	return b.String()
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
