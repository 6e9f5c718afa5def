package invoice

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders monetary amounts for display in a fixed currency and
// locale. Formatting is applied only at render time and never mutates
// stored values.
type Formatter struct {
	code    string
	printer *message.Printer
}

// NewFormatter creates a formatter for the given ISO-4217 currency code and
// BCP-47 locale. An unparseable locale falls back to English.
func NewFormatter(currencyCode, locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		code:    currencyCode,
		printer: message.NewPrinter(tag),
	}
}

// Format renders the amount with the currency code prefix, e.g. "LKR 132.00".
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%s %.2f", f.code, amount)
}

// Code returns the configured currency code.
func (f *Formatter) Code() string {
	return f.code
}
