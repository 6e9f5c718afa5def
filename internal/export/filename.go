package export

import "fmt"

// Filename derives the PDF filename from the invoice number, falling back
// to a bare "Invoice.pdf" when the number is empty.
func Filename(invoiceNumber string) string {
	if invoiceNumber == "" {
		return "Invoice.pdf"
	}
	return fmt.Sprintf("Invoice_%s.pdf", invoiceNumber)
}

// SpreadsheetFilename derives the workbook filename for the spreadsheet
// rendition, with the same fallback rule.
func SpreadsheetFilename(invoiceNumber string) string {
	if invoiceNumber == "" {
		return "Invoice.xlsx"
	}
	return fmt.Sprintf("Invoice_%s.xlsx", invoiceNumber)
}
