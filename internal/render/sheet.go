package render

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/invoice"
)

const sheetName = "Invoice"

// SpreadsheetRenderer produces an .xlsx rendition of the invoice. This is a
// supplementary export surface, independent of the PDF pipeline: it offers
// no artifact handle and no download gating.
type SpreadsheetRenderer struct {
	formatter *invoice.Formatter
	logger    *zap.Logger
}

// NewSpreadsheetRenderer creates a spreadsheet renderer.
func NewSpreadsheetRenderer(formatter *invoice.Formatter, logger *zap.Logger) *SpreadsheetRenderer {
	return &SpreadsheetRenderer{
		formatter: formatter,
		logger:    logger,
	}
}

// Render writes the snapshot into a single-sheet workbook. Monetary cells
// stay numeric so the recipient can keep calculating with them.
func (sr *SpreadsheetRenderer) Render(snap Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	inv := snap.Invoice
	sr.setCell(f, "A1", fallback(inv.CompanyName, "Your Company"))
	sr.setCell(f, "A2", inv.CompanyEmail)
	sr.setCell(f, "D1", "INVOICE")
	sr.setCell(f, "D2", inv.InvoiceNumber)
	sr.setCell(f, "D3", inv.Date)
	sr.setCell(f, "D4", inv.DueDate)

	sr.setCell(f, "A4", "Bill To:")
	sr.setCell(f, "B4", inv.ClientName)
	sr.setCell(f, "B5", inv.ClientEmail)

	sr.setCell(f, "A7", "Description")
	sr.setCell(f, "B7", fmt.Sprintf("Amount (%s)", sr.formatter.Code()))

	row := 8
	for _, item := range inv.Items {
		sr.setCell(f, "A"+strconv.Itoa(row), fallback(item.Description, "Item description"))
		sr.setCell(f, "B"+strconv.Itoa(row), item.Price)
		row++
	}

	row++
	sr.setCell(f, "A"+strconv.Itoa(row), "Subtotal")
	sr.setCell(f, "B"+strconv.Itoa(row), snap.Totals.Subtotal)
	if inv.TaxRate > 0 {
		row++
		sr.setCell(f, "A"+strconv.Itoa(row), fmt.Sprintf("Tax (%s%%)", formatRate(inv.TaxRate)))
		sr.setCell(f, "B"+strconv.Itoa(row), snap.Totals.Tax)
	}
	row++
	sr.setCell(f, "A"+strconv.Itoa(row), "Total")
	sr.setCell(f, "B"+strconv.Itoa(row), snap.Totals.Total)

	if inv.Notes != "" {
		row += 2
		sr.setCell(f, "A"+strconv.Itoa(row), "Notes")
		sr.setCell(f, "B"+strconv.Itoa(row), inv.Notes)
	}
	if inv.Terms != "" {
		row += 2
		sr.setCell(f, "A"+strconv.Itoa(row), "Terms & Conditions")
		sr.setCell(f, "B"+strconv.Itoa(row), inv.Terms)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell sets a cell value, logging instead of failing on bad coordinates.
func (sr *SpreadsheetRenderer) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		sr.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
