package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/invoice"
)

func TestSpreadsheetRenderer_Render(t *testing.T) {
	sr := NewSpreadsheetRenderer(invoice.NewFormatter("LKR", "en-US"), zap.NewNop())

	workbook, err := sr.Render(testSnapshot())
	require.NoError(t, err)
	require.NotEmpty(t, workbook)

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Invoice"}, f.GetSheetList())

	cell := func(ref string) string {
		v, err := f.GetCellValue("Invoice", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Acme", cell("A1"))
	assert.Equal(t, "INV-042", cell("D2"))
	assert.Equal(t, "Globex", cell("B4"))
	assert.Equal(t, "Design", cell("A8"))
	assert.Equal(t, "100", cell("B8"))
	assert.Equal(t, "Hosting", cell("A9"))
	assert.Equal(t, "Subtotal", cell("A11"))
	assert.Equal(t, "120", cell("B11"))
	assert.Equal(t, "Tax (10%)", cell("A12"))
	assert.Equal(t, "Total", cell("A13"))
	assert.Equal(t, "132", cell("B13"))
}

func TestSpreadsheetRenderer_OmitsTaxRowAtZeroRate(t *testing.T) {
	sr := NewSpreadsheetRenderer(invoice.NewFormatter("LKR", "en-US"), zap.NewNop())

	snap := testSnapshot()
	snap.Invoice.TaxRate = 0
	snap.Totals = invoice.Compute(snap.Invoice.Items, 0)

	workbook, err := sr.Render(snap)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Invoice", "A12")
	require.NoError(t, err)
	assert.Equal(t, "Total", v)
}
