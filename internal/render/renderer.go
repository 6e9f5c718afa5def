package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/invoice"
)

const logoBoxMM = 16

// PDFRenderer lays a preview snapshot out as a single-page PDF document.
// The layout mirrors the on-screen preview: company header, bill-to block,
// item table, totals and optional notes/terms, on a white page.
type PDFRenderer struct {
	opts      Options
	formatter *invoice.Formatter
	logo      []byte
	logger    *zap.Logger
}

// NewPDFRenderer creates a renderer with the given fixed options. logoPath
// may be empty; when set, the image is re-encoded as JPEG at the configured
// quality and embedded in the header.
func NewPDFRenderer(opts Options, formatter *invoice.Formatter, logoPath string, logger *zap.Logger) (*PDFRenderer, error) {
	r := &PDFRenderer{
		opts:      opts,
		formatter: formatter,
		logger:    logger,
	}

	if logoPath != "" {
		logo, err := r.prepareLogo(logoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare logo: %w", err)
		}
		r.logo = logo
	}

	return r, nil
}

// Render converts the snapshot into PDF bytes. It has no side effects; in
// particular it never touches the live preview or triggers a download.
func (r *PDFRenderer) Render(snap Snapshot) ([]byte, error) {
	pdf := gofpdf.New(r.opts.Orientation, "mm", r.opts.PageSize, "")
	pdf.SetMargins(r.opts.MarginMM, r.opts.MarginMM, r.opts.MarginMM)
	pdf.SetAutoPageBreak(true, r.opts.MarginMM)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*r.opts.MarginMM

	r.drawHeader(pdf, snap.Invoice, usable)
	r.drawBillTo(pdf, snap.Invoice, usable)
	r.drawItems(pdf, snap.Invoice.Items, usable)
	r.drawTotals(pdf, snap.Invoice.TaxRate, snap.Totals, usable)
	r.drawNotesAndTerms(pdf, snap.Invoice, usable)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) drawHeader(pdf *gofpdf.Fpdf, inv invoice.Invoice, usable float64) {
	left := r.opts.MarginMM
	top := pdf.GetY()
	leftW := usable * 0.55

	y := top
	if r.logo != nil {
		pdf.RegisterImageOptionsReader("logo", gofpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(r.logo))
		pdf.ImageOptions("logo", left, y, logoBoxMM, logoBoxMM, false, gofpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
		y += logoBoxMM + 3
	}

	pdf.SetXY(left, y)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(leftW, 9, fallback(inv.CompanyName, "Your Company"), "", 2, "L", false, 0, "")
	if inv.CompanyEmail != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(leftW, 6, inv.CompanyEmail, "", 2, "L", false, 0, "")
	}
	leftBottom := pdf.GetY()

	pdf.SetXY(left+leftW, top)
	rightW := usable - leftW
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(rightW, 11, "INVOICE", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if inv.InvoiceNumber != "" {
		pdf.CellFormat(rightW, 6, "#"+inv.InvoiceNumber, "", 2, "R", false, 0, "")
	}
	if inv.Date != "" {
		pdf.CellFormat(rightW, 6, "Date: "+displayDate(inv.Date), "", 2, "R", false, 0, "")
	}
	if inv.DueDate != "" {
		pdf.CellFormat(rightW, 6, "Due Date: "+displayDate(inv.DueDate), "", 2, "R", false, 0, "")
	}
	rightBottom := pdf.GetY()

	if leftBottom > rightBottom {
		pdf.SetY(leftBottom + 8)
	} else {
		pdf.SetY(rightBottom + 8)
	}
}

func (r *PDFRenderer) drawBillTo(pdf *gofpdf.Fpdf, inv invoice.Invoice, usable float64) {
	left := r.opts.MarginMM
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(left, pdf.GetY(), left+usable, pdf.GetY())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(usable, 7, "Bill To:", "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(usable, 6, inv.ClientName, "", 2, "L", false, 0, "")
	if inv.ClientEmail != "" {
		pdf.CellFormat(usable, 6, inv.ClientEmail, "", 2, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(left, pdf.GetY(), left+usable, pdf.GetY())
	pdf.Ln(6)
}

func (r *PDFRenderer) drawItems(pdf *gofpdf.Fpdf, items []invoice.Item, usable float64) {
	descW := usable * 0.7
	amountW := usable - descW

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(descW, 8, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(amountW, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range items {
		pdf.CellFormat(descW, 9, fallback(item.Description, "Item description"), "B", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, 9, r.formatter.Format(item.Price), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) drawTotals(pdf *gofpdf.Fpdf, taxRate float64, totals invoice.Totals, usable float64) {
	blockW := usable * 0.35
	labelW := blockW * 0.5
	valueW := blockW - labelW
	left := r.opts.MarginMM + usable - blockW

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(left)
	pdf.CellFormat(labelW, 7, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 7, r.formatter.Format(totals.Subtotal), "", 1, "R", false, 0, "")

	if taxRate > 0 {
		pdf.SetX(left)
		pdf.CellFormat(labelW, 7, fmt.Sprintf("Tax (%s%%):", formatRate(taxRate)), "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 7, r.formatter.Format(totals.Tax), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(left)
	pdf.CellFormat(labelW, 8, "Total:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 8, r.formatter.Format(totals.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(6)
}

func (r *PDFRenderer) drawNotesAndTerms(pdf *gofpdf.Fpdf, inv invoice.Invoice, usable float64) {
	if inv.Notes == "" && inv.Terms == "" {
		return
	}

	if inv.Notes != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(usable, 7, "Notes:", "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(usable, 5, inv.Notes, "", "L", false)
		pdf.Ln(3)
	}
	if inv.Terms != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(usable, 7, "Terms & Conditions:", "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(usable, 5, inv.Terms, "", "L", false)
	}
}

// prepareLogo decodes the configured logo and re-encodes it as JPEG at the
// configured quality. The oversampling scale sets the raster density the
// source should meet for the fixed header box; undersized sources are only
// warned about.
func (r *PDFRenderer) prepareLogo(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo: %w", err)
	}

	// ~3.78 px/mm at 96 DPI, multiplied by the oversampling factor.
	wantPx := int(logoBoxMM * 3.78 * r.opts.Scale)
	if img.Bounds().Dx() < wantPx {
		r.logger.Warn("Logo below target raster density",
			zap.Int("width_px", img.Bounds().Dx()),
			zap.Int("target_px", wantPx))
	}

	var buf bytes.Buffer
	quality := int(r.opts.ImageQuality*100 + 0.5)
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode logo: %w", err)
	}
	return buf.Bytes(), nil
}

// displayDate renders an ISO-8601 date the way the preview does. Unparseable
// values pass through untouched; dates are free text at the model level.
func displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("1/2/2006")
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
