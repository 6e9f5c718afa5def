package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lightspeedlabs/invoicegen/internal/email"
	"github.com/lightspeedlabs/invoicegen/internal/export"
	"github.com/lightspeedlabs/invoicegen/internal/invoice"
	"github.com/lightspeedlabs/invoicegen/internal/render"
	"github.com/lightspeedlabs/invoicegen/internal/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	store     *invoice.Store
	preview   *render.Preview
	renderSvc *render.Service
	sheet     *render.SpreadsheetRenderer
	pipeline  *export.Pipeline
	mail      *email.Manager
	logger    Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	store *invoice.Store,
	preview *render.Preview,
	renderSvc *render.Service,
	sheet *render.SpreadsheetRenderer,
	pipeline *export.Pipeline,
	mail *email.Manager,
	logger Logger,
) *Handlers {
	return &Handlers{
		store:     store,
		preview:   preview,
		renderSvc: renderSvc,
		sheet:     sheet,
		pipeline:  pipeline,
		mail:      mail,
		logger:    logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	RendererReady bool   `json:"renderer_ready"`
	Timestamp     string `json:"timestamp"`
	Version       string `json:"version"`
}

// InvoiceResponse carries the invoice record together with its derived
// totals. Totals are recomputed on every read, never stored.
type InvoiceResponse struct {
	Invoice invoice.Invoice `json:"invoice"`
	Totals  invoice.Totals  `json:"totals"`
}

// DialogResponse represents the email dialog state in API responses
type DialogResponse struct {
	State      string      `json:"state"`
	Downloaded bool        `json:"downloaded"`
	Copied     bool        `json:"copied"`
	Draft      email.Draft `json:"draft"`
}

// CopyRequest selects which draft field to copy
type CopyRequest struct {
	Field string `json:"field" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:        "healthy",
		RendererReady: h.renderSvc.Ready(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// GetInvoice handles GET /api/invoice
func (h *Handlers) GetInvoice(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: InvoiceResponse{
			Invoice: h.store.Snapshot(),
			Totals:  h.store.Totals(),
		},
	})
}

// PatchInvoice handles PATCH /api/invoice
func (h *Handlers) PatchInvoice(c *gin.Context) {
	var patch invoice.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Error("Invalid invoice patch", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid invoice patch",
		})
		return
	}

	inv := h.store.Apply(patch)
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: InvoiceResponse{
			Invoice: inv,
			Totals:  invoice.Compute(inv.Items, inv.TaxRate),
		},
	})
}

// GetTotals handles GET /api/invoice/totals
func (h *Handlers) GetTotals(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.store.Totals(),
	})
}

// GetAdvisories handles GET /api/invoice/advisories
func (h *Handlers) GetAdvisories(c *gin.Context) {
	warnings := invoice.Advisories(h.store.Snapshot())
	if warnings == nil {
		warnings = []string{}
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    warnings,
	})
}

// ReplaceItems handles PUT /api/invoice/items
func (h *Handlers) ReplaceItems(c *gin.Context) {
	var items []invoice.Item
	if err := c.ShouldBindJSON(&items); err != nil {
		h.logger.Error("Invalid item list", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid item list",
		})
		return
	}

	h.respondInvoice(c, h.store.ReplaceItems(items))
}

// AddItem handles POST /api/invoice/items
func (h *Handlers) AddItem(c *gin.Context) {
	h.respondInvoice(c, h.store.AddItem())
}

// UpdateItem handles PATCH /api/invoice/items/:index
func (h *Handlers) UpdateItem(c *gin.Context) {
	index, ok := h.itemIndex(c)
	if !ok {
		return
	}

	var item invoice.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Error("Invalid item", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid item",
		})
		return
	}

	h.respondInvoice(c, h.store.UpdateItem(index, item))
}

// RemoveItem handles DELETE /api/invoice/items/:index. Removing the last
// remaining item, or an out-of-range index, leaves the list unchanged.
func (h *Handlers) RemoveItem(c *gin.Context) {
	index, ok := h.itemIndex(c)
	if !ok {
		return
	}

	h.respondInvoice(c, h.store.RemoveItem(index))
}

// Export handles POST /api/export
func (h *Handlers) Export(c *gin.Context) {
	artifact, err := h.pipeline.Export(c.Request.Context())
	if err != nil {
		h.exportError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    artifact,
	})
}

// ExportAndDownload handles POST /api/export/download
func (h *Handlers) ExportAndDownload(c *gin.Context) {
	artifact, err := h.pipeline.ExportAndSave(c.Request.Context())
	if err != nil {
		h.exportError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    artifact,
	})
}

// GetArtifact handles GET /artifacts/:id
func (h *Handlers) GetArtifact(c *gin.Context) {
	handle := "/artifacts/" + c.Param("id")

	artifact, ok := h.pipeline.Resolve(handle)
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "artifact not found or revoked",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// ExportSpreadsheet handles GET /api/export/spreadsheet. The spreadsheet
// rendition has no readiness gate and no artifact handle; it streams directly.
func (h *Handlers) ExportSpreadsheet(c *gin.Context) {
	inv := h.store.Snapshot()
	snap := render.Snapshot{
		Invoice: inv,
		Totals:  invoice.Compute(inv.Items, inv.TaxRate),
	}

	data, err := h.sheet.Render(snap)
	if err != nil {
		h.logger.Error("Spreadsheet export failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "spreadsheet export failed",
		})
		return
	}

	filename := export.SpreadsheetFilename(inv.InvoiceNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Print handles GET /api/print, serving the rendered PDF inline for the
// platform print surface rather than as a download.
func (h *Handlers) Print(c *gin.Context) {
	snap := h.preview.Activate()

	data, err := h.renderSvc.Render(c.Request.Context(), snap)
	if err != nil {
		h.exportError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+export.Filename(snap.Invoice.InvoiceNumber)+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// OpenEmailDialog handles POST /api/email/dialog
func (h *Handlers) OpenEmailDialog(c *gin.Context) {
	session := h.mail.Open()
	h.respondDialog(c, session)
}

// GetEmailDialog handles GET /api/email/dialog
func (h *Handlers) GetEmailDialog(c *gin.Context) {
	session, ok := h.mail.Current()
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "email dialog is not open",
		})
		return
	}
	h.respondDialog(c, session)
}

// CloseEmailDialog handles DELETE /api/email/dialog
func (h *Handlers) CloseEmailDialog(c *gin.Context) {
	h.mail.Close()
	c.JSON(http.StatusOK, Response{Success: true})
}

// CompleteDownload handles POST /api/email/dialog/download
func (h *Handlers) CompleteDownload(c *gin.Context) {
	session, ok := h.mail.Current()
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "email dialog is not open",
		})
		return
	}

	if _, err := session.CompleteDownload(c.Request.Context()); err != nil {
		h.workflowError(c, err)
		return
	}
	h.respondDialog(c, session)
}

// UpdateDraft handles PATCH /api/email/dialog/draft
func (h *Handlers) UpdateDraft(c *gin.Context) {
	session, ok := h.mail.Current()
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "email dialog is not open",
		})
		return
	}

	var patch email.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Error("Invalid draft patch", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid draft patch",
		})
		return
	}

	if _, err := session.UpdateDraft(patch); err != nil {
		h.workflowError(c, err)
		return
	}
	h.respondDialog(c, session)
}

// OpenEmailClient handles POST /api/email/dialog/open-client. On success the
// dialog is closed and the mail-compose link is returned for the platform to
// invoke.
func (h *Handlers) OpenEmailClient(c *gin.Context) {
	link, err := h.mail.OpenEmailClient()
	if err != nil {
		h.workflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"mailto": link},
	})
}

// CopyDraftField handles POST /api/email/dialog/copy
func (h *Handlers) CopyDraftField(c *gin.Context) {
	session, ok := h.mail.Current()
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "email dialog is not open",
		})
		return
	}

	var req CopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid copy request",
		})
		return
	}

	var err error
	switch req.Field {
	case "subject":
		err = session.CopySubject()
	case "body":
		err = session.CopyBody()
	default:
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "field must be subject or body",
		})
		return
	}
	if err != nil {
		h.logger.Error("Clipboard copy failed", "field", req.Field, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "copy failed",
		})
		return
	}

	h.respondDialog(c, session)
}

// respondInvoice writes the standard invoice-plus-totals payload.
func (h *Handlers) respondInvoice(c *gin.Context, inv invoice.Invoice) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: InvoiceResponse{
			Invoice: inv,
			Totals:  invoice.Compute(inv.Items, inv.TaxRate),
		},
	})
}

// respondDialog writes the email dialog state payload.
func (h *Handlers) respondDialog(c *gin.Context, session *email.Session) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: DialogResponse{
			State:      session.State().String(),
			Downloaded: session.Downloaded(),
			Copied:     session.Copied(),
			Draft:      session.Draft(),
		},
	})
}

// itemIndex parses the :index path parameter.
func (h *Handlers) itemIndex(c *gin.Context) (int, bool) {
	indexStr := c.Param("index")
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		h.logger.Error("Invalid item index", "index", indexStr, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid item index",
		})
		return 0, false
	}
	return index, true
}

// exportError maps export pipeline failures to status codes. A not-ready
// renderer is retriable, so it surfaces as 503 rather than 500.
func (h *Handlers) exportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, export.ErrRendererNotReady):
		c.JSON(http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "pdf renderer is still loading, try again",
		})
	case errors.Is(err, export.ErrSaveFailure):
		h.logger.Error("Artifact save failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to save the exported file",
		})
	default:
		h.logger.Error("Export failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to generate the pdf",
		})
	}
}

// workflowError maps email workflow failures to status codes.
func (h *Handlers) workflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Error:   err.Error(),
		})
	case errors.Is(err, email.ErrNoSession):
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "email dialog is not open",
		})
	default:
		h.exportError(c, err)
	}
}
