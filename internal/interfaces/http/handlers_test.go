package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/email"
	"github.com/lightspeedlabs/invoicegen/internal/export"
	"github.com/lightspeedlabs/invoicegen/internal/invoice"
	"github.com/lightspeedlabs/invoicegen/internal/render"
	"github.com/lightspeedlabs/invoicegen/internal/storage"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

func newTestServer(t *testing.T, rendererReady bool) *Server {
	t.Helper()
	logger := zap.NewNop()

	store := invoice.NewStore(invoice.Branding{
		CompanyName:   "Acme",
		CompanyEmail:  "billing@acme.example",
		InvoicePrefix: "INV-",
	}, logger)

	formatter := invoice.NewFormatter("LKR", "en-US")

	renderer, err := render.NewPDFRenderer(render.DefaultOptions(), formatter, "", logger)
	require.NoError(t, err)

	renderSvc := render.NewService(renderer, logger)
	if rendererReady {
		require.NoError(t, renderSvc.Init(context.Background()))
	}

	preview := render.NewPreview(store)
	registry := export.NewRegistry(logger)
	saver := storage.NewLocalSaver(t.TempDir(), logger)
	pipeline := export.NewPipeline(preview, renderSvc, registry, saver, logger)
	sheet := render.NewSpreadsheetRenderer(formatter, logger)
	mail := email.NewManager(pipeline, email.NewStoreSource(store, formatter), email.NewMemoryClipboard(), logger)

	return NewServer(DefaultServerConfig(), store, preview, renderSvc, sheet, pipeline, mail, nopLogger{})
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
		Error   string                 `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success, "error: %s", resp.Error)
	return resp.Data
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, false, data["renderer_ready"])
}

func TestGetInvoice(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodGet, "/api/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	inv := data["invoice"].(map[string]interface{})
	assert.Equal(t, "INV-", inv["invoice_number"])
	assert.Equal(t, "Acme", inv["company_name"])
	assert.Len(t, inv["items"], 1)

	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, 0.0, totals["total"])
}

func TestPatchInvoiceRecomputesTotals(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodPut, "/api/invoice/items", []invoice.Item{
		{Description: "Design", Price: 100},
		{Description: "Hosting", Price: 20},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, server, http.MethodPatch, "/api/invoice", map[string]interface{}{
		"tax_rate": 10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	totals := decodeData(t, w)["totals"].(map[string]interface{})
	assert.Equal(t, 120.0, totals["subtotal"])
	assert.Equal(t, 12.0, totals["tax"])
	assert.Equal(t, 132.0, totals["total"])
}

func TestItemEndpoints(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodPost, "/api/invoice/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inv := decodeData(t, w)["invoice"].(map[string]interface{})
	assert.Len(t, inv["items"], 2)

	w = doRequest(t, server, http.MethodPatch, "/api/invoice/items/1", invoice.Item{
		Description: "Support", Price: 50,
	})
	require.Equal(t, http.StatusOK, w.Code)
	totals := decodeData(t, w)["totals"].(map[string]interface{})
	assert.Equal(t, 50.0, totals["subtotal"])

	w = doRequest(t, server, http.MethodDelete, "/api/invoice/items/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inv = decodeData(t, w)["invoice"].(map[string]interface{})
	assert.Len(t, inv["items"], 1)

	// The last remaining item cannot be removed.
	w = doRequest(t, server, http.MethodDelete, "/api/invoice/items/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inv = decodeData(t, w)["invoice"].(map[string]interface{})
	assert.Len(t, inv["items"], 1)

	w = doRequest(t, server, http.MethodDelete, "/api/invoice/items/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdvisories(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodGet, "/api/invoice/advisories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data, "client name is empty")
}

func TestExportBeforeRendererReady(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodPost, "/api/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestExportAndArtifactLifecycle(t *testing.T) {
	server := newTestServer(t, true)

	w := doRequest(t, server, http.MethodPost, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decodeData(t, w)
	firstURL := first["url"].(string)
	assert.Equal(t, "Invoice_INV-.pdf", first["filename"])

	w = doRequest(t, server, http.MethodGet, firstURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// A new export supersedes the previous handle.
	w = doRequest(t, server, http.MethodPost, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, server, http.MethodGet, firstURL, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportSpreadsheet(t *testing.T) {
	server := newTestServer(t, false)

	w := doRequest(t, server, http.MethodGet, "/api/export/spreadsheet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Invoice_INV-.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestPrint(t *testing.T) {
	server := newTestServer(t, true)

	w := doRequest(t, server, http.MethodGet, "/api/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestEmailDialogFlow(t *testing.T) {
	server := newTestServer(t, true)

	w := doRequest(t, server, http.MethodPost, "/api/email/dialog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dialog := decodeData(t, w)
	assert.Equal(t, "DOWNLOAD", dialog["state"])
	assert.Equal(t, false, dialog["downloaded"])

	// Draft is not editable before the download step completes.
	w = doRequest(t, server, http.MethodPatch, "/api/email/dialog/draft", map[string]string{
		"subject": "early",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, server, http.MethodPost, "/api/email/dialog/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dialog = decodeData(t, w)
	assert.Equal(t, "COMPOSE", dialog["state"])
	assert.Equal(t, true, dialog["downloaded"])

	draft := dialog["draft"].(map[string]interface{})
	assert.Contains(t, draft["subject"], "Invoice #INV-")

	w = doRequest(t, server, http.MethodPost, "/api/email/dialog/copy", map[string]string{
		"field": "subject",
	})
	require.Equal(t, http.StatusOK, w.Code)
	dialog = decodeData(t, w)
	assert.Equal(t, true, dialog["copied"])

	w = doRequest(t, server, http.MethodPost, "/api/email/dialog/open-client", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data["mailto"], "mailto:")

	// The handoff closes the dialog.
	w = doRequest(t, server, http.MethodGet, "/api/email/dialog", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmailDialogClosedOperations(t *testing.T) {
	server := newTestServer(t, true)

	w := doRequest(t, server, http.MethodPost, "/api/email/dialog/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, server, http.MethodPost, "/api/email/dialog/open-client", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
