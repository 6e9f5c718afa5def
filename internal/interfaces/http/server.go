// Package http provides the HTTP server adapter for the invoice editor.
// This is a thin adapter layer that translates HTTP requests to calls on the
// invoice store, the export pipeline and the email workflow.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lightspeedlabs/invoicegen/internal/email"
	"github.com/lightspeedlabs/invoicegen/internal/export"
	"github.com/lightspeedlabs/invoicegen/internal/invoice"
	"github.com/lightspeedlabs/invoicegen/internal/render"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	store      *invoice.Store
	preview    *render.Preview
	renderSvc  *render.Service
	sheet      *render.SpreadsheetRenderer
	pipeline   *export.Pipeline
	mail       *email.Manager
	logger     Logger
}

// NewServer creates a new HTTP server over the editor's components
func NewServer(
	config ServerConfig,
	store *invoice.Store,
	preview *render.Preview,
	renderSvc *render.Service,
	sheet *render.SpreadsheetRenderer,
	pipeline *export.Pipeline,
	mail *email.Manager,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:    config,
		router:    router,
		store:     store,
		preview:   preview,
		renderSvc: renderSvc,
		sheet:     sheet,
		pipeline:  pipeline,
		mail:      mail,
		logger:    logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.store, s.preview, s.renderSvc, s.sheet, s.pipeline, s.mail, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// Published artifact handles
	s.router.GET("/artifacts/:id", handlers.GetArtifact)

	// API routes
	api := s.router.Group("/api")
	{
		// Invoice record
		api.GET("/invoice", handlers.GetInvoice)
		api.PATCH("/invoice", handlers.PatchInvoice)
		api.GET("/invoice/totals", handlers.GetTotals)
		api.GET("/invoice/advisories", handlers.GetAdvisories)

		// Line items
		api.PUT("/invoice/items", handlers.ReplaceItems)
		api.POST("/invoice/items", handlers.AddItem)
		api.PATCH("/invoice/items/:index", handlers.UpdateItem)
		api.DELETE("/invoice/items/:index", handlers.RemoveItem)

		// Export surfaces
		api.POST("/export", handlers.Export)
		api.POST("/export/download", handlers.ExportAndDownload)
		api.GET("/export/spreadsheet", handlers.ExportSpreadsheet)
		api.GET("/print", handlers.Print)

		// Guided email workflow
		api.POST("/email/dialog", handlers.OpenEmailDialog)
		api.GET("/email/dialog", handlers.GetEmailDialog)
		api.DELETE("/email/dialog", handlers.CloseEmailDialog)
		api.POST("/email/dialog/download", handlers.CompleteDownload)
		api.PATCH("/email/dialog/draft", handlers.UpdateDraft)
		api.POST("/email/dialog/open-client", handlers.OpenEmailClient)
		api.POST("/email/dialog/copy", handlers.CopyDraftField)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
