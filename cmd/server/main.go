package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/config"
	"github.com/lightspeedlabs/invoicegen/internal/email"
	"github.com/lightspeedlabs/invoicegen/internal/export"
	httpadapter "github.com/lightspeedlabs/invoicegen/internal/interfaces/http"
	"github.com/lightspeedlabs/invoicegen/internal/invoice"
	"github.com/lightspeedlabs/invoicegen/internal/render"
	"github.com/lightspeedlabs/invoicegen/internal/storage"
	"github.com/lightspeedlabs/invoicegen/pkg/utils"
)

func main() {
	// Load .env before the config layer reads the environment
	gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting invoice generator",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Invoice store seeded from branding defaults
	store := invoice.NewStore(invoice.Branding{
		CompanyName:   cfg.Branding.CompanyName,
		CompanyEmail:  cfg.Branding.CompanyEmail,
		InvoicePrefix: cfg.Branding.InvoicePrefix,
	}, logger)

	formatter := invoice.NewFormatter(cfg.Branding.Currency, cfg.Branding.Locale)

	// PDF rendering capability
	renderer, err := render.NewPDFRenderer(render.Options{
		MarginMM:     cfg.Renderer.MarginMM,
		ImageQuality: cfg.Renderer.ImageQuality,
		Scale:        cfg.Renderer.Scale,
		PageSize:     cfg.Renderer.PageSize,
		Orientation:  cfg.Renderer.Orientation,
	}, formatter, cfg.Branding.LogoPath, logger)
	if err != nil {
		logger.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}

	renderSvc := render.NewService(renderer, logger)

	// The renderer loads in the background; exports fail fast until it is
	// ready instead of blocking startup.
	initCtx, cancelInit := context.WithCancel(context.Background())
	defer cancelInit()
	go func() {
		if err := renderSvc.Init(initCtx); err != nil {
			logger.Error("PDF renderer initialization failed", zap.Error(err))
		}
	}()

	// Export pipeline
	preview := render.NewPreview(store)
	registry := export.NewRegistry(logger)
	saver := storage.NewLocalSaver(cfg.Export.OutputDir, logger)
	pipeline := export.NewPipeline(preview, renderSvc, registry, saver, logger)
	defer pipeline.Close()

	sheet := render.NewSpreadsheetRenderer(formatter, logger)

	// Guided email workflow
	mail := email.NewManager(pipeline, email.NewStoreSource(store, formatter), email.NewMemoryClipboard(), logger)

	// HTTP server
	server := httpadapter.NewServer(httpadapter.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, store, preview, renderSvc, sheet, pipeline, mail, &zapLoggerAdapter{logger: logger})

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("HTTP server exited with error", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// zapLoggerAdapter adapts zap.Logger to the http adapter's Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
