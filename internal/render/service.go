package render

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/invoice"
)

// ErrNotReady is returned when the rendering capability is used before its
// asynchronous initialization has completed.
var ErrNotReady = errors.New("pdf renderer not ready")

// Service is the rendering capability consumed by the export pipeline. It is
// initialized asynchronously at startup; calls before readiness fail fast
// with ErrNotReady and perform no partial work.
type Service struct {
	renderer *PDFRenderer
	ready    atomic.Bool
	logger   *zap.Logger
}

// NewService wraps the renderer. The service is not ready until Init has
// completed; run Init from a goroutine at startup.
func NewService(renderer *PDFRenderer, logger *zap.Logger) *Service {
	return &Service{
		renderer: renderer,
		logger:   logger,
	}
}

// Init warms the renderer with a probe document and marks the service ready.
// A failed warm-up leaves the service unready so callers keep getting
// ErrNotReady instead of half-working renders.
func (s *Service) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	probe := Snapshot{Invoice: invoice.Invoice{Items: []invoice.Item{{}}}}
	if _, err := s.renderer.Render(probe); err != nil {
		s.logger.Error("Renderer warm-up failed", zap.Error(err))
		return fmt.Errorf("renderer warm-up failed: %w", err)
	}

	s.ready.Store(true)
	s.logger.Info("PDF renderer ready")
	return nil
}

// Ready reports whether the capability finished initializing.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Render converts the snapshot to PDF bytes, failing fast with ErrNotReady
// when initialization has not completed.
func (s *Service) Render(ctx context.Context, snap Snapshot) ([]byte, error) {
	if !s.ready.Load() {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.renderer.Render(snap)
}
