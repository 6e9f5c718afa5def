package export

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lightspeedlabs/invoicegen/internal/render"
	"github.com/lightspeedlabs/invoicegen/internal/storage"
)

// Pipeline converts the current preview into a downloadable PDF artifact.
// Export is a two-phase operation: the preview is activated and allowed to
// settle, and only then captured and rendered. Overlapping export calls are
// serialized; the rendering capability has no concurrent-call contract.
type Pipeline struct {
	mu       sync.Mutex
	preview  *render.Preview
	service  *render.Service
	registry *Registry
	saver    storage.Saver
	current  string
	logger   *zap.Logger
}

// NewPipeline creates an export pipeline.
func NewPipeline(preview *render.Preview, service *render.Service, registry *Registry, saver storage.Saver, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		preview:  preview,
		service:  service,
		registry: registry,
		saver:    saver,
		logger:   logger,
	}
}

// Export activates the preview, captures it, renders the PDF and publishes
// the artifact. Publishing revokes the previous artifact's handle so stale
// handles never accumulate. Export does not itself trigger a download.
//
// All failures are caught here and returned as typed errors; callers treat
// them as "retry later", never as fatal.
func (p *Pipeline) Export(ctx context.Context) (*Artifact, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.service.Ready() {
		p.logger.Warn("Export requested before renderer finished loading")
		return nil, ErrRendererNotReady
	}

	snap := p.preview.Activate()

	data, err := p.service.Render(ctx, snap)
	if err != nil {
		if errors.Is(err, render.ErrNotReady) {
			return nil, ErrRendererNotReady
		}
		p.logger.Error("PDF generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	artifact := &Artifact{
		Data:        data,
		Filename:    Filename(snap.Invoice.InvoiceNumber),
		ContentType: "application/pdf",
		CreatedAt:   time.Now(),
	}

	handle := p.registry.Publish(artifact)
	if p.current != "" && p.current != handle {
		p.registry.Revoke(p.current)
	}
	p.current = handle

	p.logger.Info("Invoice exported",
		zap.String("filename", artifact.Filename),
		zap.Int("size", len(artifact.Data)))
	return artifact, nil
}

// TriggerDownload saves the artifact to disk under its suggested filename.
// It is safe to call repeatedly; repeated downloads re-save the same bytes.
func (p *Pipeline) TriggerDownload(artifact *Artifact) error {
	path, err := p.saver.SaveFile(artifact.Filename, artifact.Data)
	if err != nil {
		p.logger.Error("Failed to save artifact", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSaveFailure, err)
	}

	p.logger.Info("Artifact saved", zap.String("path", path))
	return nil
}

// ExportAndSave runs the full export-and-save sequence used by the guided
// email workflow's download step.
func (p *Pipeline) ExportAndSave(ctx context.Context) (*Artifact, error) {
	artifact, err := p.Export(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.TriggerDownload(artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// Resolve looks up a published artifact by handle.
func (p *Pipeline) Resolve(handle string) (*Artifact, bool) {
	return p.registry.Resolve(handle)
}

// Close releases every outstanding artifact handle. Called when the owning
// session ends.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.registry.Close()
	p.current = ""
}
