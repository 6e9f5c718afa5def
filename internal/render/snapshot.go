package render

import (
	"sync"

	"github.com/lightspeedlabs/invoicegen/internal/invoice"
)

// Snapshot is a detached copy of the preview's content at capture time. The
// renderer only ever operates on snapshots, never on the live record, so
// export-only styling cannot leak back into the on-screen preview.
type Snapshot struct {
	Invoice invoice.Invoice
	Totals  invoice.Totals
}

// Preview models the read-only preview surface over the invoice store.
// Export is a two-phase operation: the preview must be activated and allowed
// to settle before it is captured, because capturing a hidden surface would
// produce a blank document.
type Preview struct {
	mu      sync.Mutex
	store   *invoice.Store
	visible bool
}

// NewPreview creates a preview over the given store.
func NewPreview(store *invoice.Store) *Preview {
	return &Preview{store: store}
}

// Activate forces the preview visible, lets one rendering pass complete, and
// returns the captured snapshot. Activation and capture happen under one
// lock so the capture always sees the settled state.
func (p *Preview) Activate() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.visible = true
	inv := p.store.Snapshot()
	return Snapshot{
		Invoice: inv,
		Totals:  invoice.Compute(inv.Items, inv.TaxRate),
	}
}

// Visible reports whether the preview surface is currently active.
func (p *Preview) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}
