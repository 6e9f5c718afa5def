package invoice

import (
	"sync"

	"go.uber.org/zap"
)

// Patch carries a partial update of the invoice's top-level fields. Nil
// fields are left untouched; the item list is never patched here, only
// replaced wholesale through ReplaceItems.
type Patch struct {
	InvoiceNumber *string  `json:"invoice_number"`
	Date          *string  `json:"date"`
	DueDate       *string  `json:"due_date"`
	ClientName    *string  `json:"client_name"`
	ClientEmail   *string  `json:"client_email"`
	CompanyName   *string  `json:"company_name"`
	CompanyEmail  *string  `json:"company_email"`
	Notes         *string  `json:"notes"`
	Terms         *string  `json:"terms"`
	TaxRate       *float64 `json:"tax_rate"`
}

// Store is the single source of truth for the invoice being edited. It is
// single-owner and single-writer; the mutex only guards against the HTTP
// adapter calling in from concurrent requests.
type Store struct {
	mu     sync.Mutex
	inv    Invoice
	logger *zap.Logger
}

// NewStore creates a store holding a fresh invoice seeded from branding.
func NewStore(branding Branding, logger *zap.Logger) *Store {
	return &Store{
		inv:    New(branding),
		logger: logger,
	}
}

// Snapshot returns a deep copy of the current invoice.
func (s *Store) Snapshot() Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inv.Clone()
}

// Totals recomputes the derived totals from the current record.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Compute(s.inv.Items, s.inv.TaxRate)
}

// Apply shallow-merges the patch into the invoice's top-level fields. The
// operation is total: it never fails.
func (s *Store) Apply(p Patch) Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.InvoiceNumber != nil {
		s.inv.InvoiceNumber = *p.InvoiceNumber
	}
	if p.Date != nil {
		s.inv.Date = *p.Date
	}
	if p.DueDate != nil {
		s.inv.DueDate = *p.DueDate
	}
	if p.ClientName != nil {
		s.inv.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		s.inv.ClientEmail = *p.ClientEmail
	}
	if p.CompanyName != nil {
		s.inv.CompanyName = *p.CompanyName
	}
	if p.CompanyEmail != nil {
		s.inv.CompanyEmail = *p.CompanyEmail
	}
	if p.Notes != nil {
		s.inv.Notes = *p.Notes
	}
	if p.Terms != nil {
		s.inv.Terms = *p.Terms
	}
	if p.TaxRate != nil {
		s.inv.TaxRate = *p.TaxRate
	}

	s.logger.Debug("Invoice patched", zap.String("invoice_number", s.inv.InvoiceNumber))
	return s.inv.Clone()
}

// ReplaceItems replaces the whole item list. There is no partial item patch
// operation; callers reconstruct the full list. The model itself does not
// enforce a minimum length.
func (s *Store) ReplaceItems(items []Item) Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.Items = append([]Item(nil), items...)
	s.logger.Debug("Invoice items replaced", zap.Int("count", len(s.inv.Items)))
	return s.inv.Clone()
}

// AddItem appends a blank line item.
func (s *Store) AddItem() Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inv.Items = append(s.inv.Items, Item{})
	return s.inv.Clone()
}

// RemoveItem removes the item at index. The last remaining item cannot be
// removed; that call is a no-op. Out-of-range indexes are also no-ops.
func (s *Store) RemoveItem(index int) Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.inv.Items) <= 1 || index < 0 || index >= len(s.inv.Items) {
		return s.inv.Clone()
	}

	items := make([]Item, 0, len(s.inv.Items)-1)
	for i, item := range s.inv.Items {
		if i != index {
			items = append(items, item)
		}
	}
	s.inv.Items = items
	return s.inv.Clone()
}

// UpdateItem replaces the item at index. Out-of-range indexes are no-ops.
func (s *Store) UpdateItem(index int, item Item) Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index >= 0 && index < len(s.inv.Items) {
		s.inv.Items[index] = item
	}
	return s.inv.Clone()
}
