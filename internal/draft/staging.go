// internal/draft/staging.go
package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/autowms/internal/domain"
)

// Staging collects recommendation output into a deduplicated, user-editable
// list of draft purchase-order lines. Submission of the draft is an external
// concern; the staging list only feeds it.
type Staging struct {
	mu    sync.Mutex
	lines map[string]domain.DraftOrderLine
	order []string
}

// NewStaging creates an empty staging list.
func NewStaging() *Staging {
	return &Staging{lines: make(map[string]domain.DraftOrderLine)}
}

// AddLine stages a line for the SKU. Repeated adds for the same SKU are
// no-ops: the first staged values win until UpdateLine replaces them.
// A zero quantity is allowed; it surfaces a "no action needed" SKU for
// operator visibility.
func (s *Staging) AddLine(sku string, qty int, vendor string, eta time.Time) error {
	if sku == "" {
		return fmt.Errorf("draft line: sku must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lines[sku]; exists {
		return nil
	}

	s.lines[sku] = domain.DraftOrderLine{SKU: sku, Quantity: qty, Vendor: vendor, ETA: eta}
	s.order = append(s.order, sku)
	return nil
}

// UpdateLine explicitly replaces a staged line. It fails if no line exists
// for the SKU.
func (s *Staging) UpdateLine(sku string, qty int, vendor string, eta time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lines[sku]; !exists {
		return fmt.Errorf("draft line: sku %s not staged", sku)
	}

	s.lines[sku] = domain.DraftOrderLine{SKU: sku, Quantity: qty, Vendor: vendor, ETA: eta}
	return nil
}

// List returns staged lines in insertion order.
func (s *Staging) List() []domain.DraftOrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.DraftOrderLine, 0, len(s.order))
	for _, sku := range s.order {
		lines = append(lines, s.lines[sku])
	}
	return lines
}

// Clear empties the staging list.
func (s *Staging) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = make(map[string]domain.DraftOrderLine)
	s.order = nil
}
