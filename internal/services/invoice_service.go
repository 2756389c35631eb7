package services

import (
	"errors"
	"sync"

	"fastenhub/internal/domain"
)

var ErrItemNotFound = errors.New("invoice item not found")

// InvoicePatch is a typed partial update for one line item. Amount is not
// patchable; it is recomputed whenever weight or rate changes.
type InvoicePatch struct {
	Description *string
	Weight      *string
	Rate        *string
}

// InvoiceSession holds one in-progress invoice. It is never persisted; the
// operator builds it, prints it, and it is discarded.
type InvoiceSession struct {
	mu sync.Mutex

	customerName  string
	customerPhone string

	items          []domain.InvoiceItem
	taxPercent     float64
	discountAmount float64
}

// NewInvoiceSession starts with a single empty line; the at-least-one-item
// invariant holds from the first render.
func NewInvoiceSession() *InvoiceSession {
	return &InvoiceSession{
		items: []domain.InvoiceItem{{ID: domain.NewEntityID()}},
	}
}

func (s *InvoiceSession) Items() []domain.InvoiceItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.InvoiceItem(nil), s.items...)
}

// AddItem appends an empty line and returns it.
func (s *InvoiceSession) AddItem() domain.InvoiceItem {
	it := domain.InvoiceItem{ID: domain.NewEntityID()}
	s.mu.Lock()
	s.items = append(s.items, it)
	s.mu.Unlock()
	return it
}

// RemoveItem deletes a line. Removal that would leave zero lines is a no-op.
func (s *InvoiceSession) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) <= 1 {
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// UpdateItem applies a patch; touching weight or rate recomputes the amount,
// treating unparsable input as zero so typing is never blocked.
func (s *InvoiceSession) UpdateItem(id string, p InvoicePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		it := &s.items[i]
		if p.Description != nil {
			it.Description = *p.Description
		}
		recompute := false
		if p.Weight != nil {
			it.Weight = *p.Weight
			recompute = true
		}
		if p.Rate != nil {
			it.Rate = *p.Rate
			recompute = true
		}
		if recompute {
			it.Amount = domain.LineAmount(it.Weight, it.Rate)
		}
		return nil
	}
	return ErrItemNotFound
}

func (s *InvoiceSession) SetBillTo(name, phone string) {
	s.mu.Lock()
	s.customerName = name
	s.customerPhone = phone
	s.mu.Unlock()
}

func (s *InvoiceSession) BillTo() (name, phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerName, s.customerPhone
}

func (s *InvoiceSession) SetTaxPercent(raw string) {
	s.mu.Lock()
	s.taxPercent = domain.ParseAmount(raw)
	s.mu.Unlock()
}

func (s *InvoiceSession) SetDiscount(raw string) {
	s.mu.Lock()
	s.discountAmount = domain.ParseAmount(raw)
	s.mu.Unlock()
}

func (s *InvoiceSession) TaxPercent() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxPercent
}

func (s *InvoiceSession) Discount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountAmount
}

func (s *InvoiceSession) Totals() domain.InvoiceTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeTotals(s.items, s.taxPercent, s.discountAmount)
}

// Reset discards the session content after printing.
func (s *InvoiceSession) Reset() {
	s.mu.Lock()
	s.customerName = ""
	s.customerPhone = ""
	s.items = []domain.InvoiceItem{{ID: domain.NewEntityID()}}
	s.taxPercent = 0
	s.discountAmount = 0
	s.mu.Unlock()
}
