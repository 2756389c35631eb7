package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"fastenhub/internal/domain"
	"fastenhub/internal/store"
	"fastenhub/internal/validate"
)

var ErrMissingField = errors.New("name, phone and message are all required")

// inquiryDateFormat mirrors the human-readable timestamp the site has always
// stored, e.g. "1/2/2006, 3:04:05 PM".
const inquiryDateFormat = "1/2/2006, 3:04:05 PM"

// InquiryService captures leads from the public contact form and feeds the
// admin inbox from a live subscription. Writes and deletes act on single
// records immediately; there is no staging.
type InquiryService struct {
	store store.Store

	mu     sync.RWMutex
	inbox  []domain.Inquiry
	cancel func()

	now func() time.Time
}

func NewInquiryService(st store.Store) *InquiryService {
	return &InquiryService{store: st, inbox: []domain.Inquiry{}, now: time.Now}
}

// Submit validates the three required fields, builds the inquiry with a
// generated id and formatted timestamp, and writes it through. The record is
// eventually consistent: it may take one subscription round-trip to show up
// in the inbox.
func (s *InquiryService) Submit(ctx context.Context, name, phone, message string) (domain.Inquiry, error) {
	name, okName := validate.Name(name)
	phone, okPhone := validate.Phone(phone)
	message, okMsg := validate.Message(message)
	if !okName || !okPhone || !okMsg {
		return domain.Inquiry{}, ErrMissingField
	}

	inq := domain.Inquiry{
		ID:      domain.NewEntityID(),
		Name:    name,
		Phone:   phone,
		Message: message,
		Date:    s.now().Format(inquiryDateFormat),
	}
	if err := s.store.SaveInquiry(ctx, inq); err != nil {
		return domain.Inquiry{}, err
	}
	return inq, nil
}

// Start subscribes the inbox to the remote inquiry collection.
func (s *InquiryService) Start(ctx context.Context) error {
	cancel, err := s.store.SubscribeInquiries(ctx, func(inqs []domain.Inquiry) {
		s.mu.Lock()
		s.inbox = inqs
		s.mu.Unlock()
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	return nil
}

func (s *InquiryService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Inbox returns the current inquiries, newest first.
func (s *InquiryService) Inbox() []domain.Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Inquiry, len(s.inbox))
	for i, inq := range s.inbox {
		out[len(s.inbox)-1-i] = inq
	}
	return out
}

func (s *InquiryService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteInquiry(ctx, id)
}
