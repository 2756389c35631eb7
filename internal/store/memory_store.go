package store

import (
	"context"
	"sort"
	"sync"

	"fastenhub/internal/domain"
)

// MemoryStore is an in-process Store used by tests and as a dev fallback
// when no Redis is reachable. Callbacks fire synchronously on the writer's
// goroutine, which keeps delivery ordered per subscriber.
type MemoryStore struct {
	mu        sync.Mutex
	cats      []domain.Category
	inqs      map[string]domain.Inquiry
	nextSub   int
	catSubs   map[int]CategoriesFunc
	inqSubs   map[int]InquiriesFunc
	SyncError error // when set, SyncCategories fails with it (test hook)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		inqs:    make(map[string]domain.Inquiry),
		catSubs: make(map[int]CategoriesFunc),
		inqSubs: make(map[int]InquiriesFunc),
	}
}

func (s *MemoryStore) SubscribeCategories(_ context.Context, fn CategoriesFunc) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.catSubs[id] = fn
	snapshot := domain.CloneCatalog(s.catalogLocked())
	s.mu.Unlock()

	fn(snapshot)
	return func() {
		s.mu.Lock()
		delete(s.catSubs, id)
		s.mu.Unlock()
	}, nil
}

func (s *MemoryStore) SyncCategories(_ context.Context, cats []domain.Category) error {
	s.mu.Lock()
	if s.SyncError != nil {
		err := s.SyncError
		s.mu.Unlock()
		return err
	}
	s.cats = domain.CloneCatalog(cats)
	subs, snapshot := s.catSubsLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(domain.CloneCatalog(snapshot))
	}
	return nil
}

// Categories returns the current stored catalog (test helper, mirrors the
// read side of the Redis store).
func (s *MemoryStore) Categories(_ context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneCatalog(s.catalogLocked()), nil
}

func (s *MemoryStore) SubscribeInquiries(_ context.Context, fn InquiriesFunc) (func(), error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.inqSubs[id] = fn
	snapshot := s.inquiriesLocked()
	s.mu.Unlock()

	fn(snapshot)
	return func() {
		s.mu.Lock()
		delete(s.inqSubs, id)
		s.mu.Unlock()
	}, nil
}

func (s *MemoryStore) SaveInquiry(_ context.Context, inq domain.Inquiry) error {
	s.mu.Lock()
	s.inqs[inq.ID] = inq
	subs, snapshot := s.inqSubsLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return nil
}

func (s *MemoryStore) DeleteInquiry(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.inqs, id)
	subs, snapshot := s.inqSubsLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return nil
}

func (s *MemoryStore) catalogLocked() []domain.Category {
	if s.cats == nil {
		return []domain.Category{}
	}
	return s.cats
}

func (s *MemoryStore) catSubsLocked() ([]CategoriesFunc, []domain.Category) {
	subs := make([]CategoriesFunc, 0, len(s.catSubs))
	for _, fn := range s.catSubs {
		subs = append(subs, fn)
	}
	return subs, s.catalogLocked()
}

func (s *MemoryStore) inquiriesLocked() []domain.Inquiry {
	out := make([]domain.Inquiry, 0, len(s.inqs))
	for _, inq := range s.inqs {
		out = append(out, inq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *MemoryStore) inqSubsLocked() ([]InquiriesFunc, []domain.Inquiry) {
	subs := make([]InquiriesFunc, 0, len(s.inqSubs))
	for _, fn := range s.inqSubs {
		subs = append(subs, fn)
	}
	return subs, s.inquiriesLocked()
}
