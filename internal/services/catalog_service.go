package services

import (
	"context"
	"sync"

	"fastenhub/internal/domain"
	"fastenhub/internal/store"
)

// CatalogService owns the live catalog subscription and holds the latest
// remote snapshot for the public pages. Until the first callback arrives it
// serves the built-in default catalog; after that it serves exactly what the
// remote says, including an empty catalog.
type CatalogService struct {
	store store.Store

	mu       sync.RWMutex
	cats     []domain.Category
	cancel   func()
	onChange []func([]domain.Category)
}

func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{store: st, cats: domain.DefaultCatalog()}
}

// OnChange registers a hook invoked with every remote snapshot (used by the
// editor's reconciliation rule). Register before Start.
func (s *CatalogService) OnChange(fn func([]domain.Category)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Start subscribes to the remote catalog. Stop must be called on teardown.
func (s *CatalogService) Start(ctx context.Context) error {
	cancel, err := s.store.SubscribeCategories(ctx, func(cats []domain.Category) {
		s.mu.Lock()
		s.cats = cats
		hooks := append(([]func([]domain.Category))(nil), s.onChange...)
		s.mu.Unlock()
		for _, fn := range hooks {
			fn(domain.CloneCatalog(cats))
		}
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Categories returns the current snapshot.
func (s *CatalogService) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneCatalog(s.cats)
}

func (s *CatalogService) CategoryByID(id string) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cats {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return domain.Category{}, false
}

func (s *CatalogService) SeriesByID(catID, seriesID string) (domain.Category, domain.ProductSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cats {
		if c.ID != catID {
			continue
		}
		for _, ps := range c.Series {
			if ps.ID == seriesID {
				return c.Clone(), ps.Clone(), true
			}
		}
	}
	return domain.Category{}, domain.ProductSeries{}, false
}
