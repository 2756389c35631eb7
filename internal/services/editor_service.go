package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"fastenhub/internal/domain"
	"fastenhub/internal/repos"
	"fastenhub/internal/store"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSeriesNotFound   = errors.New("series not found")
)

// ViewMode is the editor's navigation level.
type ViewMode string

const (
	ModeList         ViewMode = "list"
	ModeEditCategory ViewMode = "edit-category"
	ModeEditProduct  ViewMode = "edit-product"
)

// NavState is the editor navigation as one value, so an edit-product state
// without a category id is unrepresentable. Build it with the constructors.
type NavState struct {
	Mode       ViewMode
	CategoryID string
	SeriesID   string
}

func NavList() NavState                  { return NavState{Mode: ModeList} }
func NavEditCategory(id string) NavState { return NavState{Mode: ModeEditCategory, CategoryID: id} }
func NavEditSeries(catID, seriesID string) NavState {
	return NavState{Mode: ModeEditProduct, CategoryID: catID, SeriesID: seriesID}
}

// CategoryPatch is a typed partial update; nil fields are left untouched.
// The id is not patchable.
type CategoryPatch struct {
	Name            *string
	NameUrdu        *string
	Image           *string
	Description     *string
	DescriptionUrdu *string
}

// SeriesPatch carries Sizes and Specifications in their raw comma-delimited
// form; they are split on apply.
type SeriesPatch struct {
	Name            *string
	NameUrdu        *string
	Image           *string
	Description     *string
	DescriptionUrdu *string
	Sizes           *string
	Specifications  *string
}

// EditorSession is the admin's staged working copy of the catalog plus the
// staged contact record. Nothing reaches the remote store until SaveAll;
// a remote snapshot arriving mid-session replaces the staged tree outright
// (last-writer-wins, see Reconcile).
type EditorSession struct {
	store    store.Store
	settings *repos.SettingsRepo

	mu      sync.Mutex
	staged  []domain.Category
	contact domain.ContactInfo
	nav     NavState
}

func NewEditorSession(st store.Store, settings *repos.SettingsRepo, initial []domain.Category, contact domain.ContactInfo) *EditorSession {
	return &EditorSession{
		store:    st,
		settings: settings,
		staged:   domain.CloneCatalog(initial),
		contact:  contact,
		nav:      NavList(),
	}
}

// Reconcile resets the staged tree to a fresh copy of the remote snapshot,
// discarding uncommitted edits. Losing unsaved work to a concurrent writer
// is the documented trade-off, not an accident.
func (e *EditorSession) Reconcile(remote []domain.Category) {
	e.mu.Lock()
	e.staged = domain.CloneCatalog(remote)
	e.mu.Unlock()
}

// Snapshot returns a copy of the staged tree for rendering.
func (e *EditorSession) Snapshot() []domain.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.CloneCatalog(e.staged)
}

func (e *EditorSession) Nav() NavState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nav
}

// OpenCategory moves to edit-category for an existing staged category.
func (e *EditorSession) OpenCategory(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.findCategory(id) == nil {
		return ErrCategoryNotFound
	}
	e.nav = NavEditCategory(id)
	return nil
}

// OpenSeries moves to edit-product; the series must resolve inside the
// named category.
func (e *EditorSession) OpenSeries(catID, seriesID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cat := e.findCategory(catID)
	if cat == nil {
		return ErrCategoryNotFound
	}
	if findSeries(cat, seriesID) == nil {
		return ErrSeriesNotFound
	}
	e.nav = NavEditSeries(catID, seriesID)
	return nil
}

// Back navigates one level up: edit-product → edit-category → list.
func (e *EditorSession) Back() {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.nav.Mode {
	case ModeEditProduct:
		e.nav = NavEditCategory(e.nav.CategoryID)
	default:
		e.nav = NavList()
	}
}

// CreateCategory appends a placeholder category, selects it and moves to
// edit-category.
func (e *EditorSession) CreateCategory() domain.Category {
	cat := domain.Category{
		ID:              domain.NewEntityID(),
		Name:            "New Product Group",
		NameUrdu:        "نئی پراڈکٹ گروپ",
		Image:           "/media/placeholder.jpg",
		Description:     "Description...",
		DescriptionUrdu: "تفصیل...",
		Series:          []domain.ProductSeries{},
	}
	e.mu.Lock()
	e.staged = append(e.staged, cat)
	e.nav = NavEditCategory(cat.ID)
	e.mu.Unlock()
	return cat
}

// AddSeries appends a placeholder series to the named category, selects it
// and moves to edit-product.
func (e *EditorSession) AddSeries(catID string) (domain.ProductSeries, error) {
	ps := domain.ProductSeries{
		ID:              domain.NewEntityID(),
		Name:            "New Item",
		NameUrdu:        "نیا آئٹم",
		Image:           "/media/placeholder.jpg",
		Description:     "Specs...",
		DescriptionUrdu: "تفصیل...",
		Sizes:           []string{"M8"},
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cat := e.findCategory(catID)
	if cat == nil {
		return domain.ProductSeries{}, ErrCategoryNotFound
	}
	cat.Series = append(cat.Series, ps)
	e.nav = NavEditSeries(catID, ps.ID)
	return ps, nil
}

// PatchCategory applies a typed partial update in place; the id and the
// position in the sequence never change.
func (e *EditorSession) PatchCategory(id string, p CategoryPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cat := e.findCategory(id)
	if cat == nil {
		return ErrCategoryNotFound
	}
	if p.Name != nil {
		cat.Name = *p.Name
	}
	if p.NameUrdu != nil {
		cat.NameUrdu = *p.NameUrdu
	}
	if p.Image != nil {
		cat.Image = *p.Image
	}
	if p.Description != nil {
		cat.Description = *p.Description
	}
	if p.DescriptionUrdu != nil {
		cat.DescriptionUrdu = *p.DescriptionUrdu
	}
	return nil
}

func (e *EditorSession) PatchSeries(catID, seriesID string, p SeriesPatch) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cat := e.findCategory(catID)
	if cat == nil {
		return ErrCategoryNotFound
	}
	ps := findSeries(cat, seriesID)
	if ps == nil {
		return ErrSeriesNotFound
	}
	if p.Name != nil {
		ps.Name = *p.Name
	}
	if p.NameUrdu != nil {
		ps.NameUrdu = *p.NameUrdu
	}
	if p.Image != nil {
		ps.Image = *p.Image
	}
	if p.Description != nil {
		ps.Description = *p.Description
	}
	if p.DescriptionUrdu != nil {
		ps.DescriptionUrdu = *p.DescriptionUrdu
	}
	if p.Sizes != nil {
		ps.Sizes = domain.SplitSizes(*p.Sizes)
	}
	if p.Specifications != nil {
		specs := domain.SplitSizes(*p.Specifications)
		if len(specs) == 0 {
			ps.Specifications = nil
		} else {
			ps.Specifications = specs
		}
	}
	return nil
}

// RemoveCategory deletes a staged category and all of its series. If the
// removed category was selected, the view falls back to the list.
func (e *EditorSession) RemoveCategory(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := -1
	for i := range e.staged {
		if e.staged[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCategoryNotFound
	}
	e.staged = append(e.staged[:idx], e.staged[idx+1:]...)
	if e.nav.CategoryID == id {
		e.nav = NavList()
	}
	return nil
}

// RemoveSeries deletes one series, leaving siblings and their order intact.
// If the removed series was selected, the view falls back to edit-category.
func (e *EditorSession) RemoveSeries(catID, seriesID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cat := e.findCategory(catID)
	if cat == nil {
		return ErrCategoryNotFound
	}
	idx := -1
	for i := range cat.Series {
		if cat.Series[i].ID == seriesID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSeriesNotFound
	}
	cat.Series = append(cat.Series[:idx], cat.Series[idx+1:]...)
	if e.nav.Mode == ModeEditProduct && e.nav.SeriesID == seriesID {
		e.nav = NavEditCategory(catID)
	}
	return nil
}

// Filter returns the staged categories matching the query: case-insensitive
// substring on the latin name, exact substring on the Urdu name, or a match
// on any child series name. Filtering never touches the staged data.
func (e *EditorSession) Filter(query string) []domain.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	if query == "" {
		return domain.CloneCatalog(e.staged)
	}
	q := strings.ToLower(query)
	out := []domain.Category{}
	for _, c := range e.staged {
		match := strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.NameUrdu, query)
		if !match {
			for _, ps := range c.Series {
				if strings.Contains(strings.ToLower(ps.Name), q) {
					match = true
					break
				}
			}
		}
		if match {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (e *EditorSession) SetContact(c domain.ContactInfo) {
	e.mu.Lock()
	e.contact = c
	e.mu.Unlock()
}

func (e *EditorSession) Contact() domain.ContactInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contact
}

// SaveAll pushes the staged catalog live as one full-overwrite write and
// persists the staged contact record. On success the view returns to the
// list; on failure the staged tree is kept so the operator can retry.
func (e *EditorSession) SaveAll(ctx context.Context) error {
	e.mu.Lock()
	staged := domain.CloneCatalog(e.staged)
	contact := e.contact
	e.mu.Unlock()

	if err := e.store.SyncCategories(ctx, staged); err != nil {
		return err
	}
	if err := e.settings.SaveContact(contact); err != nil {
		return err
	}

	e.mu.Lock()
	e.nav = NavList()
	e.mu.Unlock()
	return nil
}

func (e *EditorSession) findCategory(id string) *domain.Category {
	for i := range e.staged {
		if e.staged[i].ID == id {
			return &e.staged[i]
		}
	}
	return nil
}

func findSeries(cat *domain.Category, id string) *domain.ProductSeries {
	for i := range cat.Series {
		if cat.Series[i].ID == id {
			return &cat.Series[i]
		}
	}
	return nil
}
