package handlers

import (
	"fastenhub/internal/domain"
	"fastenhub/internal/repos"
	"fastenhub/internal/services"
	"fastenhub/internal/store"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PublicHandler  *PublicHandler
	AdminHandler   *AdminHandler
	InvoiceHandler *InvoiceHandler

	Catalog   *services.CatalogService
	Inquiries *services.InquiryService
	Editor    *services.EditorSession
}

// NewDeps wires services and handlers. The editor session registers for
// catalog snapshots so every remote change resets its staged tree.
func NewDeps(db *sqlx.DB, st store.Store) *Deps {
	settings := repos.NewSettingsRepo(db)

	catalogSvc := services.NewCatalogService(st)
	inquirySvc := services.NewInquiryService(st)

	contact, err := settings.Contact()
	if err != nil {
		contact = domain.DefaultContact()
	}
	editor := services.NewEditorSession(st, settings, catalogSvc.Categories(), contact)
	catalogSvc.OnChange(editor.Reconcile)

	invoice := services.NewInvoiceSession()

	return &Deps{
		PublicHandler:  &PublicHandler{Catalog: catalogSvc, Inquiries: inquirySvc, Settings: settings},
		AdminHandler:   &AdminHandler{Editor: editor, Inquiries: inquirySvc},
		InvoiceHandler: &InvoiceHandler{Invoice: invoice, Settings: settings},
		Catalog:        catalogSvc,
		Inquiries:      inquirySvc,
		Editor:         editor,
	}
}
