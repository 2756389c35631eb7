package handlers_test

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"fastenhub/internal/http/handlers"
	"fastenhub/internal/repos"
	"fastenhub/internal/services"
	"fastenhub/internal/store"
)

func newInvoiceApp(t *testing.T) (*fiber.App, *handlers.Deps) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "Passw0rd!")
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	adminRepo := repos.NewAdminRepo(db)
	if err := adminRepo.BindSession("sid-admin", "a-admin"); err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{Admins: adminRepo}
	deps := handlers.NewDeps(db, store.NewMemoryStore())

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	invoiceH := deps.InvoiceHandler
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/invoice", invoiceH.Builder)
	admin.Post("/invoice", invoiceH.Update)
	admin.Get("/invoice/print", invoiceH.Print)
	admin.Post("/invoice/reset", invoiceH.Reset)
	return app, deps
}

func TestInvoiceBuilderFlow(t *testing.T) {
	app, deps := newInvoiceApp(t)

	resp := adminGet(t, app, "/admin/invoice")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("builder: want 200, got %d", resp.StatusCode)
	}
	csrfTok := extractCookie(resp, "csrf_")

	itemID := deps.InvoiceHandler.Invoice.Items()[0].ID
	respUpd := adminPost(t, app, "/admin/invoice", csrfTok, url.Values{
		"customer_name":       {"Ahmed Traders"},
		"customer_phone":      {"0300-1234567"},
		"tax_percent":         {"10"},
		"discount":            {"50"},
		"description_" + itemID: {"Hex bolts"},
		"weight_" + itemID:      {"10"},
		"rate_" + itemID:        {"100"},
	})
	if respUpd.StatusCode != http.StatusFound {
		t.Fatalf("update: want 302, got %d", respUpd.StatusCode)
	}

	tot := deps.InvoiceHandler.Invoice.Totals()
	if tot.SubTotal != 1000 || tot.TaxAmount != 100 || tot.GrandTotal != 1050 {
		t.Fatalf("totals = %+v, want 1000/100/1050", tot)
	}

	// The print layout shows the totals rounded to two decimals.
	respPrint := adminGet(t, app, "/admin/invoice/print")
	if respPrint.StatusCode != http.StatusOK {
		t.Fatalf("print: want 200, got %d", respPrint.StatusCode)
	}
	body, err := io.ReadAll(respPrint.Body)
	if err != nil {
		t.Fatal(err)
	}
	page := string(body)
	for _, want := range []string{"Ahmed Traders", "1050.00"} {
		if !strings.Contains(page, want) {
			t.Fatalf("print page missing %q", want)
		}
	}

	respReset := adminPost(t, app, "/admin/invoice/reset", csrfTok, url.Values{})
	if respReset.StatusCode != http.StatusFound {
		t.Fatalf("reset: want 302, got %d", respReset.StatusCode)
	}
	if name, _ := deps.InvoiceHandler.Invoice.BillTo(); name != "" {
		t.Fatalf("bill-to survived reset: %q", name)
	}
	if items := deps.InvoiceHandler.Invoice.Items(); len(items) != 1 || items[0].Weight != "" {
		t.Fatalf("reset must leave one empty line, got %v", items)
	}
}

func TestInvoiceAddAndRemoveLines(t *testing.T) {
	app, deps := newInvoiceApp(t)

	resp := adminGet(t, app, "/admin/invoice")
	csrfTok := extractCookie(resp, "csrf_")

	respAdd := adminPost(t, app, "/admin/invoice", csrfTok, url.Values{"add_item": {"1"}})
	if respAdd.StatusCode != http.StatusFound {
		t.Fatalf("add: want 302, got %d", respAdd.StatusCode)
	}
	items := deps.InvoiceHandler.Invoice.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 lines after add, got %d", len(items))
	}

	respRm := adminPost(t, app, "/admin/invoice", csrfTok, url.Values{"remove_item": {items[0].ID}})
	if respRm.StatusCode != http.StatusFound {
		t.Fatalf("remove: want 302, got %d", respRm.StatusCode)
	}
	left := deps.InvoiceHandler.Invoice.Items()
	if len(left) != 1 || left[0].ID != items[1].ID {
		t.Fatalf("want only the second line left, got %v", left)
	}

	// Removing the last line is refused.
	respLast := adminPost(t, app, "/admin/invoice", csrfTok, url.Values{"remove_item": {left[0].ID}})
	if respLast.StatusCode != http.StatusFound {
		t.Fatalf("remove last: want 302, got %d", respLast.StatusCode)
	}
	if got := deps.InvoiceHandler.Invoice.Items(); len(got) != 1 {
		t.Fatalf("last line must survive, got %v", got)
	}
}
