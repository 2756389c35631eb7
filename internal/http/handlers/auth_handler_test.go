package handlers_test

import (
	"net/http"
	"net/http/httptest"
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
)

// Minimal app with the real login handler and admin guard.
func newAuthApp(t *testing.T) (*fiber.App, *repos.AdminRepo) {
	t.Helper()
	t.Setenv("ADMIN_PASSWORD", "Passw0rd!")
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	adminRepo := repos.NewAdminRepo(db)
	authSvc := &services.AuthService{Admins: adminRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Post("/logout", authH.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
	return app, adminRepo
}

func TestAdminGuard(t *testing.T) {
	app, adminRepo := newAuthApp(t)

	// Anonymous -> redirect to login
	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("anonymous: want 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("anonymous redirect = %q, want /login", loc)
	}

	// Unknown session -> 403
	reqBad := httptest.NewRequest("GET", "/admin", nil)
	reqBad.AddCookie(&http.Cookie{Name: "sid", Value: "sid-unknown"})
	respBad, err := app.Test(reqBad)
	if err != nil {
		t.Fatal(err)
	}
	if respBad.StatusCode != http.StatusForbidden {
		t.Fatalf("unknown session: want 403, got %d", respBad.StatusCode)
	}

	// Bound session -> 200
	if err := adminRepo.BindSession("sid-admin", "a-admin"); err != nil {
		t.Fatal(err)
	}
	reqOK := httptest.NewRequest("GET", "/admin", nil)
	reqOK.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	respOK, err := app.Test(reqOK)
	if err != nil {
		t.Fatal(err)
	}
	if respOK.StatusCode != http.StatusOK {
		t.Fatalf("bound session: want 200, got %d", respOK.StatusCode)
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _ := newAuthApp(t)

	respGet, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(respGet, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	// Wrong password -> 401, no session cookie binding
	respBad := postForm(t, app, "/login", csrfTok, url.Values{
		"username": {"admin"},
		"password": {"wrong-password"},
	})
	if respBad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad creds: want 401, got %d", respBad.StatusCode)
	}

	// Seeded password -> redirect to dashboard with a bound sid cookie
	respGood := postForm(t, app, "/login", csrfTok, url.Values{
		"username": {"admin"},
		"password": {"Passw0rd!"},
	})
	if respGood.StatusCode != http.StatusFound {
		t.Fatalf("good creds: want 302, got %d", respGood.StatusCode)
	}
	if loc := respGood.Header.Get("Location"); loc != "/admin" {
		t.Fatalf("login redirect = %q, want /admin", loc)
	}
	sid := extractCookie(respGood, "sid")
	if sid == "" {
		t.Fatal("no sid cookie issued on login")
	}

	reqAdmin := httptest.NewRequest("GET", "/admin", nil)
	reqAdmin.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	respAdmin, err := app.Test(reqAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if respAdmin.StatusCode != http.StatusOK {
		t.Fatalf("fresh session: want 200, got %d", respAdmin.StatusCode)
	}
}

func TestLogoutUnbindsSession(t *testing.T) {
	app, adminRepo := newAuthApp(t)

	if err := adminRepo.BindSession("sid-admin", "a-admin"); err != nil {
		t.Fatal(err)
	}
	respGet, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(respGet, "csrf_")

	form := url.Values{"csrf": {csrfTok}}
	req := httptest.NewRequest("POST", "/logout", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("logout: want 302, got %d", resp.StatusCode)
	}

	reqAfter := httptest.NewRequest("GET", "/admin", nil)
	reqAfter.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
	respAfter, err := app.Test(reqAfter)
	if err != nil {
		t.Fatal(err)
	}
	if respAfter.StatusCode != http.StatusForbidden {
		t.Fatalf("after logout: want 403, got %d", respAfter.StatusCode)
	}
}
