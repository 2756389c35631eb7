package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fastenhub/internal/config"
	"fastenhub/internal/domain"
	"fastenhub/internal/http/handlers"
	applog "fastenhub/internal/log"
	"fastenhub/internal/repos"
	"fastenhub/internal/services"
	"fastenhub/internal/store"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
			applog.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Remote store
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	ctx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	pingErr := redisClient.Ping(pingCtx).Err()
	cancelPing()

	storeLogger := logrus.New()
	storeLogger.SetFormatter(&logrus.JSONFormatter{})

	var st store.Store
	var redisStore *store.RedisStore
	if pingErr != nil {
		log.Printf("[warn] redis unreachable (%v), falling back to in-memory store", pingErr)
		st = store.NewMemoryStore()
	} else {
		redisStore = store.NewRedisStore(redisClient, storeLogger)
		st = redisStore
	}

	// Seed an empty remote catalog on request
	if cfg.SeedCatalog && redisStore != nil {
		cats, err := redisStore.Categories(ctx)
		if err != nil {
			log.Printf("[warn] seed check failed: %v", err)
		} else if len(cats) == 0 {
			if err := redisStore.SyncCategories(ctx, domain.DefaultCatalog()); err != nil {
				log.Printf("[warn] catalog seed failed: %v", err)
			} else {
				log.Println("[seed] pushed default catalog to empty remote store")
			}
		}
	}

	// Auth wiring
	adminRepo := repos.NewAdminRepo(db)
	authSvc := &services.AuthService{Admins: adminRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Body cap leaves headroom over the 2 MiB image limit for multipart framing
	app.Server().MaxRequestBodySize = 4 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if a, err := authSvc.CurrentAdmin(sid); err == nil && a != nil {
				c.Locals("admin", a)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Static("/static", "./web/static")
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, st)

	// Live subscriptions; the editor's staged tree resets on every remote
	// snapshot via the OnChange hook wired in NewDeps.
	if err := deps.Catalog.Start(ctx); err != nil {
		log.Fatalf("catalog subscription failed: %v", err)
	}
	if err := deps.Inquiries.Start(ctx); err != nil {
		log.Fatalf("inquiry subscription failed: %v", err)
	}

	// Public pages
	app.Get("/", deps.PublicHandler.Home)
	app.Get("/products", deps.PublicHandler.Products)
	app.Get("/category/:id", deps.PublicHandler.CategoryView)
	app.Get("/contact", deps.PublicHandler.ContactForm)
	app.Post("/contact", limiter.New(limiter.Config{Max: 10, Expiration: time.Minute}), deps.PublicHandler.SubmitInquiry)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Admin
	adminH := deps.AdminHandler
	invoiceH := deps.InvoiceHandler
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", adminH.Dashboard)
	admin.Post("/open-category", adminH.OpenCategory)
	admin.Post("/open-series", adminH.OpenSeries)
	admin.Post("/back", adminH.Back)
	admin.Post("/categories", adminH.CreateCategory)
	admin.Post("/categories/:id", adminH.UpdateCategory)
	admin.Post("/categories/:id/delete", adminH.DeleteCategory)
	admin.Post("/categories/:id/series", adminH.AddSeries)
	admin.Post("/categories/:id/series/:sid", adminH.UpdateSeries)
	admin.Post("/categories/:id/series/:sid/delete", adminH.DeleteSeries)
	admin.Post("/save", adminH.SaveAll)
	admin.Post("/upload", adminH.UploadImage)
	admin.Get("/inbox", adminH.Inbox)
	admin.Post("/inquiries/:id/delete", adminH.DeleteInquiry)
	admin.Get("/business", adminH.Business)
	admin.Post("/business", adminH.UpdateBusiness)
	admin.Get("/invoice", invoiceH.Builder)
	admin.Post("/invoice", invoiceH.Update)
	admin.Get("/invoice/print", invoiceH.Print)
	admin.Post("/invoice/reset", invoiceH.Reset)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	// Graceful teardown: subscriptions must be cancelled so no callback
	// fires against a defunct app.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		deps.Catalog.Stop()
		deps.Inquiries.Stop()
		cancelRoot()
		_ = app.Shutdown()
	}()

	log.Fatal(app.Listen(":" + cfg.Port))
}
