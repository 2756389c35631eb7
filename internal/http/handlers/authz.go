package handlers

import (
	applog "fastenhub/internal/log"
	"fastenhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin guards the dashboard; everything under /admin is admin-only.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		a, err := auth.CurrentAdmin(sid)
		if err != nil || a == nil {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("admin", a)
		return c.Next()
	}
}
