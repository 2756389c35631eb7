package handlers

import (
	applog "fastenhub/internal/log"
	"fastenhub/internal/repos"
	"fastenhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler serves the visitor-facing pages off the live catalog
// snapshot and the contact form.
type PublicHandler struct {
	Catalog   *services.CatalogService
	Inquiries *services.InquiryService
	Settings  *repos.SettingsRepo
}

func (h *PublicHandler) Home(c *fiber.Ctx) error {
	contact, err := h.Settings.Contact()
	if err != nil {
		applog.Error(c, "home.contact.load.fail", err, nil)
	}
	return render(c, "home", fiber.Map{
		"Categories": h.Catalog.Categories(),
		"Contact":    contact,
	})
}

// Products lists every series across all categories.
func (h *PublicHandler) Products(c *fiber.Ctx) error {
	return render(c, "products", fiber.Map{"Categories": h.Catalog.Categories()})
}

func (h *PublicHandler) CategoryView(c *fiber.Ctx) error {
	id := c.Params("id")
	cat, ok := h.Catalog.CategoryByID(id)
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This product group is no longer available"})
	}
	contact, _ := h.Settings.Contact()
	return render(c, "category", fiber.Map{"Category": cat, "Contact": contact})
}

func (h *PublicHandler) ContactForm(c *fiber.Ctx) error {
	contact, _ := h.Settings.Contact()
	return render(c, "contact", fiber.Map{
		"Contact": contact,
		"Sent":    c.Query("sent") == "1",
	})
}

func (h *PublicHandler) SubmitInquiry(c *fiber.Ctx) error {
	name := c.FormValue("name")
	phone := c.FormValue("phone")
	message := c.FormValue("message")

	inq, err := h.Inquiries.Submit(c.Context(), name, phone, message)
	if err != nil {
		if err == services.ErrMissingField {
			applog.Security(c, "contact.submit.invalid", nil)
			contact, _ := h.Settings.Contact()
			return c.Status(400).Render("contact", fiber.Map{
				"Contact": contact,
				"Err":     "Please fill in your name, phone number and message.",
				"Name":    name, "Phone": phone, "Message": message,
			})
		}
		applog.Error(c, "contact.submit.fail", err, nil)
		contact, _ := h.Settings.Contact()
		return c.Status(502).Render("contact", fiber.Map{
			"Contact": contact,
			"Err":     "Could not send your inquiry right now. Please try again.",
			"Name":    name, "Phone": phone, "Message": message,
		})
	}

	applog.Info(c, "contact.submit", map[string]any{"inquiry_id": inq.ID})
	// Redirect clears the form; the template shows a success banner that
	// expires after a few seconds.
	return c.Redirect("/contact?sent=1")
}
