package handlers

import (
	"encoding/base64"
	"fmt"
	"io"

	"fastenhub/internal/domain"
	applog "fastenhub/internal/log"
	"fastenhub/internal/services"
	"fastenhub/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// maxImageBytes caps uploaded catalog images before data-URL encoding so a
// single image cannot bloat the remote collection value.
const maxImageBytes = 2 << 20

// AdminHandler drives the dashboard: the staged catalog editor, the inquiry
// inbox and the business panel. The editor session is single-admin; every
// mutation here touches staged state only until /admin/save pushes it live.
type AdminHandler struct {
	Editor    *services.EditorSession
	Inquiries *services.InquiryService
}

// Dashboard renders the catalog tab according to the editor's navigation
// state: the list, one category, or one series.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	nav := h.Editor.Nav()
	switch nav.Mode {
	case services.ModeEditCategory:
		return h.renderCategory(c, nav.CategoryID)
	case services.ModeEditProduct:
		return h.renderSeries(c, nav.CategoryID, nav.SeriesID)
	default:
		q := c.Query("q")
		return render(c, "admin_catalog", fiber.Map{
			"Categories": h.Editor.Filter(q),
			"Q":          q,
		})
	}
}

func (h *AdminHandler) renderCategory(c *fiber.Ctx, id string) error {
	for _, cat := range h.Editor.Snapshot() {
		if cat.ID == id {
			return render(c, "admin_category", fiber.Map{"Category": cat})
		}
	}
	// The remote snapshot may have replaced the staged tree underneath us.
	h.Editor.Back()
	return c.Status(404).Render("notfound", fiber.Map{"Message": "Product group not found"})
}

func (h *AdminHandler) renderSeries(c *fiber.Ctx, catID, seriesID string) error {
	for _, cat := range h.Editor.Snapshot() {
		if cat.ID != catID {
			continue
		}
		for _, ps := range cat.Series {
			if ps.ID == seriesID {
				return render(c, "admin_series", fiber.Map{
					"Category": cat,
					"Series":   ps,
					"Sizes":    domain.JoinSizes(ps.Sizes),
					"Specs":    domain.JoinSizes(ps.Specifications),
				})
			}
		}
	}
	h.Editor.Back()
	return c.Status(404).Render("notfound", fiber.Map{"Message": "Product series not found"})
}

// OpenCategory / OpenSeries / Back drive the three-level navigation.
func (h *AdminHandler) OpenCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Editor.OpenCategory(id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product group not found"})
	}
	return c.Redirect("/admin")
}

func (h *AdminHandler) OpenSeries(c *fiber.Ctx) error {
	catID, okCat := validate.ID(c.FormValue("category_id"))
	seriesID, okSeries := validate.ID(c.FormValue("series_id"))
	if !okCat || !okSeries {
		return c.Status(400).SendString("invalid id")
	}
	if err := h.Editor.OpenSeries(catID, seriesID); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product series not found"})
	}
	return c.Redirect("/admin")
}

func (h *AdminHandler) Back(c *fiber.Ctx) error {
	h.Editor.Back()
	return c.Redirect("/admin")
}

// CreateCategory stages a new placeholder group and opens it.
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	cat := h.Editor.CreateCategory()
	applog.Audit(c, "admin.catalog.category.create", map[string]any{"category_id": cat.ID})
	return c.Redirect("/admin")
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	patch := services.CategoryPatch{
		Name:            formPtr(c, "name"),
		NameUrdu:        formPtr(c, "name_urdu"),
		Image:           formPtr(c, "image"),
		Description:     formPtr(c, "description"),
		DescriptionUrdu: formPtr(c, "description_urdu"),
	}
	if err := h.Editor.PatchCategory(id, patch); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product group not found"})
	}
	return c.Redirect("/admin")
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Editor.RemoveCategory(id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product group not found"})
	}
	applog.Audit(c, "admin.catalog.category.delete", map[string]any{"category_id": id})
	return c.Redirect("/admin")
}

// AddSeries stages a new placeholder series under a group and opens it.
func (h *AdminHandler) AddSeries(c *fiber.Ctx) error {
	catID := c.Params("id")
	ps, err := h.Editor.AddSeries(catID)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product group not found"})
	}
	applog.Audit(c, "admin.catalog.series.create", map[string]any{"category_id": catID, "series_id": ps.ID})
	return c.Redirect("/admin")
}

func (h *AdminHandler) UpdateSeries(c *fiber.Ctx) error {
	catID := c.Params("id")
	seriesID := c.Params("sid")
	patch := services.SeriesPatch{
		Name:            formPtr(c, "name"),
		NameUrdu:        formPtr(c, "name_urdu"),
		Image:           formPtr(c, "image"),
		Description:     formPtr(c, "description"),
		DescriptionUrdu: formPtr(c, "description_urdu"),
		Sizes:           formPtr(c, "sizes"),
		Specifications:  formPtr(c, "specifications"),
	}
	if err := h.Editor.PatchSeries(catID, seriesID, patch); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product series not found"})
	}
	return c.Redirect("/admin")
}

func (h *AdminHandler) DeleteSeries(c *fiber.Ctx) error {
	catID := c.Params("id")
	seriesID := c.Params("sid")
	if err := h.Editor.RemoveSeries(catID, seriesID); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product series not found"})
	}
	applog.Audit(c, "admin.catalog.series.delete", map[string]any{"category_id": catID, "series_id": seriesID})
	return c.Redirect("/admin")
}

// SaveAll pushes the staged catalog live. On failure the staged tree is
// retained and the error surfaces on the current view.
func (h *AdminHandler) SaveAll(c *fiber.Ctx) error {
	if err := h.Editor.SaveAll(c.Context()); err != nil {
		applog.Error(c, "admin.catalog.save.fail", err, nil)
		q := c.Query("q")
		return c.Status(502).Render("admin_catalog", fiber.Map{
			"Categories": h.Editor.Filter(q),
			"Q":          q,
			"Err":        "Could not push changes live. Your edits are still here - try again.",
		})
	}
	applog.Audit(c, "admin.catalog.save", nil)
	return c.Redirect("/admin?saved=1")
}

// UploadImage converts an uploaded file into an inline data URL and stores
// it on the staged target entity.
func (h *AdminHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).SendString("missing image file")
	}
	if fh.Size > maxImageBytes {
		applog.Security(c, "admin.upload.too_large", map[string]any{"size": fh.Size})
		return c.Status(413).SendString("image too large (2 MiB max)")
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(400).SendString("unreadable image file")
	}
	defer f.Close()
	buf, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return c.Status(400).SendString("unreadable image file")
	}
	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(buf))

	catID := c.FormValue("category_id")
	seriesID := c.FormValue("series_id")
	if seriesID != "" {
		err = h.Editor.PatchSeries(catID, seriesID, services.SeriesPatch{Image: &dataURL})
	} else {
		err = h.Editor.PatchCategory(catID, services.CategoryPatch{Image: &dataURL})
	}
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Target not found"})
	}
	applog.Audit(c, "admin.upload.image", map[string]any{"category_id": catID, "series_id": seriesID, "bytes": fh.Size})
	return c.Redirect("/admin")
}

// Inbox lists inquiries, newest first.
func (h *AdminHandler) Inbox(c *fiber.Ctx) error {
	return render(c, "admin_inbox", fiber.Map{"Inquiries": h.Inquiries.Inbox()})
}

func (h *AdminHandler) DeleteInquiry(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Inquiries.Delete(c.Context(), id); err != nil {
		applog.Error(c, "admin.inbox.delete.fail", err, map[string]any{"inquiry_id": id})
		return c.Status(502).Render("admin_inbox", fiber.Map{
			"Inquiries": h.Inquiries.Inbox(),
			"Err":       "Could not delete the inquiry. Try again.",
		})
	}
	applog.Audit(c, "admin.inbox.delete", map[string]any{"inquiry_id": id})
	return c.Redirect("/admin/inbox")
}

// Business shows and stages the contact record; it goes live with SaveAll.
func (h *AdminHandler) Business(c *fiber.Ctx) error {
	return render(c, "admin_business", fiber.Map{
		"Contact": h.Editor.Contact(),
		"Staged":  c.Query("staged") == "1",
	})
}

func (h *AdminHandler) UpdateBusiness(c *fiber.Ctx) error {
	h.Editor.SetContact(domain.ContactInfo{
		Phone:    c.FormValue("phone"),
		WhatsApp: c.FormValue("whatsapp"),
		Email:    c.FormValue("email"),
		Address:  c.FormValue("address"),
	})
	applog.Audit(c, "admin.business.stage", nil)
	return c.Redirect("/admin/business?staged=1")
}

// formPtr returns a pointer to the posted value, or nil when the field was
// not part of the form, so partial forms map onto typed patches.
func formPtr(c *fiber.Ctx, key string) *string {
	if !c.Request().PostArgs().Has(key) {
		return nil
	}
	v := c.FormValue(key)
	return &v
}
