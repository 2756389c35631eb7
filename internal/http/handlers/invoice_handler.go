package handlers

import (
	"fmt"

	applog "fastenhub/internal/log"
	"fastenhub/internal/repos"
	"fastenhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InvoiceHandler drives the printable invoice builder. The session lives in
// memory only; printing is the end of its life.
type InvoiceHandler struct {
	Invoice  *services.InvoiceSession
	Settings *repos.SettingsRepo
}

func (h *InvoiceHandler) invoiceMap(extra fiber.Map) fiber.Map {
	name, phone := h.Invoice.BillTo()
	totals := h.Invoice.Totals()
	data := fiber.Map{
		"Items":         h.Invoice.Items(),
		"CustomerName":  name,
		"CustomerPhone": phone,
		"TaxPercent":    h.Invoice.TaxPercent(),
		"Discount":      h.Invoice.Discount(),
		// Money rounds to two decimals at display time only.
		"SubTotal":   fmt.Sprintf("%.2f", totals.SubTotal),
		"TaxAmount":  fmt.Sprintf("%.2f", totals.TaxAmount),
		"GrandTotal": fmt.Sprintf("%.2f", totals.GrandTotal),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

func (h *InvoiceHandler) Builder(c *fiber.Ctx) error {
	return render(c, "admin_invoice", h.invoiceMap(nil))
}

// Update applies the whole builder form in one post: bill-to block, every
// line item, tax and discount. Amounts recompute as a side effect.
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	h.Invoice.SetBillTo(c.FormValue("customer_name"), c.FormValue("customer_phone"))
	h.Invoice.SetTaxPercent(c.FormValue("tax_percent"))
	h.Invoice.SetDiscount(c.FormValue("discount"))

	for _, it := range h.Invoice.Items() {
		patch := services.InvoicePatch{
			Description: formPtr(c, "description_"+it.ID),
			Weight:      formPtr(c, "weight_"+it.ID),
			Rate:        formPtr(c, "rate_"+it.ID),
		}
		if err := h.Invoice.UpdateItem(it.ID, patch); err != nil {
			applog.Error(c, "admin.invoice.update.fail", err, map[string]any{"item_id": it.ID})
		}
	}

	switch {
	case c.FormValue("add_item") != "":
		h.Invoice.AddItem()
	case c.FormValue("remove_item") != "":
		h.Invoice.RemoveItem(c.FormValue("remove_item"))
	}
	return c.Redirect("/admin/invoice")
}

// Print renders the fixed print layout: business header, bill-to block,
// line table, totals and signature line.
func (h *InvoiceHandler) Print(c *fiber.Ctx) error {
	contact, err := h.Settings.Contact()
	if err != nil {
		applog.Error(c, "admin.invoice.contact.load.fail", err, nil)
	}
	return render(c, "invoice_print", h.invoiceMap(fiber.Map{"Contact": contact}))
}

// Reset discards the invoice session after printing.
func (h *InvoiceHandler) Reset(c *fiber.Ctx) error {
	h.Invoice.Reset()
	return c.Redirect("/admin/invoice")
}
