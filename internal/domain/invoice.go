package domain

import (
	"strconv"
	"strings"
)

// InvoiceItem is one line of the printable invoice. Weight and Rate hold the
// raw text typed by the operator so partial input never blocks typing;
// Amount is always recomputed from them and never edited directly.
type InvoiceItem struct {
	ID          string
	Description string
	Weight      string
	Rate        string
	Amount      float64
}

// InvoiceTotals are derived from the item sequence plus the two scalar
// inputs. All figures stay unrounded; templates round at display time.
type InvoiceTotals struct {
	SubTotal   float64
	TaxAmount  float64
	GrandTotal float64
}

// ParseAmount parses a numeric field of the invoice form, treating anything
// unparsable as zero.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// LineAmount computes weight × rate for a line item.
func LineAmount(weight, rate string) float64 {
	return ParseAmount(weight) * ParseAmount(rate)
}

// ComputeTotals derives sub total, tax and grand total:
//
//	subTotal   = Σ item.Amount
//	taxAmount  = subTotal × taxPercent / 100
//	grandTotal = subTotal + taxAmount − discountAmount
func ComputeTotals(items []InvoiceItem, taxPercent, discountAmount float64) InvoiceTotals {
	var sub float64
	for _, it := range items {
		sub += it.Amount
	}
	tax := sub * taxPercent / 100
	return InvoiceTotals{
		SubTotal:   sub,
		TaxAmount:  tax,
		GrandTotal: sub + tax - discountAmount,
	}
}
