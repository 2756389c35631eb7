package services

import "testing"

func TestInvoiceSessionStartsWithOneItem(t *testing.T) {
	s := NewInvoiceSession()
	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("want 1 starting item, got %d", len(items))
	}
	if items[0].ID == "" {
		t.Fatal("starting item has no id")
	}
}

func TestInvoiceRemoveLastItemIsNoOp(t *testing.T) {
	s := NewInvoiceSession()
	only := s.Items()[0]

	s.RemoveItem(only.ID)
	if got := s.Items(); len(got) != 1 || got[0].ID != only.ID {
		t.Fatalf("sole item must survive removal, got %v", got)
	}

	added := s.AddItem()
	s.RemoveItem(only.ID)
	got := s.Items()
	if len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("want only the added item left, got %v", got)
	}
}

func TestInvoiceUpdateRecomputesAmount(t *testing.T) {
	s := NewInvoiceSession()
	id := s.Items()[0].ID

	w, r := "10", "100"
	if err := s.UpdateItem(id, InvoicePatch{Weight: &w, Rate: &r}); err != nil {
		t.Fatal(err)
	}
	if got := s.Items()[0].Amount; got != 1000 {
		t.Fatalf("amount = %v, want 1000", got)
	}

	// Unparsable weight zeroes the line instead of erroring.
	bad := "abc"
	if err := s.UpdateItem(id, InvoicePatch{Weight: &bad}); err != nil {
		t.Fatal(err)
	}
	if got := s.Items()[0].Amount; got != 0 {
		t.Fatalf("amount = %v, want 0 for unparsable weight", got)
	}

	// Description-only patches leave the amount alone.
	w2, r2 := "2", "50"
	if err := s.UpdateItem(id, InvoicePatch{Weight: &w2, Rate: &r2}); err != nil {
		t.Fatal(err)
	}
	desc := "Hex bolts"
	if err := s.UpdateItem(id, InvoicePatch{Description: &desc}); err != nil {
		t.Fatal(err)
	}
	it := s.Items()[0]
	if it.Description != "Hex bolts" || it.Amount != 100 {
		t.Fatalf("description patch changed the amount: %+v", it)
	}

	if err := s.UpdateItem("missing", InvoicePatch{Description: &desc}); err != ErrItemNotFound {
		t.Fatalf("want ErrItemNotFound, got %v", err)
	}
}

func TestInvoiceTotalsAndReset(t *testing.T) {
	s := NewInvoiceSession()
	id := s.Items()[0].ID
	w, r := "10", "100"
	if err := s.UpdateItem(id, InvoicePatch{Weight: &w, Rate: &r}); err != nil {
		t.Fatal(err)
	}
	second := s.AddItem()
	w2, r2 := "5", "200"
	if err := s.UpdateItem(second.ID, InvoicePatch{Weight: &w2, Rate: &r2}); err != nil {
		t.Fatal(err)
	}
	s.SetBillTo("Ahmed Traders", "0300-1234567")
	s.SetTaxPercent("10")
	s.SetDiscount("50")

	tot := s.Totals()
	if tot.SubTotal != 2000 || tot.TaxAmount != 200 || tot.GrandTotal != 2150 {
		t.Fatalf("totals = %+v, want 2000/200/2150", tot)
	}

	s.Reset()
	if name, phone := s.BillTo(); name != "" || phone != "" {
		t.Fatalf("bill-to survived reset: %q %q", name, phone)
	}
	if got := s.Items(); len(got) != 1 || got[0].Weight != "" {
		t.Fatalf("reset must leave one empty item, got %v", got)
	}
	if tot := s.Totals(); tot.GrandTotal != 0 {
		t.Fatalf("totals survived reset: %+v", tot)
	}
}
