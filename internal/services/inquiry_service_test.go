package services

import (
	"context"
	"testing"
	"time"

	"fastenhub/internal/domain"
	"fastenhub/internal/store"
)

func TestInquirySubmitRejectsMissingFields(t *testing.T) {
	svc := NewInquiryService(store.NewMemoryStore())
	ctx := context.Background()

	cases := []struct{ name, phone, message string }{
		{"", "0300-1234567", "Need M8 bolts"},
		{"Ali", "", "Need M8 bolts"},
		{"Ali", "0300-1234567", ""},
		{"   ", "0300-1234567", "   "},
	}
	for _, tc := range cases {
		if _, err := svc.Submit(ctx, tc.name, tc.phone, tc.message); err != ErrMissingField {
			t.Errorf("Submit(%q,%q,%q) = %v, want ErrMissingField", tc.name, tc.phone, tc.message, err)
		}
	}
}

func TestInquirySubmitAndInbox(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewInquiryService(st)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 5, 14, 30, 9, 0, time.UTC)
	}
	ctx := context.Background()

	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer svc.Stop()

	inq, err := svc.Submit(ctx, "Ali", "0300-1234567", "Need M8 bolts")
	if err != nil {
		t.Fatal(err)
	}
	if inq.ID == "" {
		t.Fatal("submitted inquiry has no id")
	}
	if inq.Date != "3/5/2024, 2:30:09 PM" {
		t.Fatalf("date = %q, want 3/5/2024, 2:30:09 PM", inq.Date)
	}

	inbox := svc.Inbox()
	if len(inbox) != 1 || inbox[0].Name != "Ali" {
		t.Fatalf("inbox = %v, want the submitted inquiry", inbox)
	}

	if err := svc.Delete(ctx, inq.ID); err != nil {
		t.Fatal(err)
	}
	if inbox := svc.Inbox(); len(inbox) != 0 {
		t.Fatalf("inbox not empty after delete: %v", inbox)
	}
}

func TestInquiryInboxNewestFirst(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewInquiryService(st)
	ctx := context.Background()

	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer svc.Stop()

	// MemoryStore snapshots are ordered by id ascending; the inbox flips
	// that so the newest lead is on top.
	for _, inq := range []struct{ id, name string }{
		{"100", "First"}, {"200", "Second"}, {"300", "Third"},
	} {
		if err := st.SaveInquiry(ctx, domain.Inquiry{ID: inq.id, Name: inq.name}); err != nil {
			t.Fatal(err)
		}
	}
	inbox := svc.Inbox()
	if len(inbox) != 3 {
		t.Fatalf("want 3 inquiries, got %d", len(inbox))
	}
	if inbox[0].Name != "Third" || inbox[2].Name != "First" {
		t.Fatalf("inbox not newest-first: %v", inbox)
	}
}
