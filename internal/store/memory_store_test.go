package store

import (
	"context"
	"reflect"
	"testing"

	"fastenhub/internal/domain"
)

func TestMemoryStoreCategoriesSubscription(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var snapshots [][]domain.Category
	cancel, err := st.SubscribeCategories(ctx, func(cats []domain.Category) {
		snapshots = append(snapshots, cats)
	})
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	// Initial callback with the (empty) current value.
	if len(snapshots) != 1 || len(snapshots[0]) != 0 {
		t.Fatalf("want one initial empty snapshot, got %v", snapshots)
	}

	first := []domain.Category{{ID: "a", Name: "A"}}
	second := []domain.Category{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	if err := st.SyncCategories(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := st.SyncCategories(ctx, second); err != nil {
		t.Fatal(err)
	}

	if len(snapshots) != 3 {
		t.Fatalf("want 3 snapshots, got %d", len(snapshots))
	}
	if !reflect.DeepEqual(snapshots[1], first) || !reflect.DeepEqual(snapshots[2], second) {
		t.Fatalf("snapshots out of order: %v", snapshots)
	}
}

func TestMemoryStoreCancelStopsDelivery(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	calls := 0
	cancel, err := st.SubscribeCategories(ctx, func([]domain.Category) { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	if err := st.SyncCategories(ctx, []domain.Category{{ID: "x"}}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("callback fired after cancel: %d calls", calls)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	written := domain.DefaultCatalog()
	if err := st.SyncCategories(ctx, written); err != nil {
		t.Fatal(err)
	}

	var got []domain.Category
	cancel, err := st.SubscribeCategories(ctx, func(cats []domain.Category) { got = cats })
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	if !reflect.DeepEqual(got, written) {
		t.Fatalf("round-trip mismatch:\nwrote %v\nread  %v", written, got)
	}
}

func TestMemoryStoreInquiries(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var latest []domain.Inquiry
	cancel, err := st.SubscribeInquiries(ctx, func(inqs []domain.Inquiry) { latest = inqs })
	if err != nil {
		t.Fatal(err)
	}
	defer cancel()

	if err := st.SaveInquiry(ctx, domain.Inquiry{ID: "1", Name: "Ali"}); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveInquiry(ctx, domain.Inquiry{ID: "2", Name: "Sara"}); err != nil {
		t.Fatal(err)
	}
	if len(latest) != 2 || latest[0].ID != "1" || latest[1].ID != "2" {
		t.Fatalf("want [1 2], got %v", latest)
	}

	if err := st.DeleteInquiry(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if len(latest) != 1 || latest[0].ID != "2" {
		t.Fatalf("want [2] after delete, got %v", latest)
	}
}
