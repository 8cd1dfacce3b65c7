package memory_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/storage/memory"
)

func TestCartSnapshotStore_RoundTrip(t *testing.T) {
	store := memory.NewCartSnapshotStore()
	lines := []domain.CartLine{
		{
			BookID:     "book-1",
			Title:      "Riyad as-Salihin",
			Author:     "An-Nawawi",
			PriceMinor: 2000,
			Category:   "Hadith",
			Language:   "Arabic",
			Quantity:   2,
			AddedAt:    time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			BookID:     "book-2",
			Title:      "Le Saint Coran",
			PriceMinor: 950,
			Quantity:   1,
			AddedAt:    time.Date(2026, 8, 28, 10, 5, 0, 0, time.UTC),
		},
	}

	if err := store.Save("session-1", lines); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load("session-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, lines) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", lines, loaded)
	}
}

func TestCartSnapshotStore_LoadMissingSession(t *testing.T) {
	store := memory.NewCartSnapshotStore()

	lines, err := store.Load("unknown")
	if err != nil {
		t.Fatalf("expected no error for missing session, got %v", err)
	}
	if lines != nil {
		t.Fatalf("expected nil lines, got %+v", lines)
	}
}

func TestCartSnapshotStore_Delete(t *testing.T) {
	store := memory.NewCartSnapshotStore()
	if err := store.Save("session-1", []domain.CartLine{{BookID: "b", PriceMinor: 1, Quantity: 1}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Delete("session-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	lines, err := store.Load("session-1")
	if err != nil || lines != nil {
		t.Fatalf("expected empty snapshot after delete, got %+v / %v", lines, err)
	}
}
