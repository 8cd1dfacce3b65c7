package cart_test

import (
	"testing"

	"github.com/daralkutub/storefront/internal/service/cart"
	"github.com/daralkutub/storefront/internal/storage/memory"
)

func TestManager_SameSessionSameStore(t *testing.T) {
	mgr := cart.NewManager(memory.NewCartSnapshotStore(), testLogger(), nil)

	first := mgr.Session("session-1")
	second := mgr.Session("session-1")

	if first != second {
		t.Fatal("expected the same store for the same session")
	}
	if mgr.Session("session-2") == first {
		t.Fatal("expected a distinct store for a different session")
	}
}

func TestManager_ForgetReloadsFromSnapshot(t *testing.T) {
	snapshots := memory.NewCartSnapshotStore()
	mgr := cart.NewManager(snapshots, testLogger(), nil)

	store := mgr.Session("session-1")
	if err := store.AddItem(bookA(), 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	mgr.Forget("session-1")
	reloaded := mgr.Session("session-1")

	if reloaded == store {
		t.Fatal("expected a fresh store after forget")
	}
	if got := reloaded.TotalItemCount(); got != 2 {
		t.Fatalf("expected reloaded cart to keep 2 items, got %d", got)
	}
}
