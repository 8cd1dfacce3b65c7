package catalog_test

import (
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/catalog"
	"github.com/daralkutub/storefront/internal/storage/memory"
)

func testLogger() *log.Entry {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)
	return logger.WithField("component", "catalog-test")
}

func newService() *catalog.Service {
	return catalog.NewService(memory.NewCatalogRepository(), testLogger())
}

func TestService_CreateAndGet(t *testing.T) {
	svc := newService()

	created, err := svc.Create(domain.Book{
		Title:      "  Riyad as-Salihin ",
		Author:     "An-Nawawi",
		PriceMinor: 2000,
		Category:   "Hadith",
		Language:   "Arabic",
		Shelf:      domain.ShelfBooks,
		InStock:    true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if created.Title != "Riyad as-Salihin" {
		t.Errorf("title should be trimmed, got %q", created.Title)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := svc.Get(domain.ShelfBooks, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Author != "An-Nawawi" {
		t.Errorf("unexpected author %q", got.Author)
	}
}

func TestService_CreateRejectsInvalid(t *testing.T) {
	svc := newService()

	_, err := svc.Create(domain.Book{Title: "  ", PriceMinor: -100, Shelf: domain.Shelf("magazines")})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !errors.Is(err, domain.ErrBookTitleRequired) {
		t.Errorf("expected ErrBookTitleRequired in %v", err)
	}
	if !errors.Is(err, domain.ErrBookPriceNegative) {
		t.Errorf("expected ErrBookPriceNegative in %v", err)
	}
	if !errors.Is(err, domain.ErrShelfInvalid) {
		t.Errorf("expected ErrShelfInvalid in %v", err)
	}
}

func TestService_ListFilters(t *testing.T) {
	svc := newService()

	seed := []domain.Book{
		{Title: "Sahih al-Bukhari", Category: "Hadith", Language: "Arabic", PriceMinor: 4500, Shelf: domain.ShelfBooks},
		{Title: "Le Jardin des Vertueux", Category: "Hadith", Language: "French", PriceMinor: 2500, Shelf: domain.ShelfBooks},
		{Title: "Mushaf Madina", Category: "Quran", Language: "Arabic", PriceMinor: 3000, Shelf: domain.ShelfQuran},
	}
	for _, b := range seed {
		if _, err := svc.Create(b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	hadith, err := svc.List(domain.ShelfBooks, domain.BookFilter{Category: "Hadith", Language: "French"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(hadith) != 1 || hadith[0].Title != "Le Jardin des Vertueux" {
		t.Fatalf("unexpected filter result: %+v", hadith)
	}

	// Shelves are independent tables.
	quran, err := svc.List(domain.ShelfQuran, domain.BookFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(quran) != 1 {
		t.Fatalf("expected 1 quran record, got %d", len(quran))
	}

	if _, err := svc.List(domain.Shelf("magazines"), domain.BookFilter{}); !errors.Is(err, domain.ErrShelfInvalid) {
		t.Errorf("expected ErrShelfInvalid, got %v", err)
	}
}

func TestService_Featured(t *testing.T) {
	svc := newService()

	if _, err := svc.Create(domain.Book{Title: "Plain", PriceMinor: 100, Shelf: domain.ShelfBooks}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(domain.Book{Title: "Highlight", PriceMinor: 200, Shelf: domain.ShelfBooks, Featured: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	featured, err := svc.Featured(domain.ShelfBooks)
	if err != nil {
		t.Fatalf("featured failed: %v", err)
	}
	if len(featured) != 1 || featured[0].Title != "Highlight" {
		t.Fatalf("unexpected featured set: %+v", featured)
	}
}

func TestService_UpdateKeepsCreatedAt(t *testing.T) {
	svc := newService()

	created, err := svc.Create(domain.Book{Title: "First Edition", PriceMinor: 1000, Shelf: domain.ShelfBooks})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Title = "Second Edition"
	created.PriceMinor = 1200
	updated, err := svc.Update(created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must not change CreatedAt")
	}

	got, err := svc.Get(domain.ShelfBooks, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Second Edition" || got.PriceMinor != 1200 {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestService_UpdateMissing(t *testing.T) {
	svc := newService()

	_, err := svc.Update(domain.Book{ID: "ghost", Title: "Ghost", PriceMinor: 100, Shelf: domain.ShelfBooks})
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := newService()

	created, err := svc.Create(domain.Book{Title: "Removable", PriceMinor: 100, Shelf: domain.ShelfQuran})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(domain.ShelfQuran, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(domain.ShelfQuran, created.ID); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound after delete, got %v", err)
	}
	if err := svc.Delete(domain.ShelfQuran, created.ID); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound on double delete, got %v", err)
	}
}
