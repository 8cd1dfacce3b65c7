package domain_test

import (
	"testing"
	"time"

	"github.com/daralkutub/storefront/internal/domain"
)

func TestNewCartLineSnapshotsBookFields(t *testing.T) {
	now := time.Now().UTC()
	book := domain.Book{
		ID:         "book-1",
		Title:      "Tafsir Ibn Kathir",
		Author:     "Ibn Kathir",
		PriceMinor: 4500,
		CoverImage: "covers/tafsir.jpg",
		Category:   "Tafsir",
		Language:   "Arabic",
		Shelf:      domain.ShelfBooks,
	}

	line := domain.NewCartLine(book, 3, now)

	if line.BookID != book.ID || line.Title != book.Title || line.Author != book.Author {
		t.Fatalf("line did not snapshot identity fields: %+v", line)
	}
	if line.PriceMinor != book.PriceMinor {
		t.Fatalf("expected price %d, got %d", book.PriceMinor, line.PriceMinor)
	}
	if line.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", line.Quantity)
	}
	if !line.AddedAt.Equal(now) {
		t.Fatalf("expected added_at %v, got %v", now, line.AddedAt)
	}
}

func TestCartLineValidate(t *testing.T) {
	cases := []struct {
		name    string
		line    domain.CartLine
		wantErr bool
	}{
		{
			name: "ok",
			line: domain.CartLine{BookID: "b1", PriceMinor: 100, Quantity: 1},
		},
		{
			name:    "missing book id",
			line:    domain.CartLine{PriceMinor: 100, Quantity: 1},
			wantErr: true,
		},
		{
			name:    "zero quantity",
			line:    domain.CartLine{BookID: "b1", PriceMinor: 100, Quantity: 0},
			wantErr: true,
		},
		{
			name:    "negative price",
			line:    domain.CartLine{BookID: "b1", PriceMinor: -1, Quantity: 1},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := tc.line.Validate()
			if tc.wantErr && len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
			if !tc.wantErr && len(errs) != 0 {
				t.Fatalf("expected no errors, got %v", errs)
			}
		})
	}
}

func TestBookFilterMatches(t *testing.T) {
	book := domain.Book{Category: "Hadith", Language: "French"}

	cases := []struct {
		name   string
		filter domain.BookFilter
		want   bool
	}{
		{name: "empty filter", filter: domain.BookFilter{}, want: true},
		{name: "category match", filter: domain.BookFilter{Category: "Hadith"}, want: true},
		{name: "category mismatch", filter: domain.BookFilter{Category: "Fiqh"}, want: false},
		{name: "language match", filter: domain.BookFilter{Language: "French"}, want: true},
		{name: "both mismatch", filter: domain.BookFilter{Category: "Hadith", Language: "Arabic"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(book); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
