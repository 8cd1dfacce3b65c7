package domain

import "time"

// Shelf identifies which catalog table a record lives in. The store keeps
// general books and Quran editions on separate shelves, as the original
// database does.
type Shelf string

const (
	// ShelfBooks is the general catalog.
	ShelfBooks Shelf = "books"
	// ShelfQuran holds Quran editions and mushaf prints.
	ShelfQuran Shelf = "quran_books"
)

// Valid reports whether the shelf is one of the supported catalog tables.
func (s Shelf) Valid() bool {
	return s == ShelfBooks || s == ShelfQuran
}

// Book is a catalog record. The cart treats it as read-only: it copies the
// fields it needs at add time and never re-fetches them.
type Book struct {
	ID string
	// Title in the language of the edition (English, French or Arabic).
	Title  string
	Author string
	// Description is the long-form blurb shown on the detail page.
	Description string
	// PriceMinor is the unit price in minor currency units (1 TND = 100).
	PriceMinor int64
	// CoverImage is a reference (URL or storage key) to the cover asset.
	CoverImage string
	Category   string
	Language   string
	Publisher  string
	// Rating is the average review score, 0..5.
	Rating  float64
	InStock bool
	// Merchandising flags used by the storefront landing sections.
	Featured   bool
	NewArrival bool
	BestSeller bool
	Shelf      Shelf
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the fields an admin must supply when creating a record.
func (b *Book) Validate() []error {
	var errs []error

	if b.Title == "" {
		errs = append(errs, ErrBookTitleRequired)
	}
	if b.PriceMinor < 0 {
		errs = append(errs, ErrBookPriceNegative)
	}
	if !b.Shelf.Valid() {
		errs = append(errs, ErrShelfInvalid)
	}

	return errs
}

// BookFilter narrows catalog listings. Zero values match everything.
type BookFilter struct {
	Category string
	Language string
}

// Matches reports whether the book satisfies the filter.
func (f BookFilter) Matches(b Book) bool {
	if f.Category != "" && b.Category != f.Category {
		return false
	}
	if f.Language != "" && b.Language != f.Language {
		return false
	}
	return true
}
