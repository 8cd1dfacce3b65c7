package domain

import "time"

// CartLine is one catalog item plus the quantity of it currently in the cart.
// All catalog fields are a snapshot taken when the item was first added;
// re-adding the same book does not refresh them.
type CartLine struct {
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	// PriceMinor is the unit price captured at add time, in minor units.
	PriceMinor int64  `json:"price_minor"`
	CoverImage string `json:"cover_image"`
	Category   string `json:"category"`
	Language   string `json:"language"`
	// Quantity is always >= 1; a line that would drop below 1 is removed
	// instead.
	Quantity int32     `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// NewCartLine snapshots the catalog fields the cart needs from a book.
func NewCartLine(book Book, quantity int32, now time.Time) CartLine {
	return CartLine{
		BookID:     book.ID,
		Title:      book.Title,
		Author:     book.Author,
		PriceMinor: book.PriceMinor,
		CoverImage: book.CoverImage,
		Category:   book.Category,
		Language:   book.Language,
		Quantity:   quantity,
		AddedAt:    now,
	}
}

// Validate checks the invariants a persisted line must satisfy.
func (l *CartLine) Validate() []error {
	var errs []error

	if l.BookID == "" {
		errs = append(errs, ErrBookIDRequired)
	}
	if l.Quantity <= 0 {
		errs = append(errs, ErrQuantityInvalid)
	}
	if l.PriceMinor < 0 {
		errs = append(errs, ErrBookPriceNegative)
	}

	return errs
}
