package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/catalog"
	"github.com/daralkutub/storefront/internal/service/pricing"
)

// BookView is the catalog record as the storefront renders it.
type BookView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Category    string    `json:"category,omitempty"`
	Language    string    `json:"language,omitempty"`
	Publisher   string    `json:"publisher,omitempty"`
	Rating      float64   `json:"rating"`
	InStock     bool      `json:"in_stock"`
	Featured    bool      `json:"featured"`
	NewArrival  bool      `json:"new_arrival"`
	BestSeller  bool      `json:"best_seller"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newBookView(b domain.Book) BookView {
	return BookView{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		PriceMinor:  b.PriceMinor,
		Price:       pricing.FormatAmount(b.PriceMinor),
		Currency:    pricing.Currency,
		CoverImage:  b.CoverImage,
		Category:    b.Category,
		Language:    b.Language,
		Publisher:   b.Publisher,
		Rating:      b.Rating,
		InStock:     b.InStock,
		Featured:    b.Featured,
		NewArrival:  b.NewArrival,
		BestSeller:  b.BestSeller,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func newBookViews(books []domain.Book) []BookView {
	views := make([]BookView, 0, len(books))
	for _, b := range books {
		views = append(views, newBookView(b))
	}
	return views
}

// CatalogHandler serves the public read-only storefront catalog. Each handler
// is bound to one shelf by the router.
type CatalogHandler struct {
	catalog *catalog.Service
	logger  *log.Entry
}

// NewCatalogHandler creates the public catalog handler.
func NewCatalogHandler(svc *catalog.Service, logger *log.Entry) *CatalogHandler {
	if logger == nil {
		logger = log.New().WithField("component", "rest")
	}
	return &CatalogHandler{catalog: svc, logger: logger}
}

// List serves the shelf listing with optional category/language filters.
// ?featured=true narrows to the merchandised selection.
func (h *CatalogHandler) List(shelf domain.Shelf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			books []domain.Book
			err   error
		)
		if r.URL.Query().Get("featured") == "true" {
			books, err = h.catalog.Featured(shelf)
		} else {
			filter := domain.BookFilter{
				Category: r.URL.Query().Get("category"),
				Language: r.URL.Query().Get("language"),
			}
			books, err = h.catalog.List(shelf, filter)
		}
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, newBookViews(books))
	}
}

// Get serves one catalog record by id.
func (h *CatalogHandler) Get(shelf domain.Shelf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		book, err := h.catalog.Get(shelf, id)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, newBookView(book))
	}
}
