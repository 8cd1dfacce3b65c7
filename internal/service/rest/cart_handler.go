package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/cart"
	"github.com/daralkutub/storefront/internal/service/catalog"
	"github.com/daralkutub/storefront/internal/service/pricing"
)

// CartLineView is one cart line as the storefront renders it.
type CartLineView struct {
	BookID         string    `json:"book_id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	PriceMinor     int64     `json:"price_minor"`
	Price          string    `json:"price"`
	CoverImage     string    `json:"cover_image,omitempty"`
	Category       string    `json:"category,omitempty"`
	Language       string    `json:"language,omitempty"`
	Quantity       int32     `json:"quantity"`
	LineTotalMinor int64     `json:"line_total_minor"`
	LineTotal      string    `json:"line_total"`
	AddedAt        time.Time `json:"added_at"`
}

// CartView is the full cart summary returned by every cart endpoint, so the
// client never has to derive totals itself.
type CartView struct {
	Items                      []CartLineView `json:"items"`
	ItemCount                  int32          `json:"item_count"`
	SubtotalMinor              int64          `json:"subtotal_minor"`
	Subtotal                   string         `json:"subtotal"`
	Currency                   string         `json:"currency"`
	FreeShippingRemainingMinor int64          `json:"free_shipping_remaining_minor"`
	FreeShippingRemaining      string         `json:"free_shipping_remaining"`
}

func newCartView(store *cart.Store) CartView {
	lines := store.Lines()
	items := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		lineTotal := int64(line.Quantity) * line.PriceMinor
		items = append(items, CartLineView{
			BookID:         line.BookID,
			Title:          line.Title,
			Author:         line.Author,
			PriceMinor:     line.PriceMinor,
			Price:          pricing.FormatAmount(line.PriceMinor),
			CoverImage:     line.CoverImage,
			Category:       line.Category,
			Language:       line.Language,
			Quantity:       line.Quantity,
			LineTotalMinor: lineTotal,
			LineTotal:      pricing.FormatAmount(lineTotal),
			AddedAt:        line.AddedAt,
		})
	}

	subtotal := pricing.Subtotal(lines)
	remaining := pricing.AmountToRemainingFreeShipping(subtotal)
	return CartView{
		Items:                      items,
		ItemCount:                  store.TotalItemCount(),
		SubtotalMinor:              subtotal,
		Subtotal:                   pricing.FormatAmount(subtotal),
		Currency:                   pricing.Currency,
		FreeShippingRemainingMinor: remaining,
		FreeShippingRemaining:      pricing.FormatAmount(remaining),
	}
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	Shelf    string `json:"shelf"`
	BookID   string `json:"book_id"`
	Quantity int32  `json:"quantity"`
}

// UpdateQuantityRequest is the body of PATCH /api/cart/items/{id}.
type UpdateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

// CartHandler serves the per-session cart. The session id comes from the
// session cookie middleware; the catalog is consulted only at add time, which
// is when the line snapshot is taken.
type CartHandler struct {
	carts   *cart.Manager
	catalog *catalog.Service
	logger  *log.Entry
}

// NewCartHandler creates the cart handler.
func NewCartHandler(carts *cart.Manager, svc *catalog.Service, logger *log.Entry) *CartHandler {
	if logger == nil {
		logger = log.New().WithField("component", "rest")
	}
	return &CartHandler{carts: carts, catalog: svc, logger: logger}
}

func (h *CartHandler) store(r *http.Request) *cart.Store {
	return h.carts.Session(sessionIDFromContext(r.Context()))
}

// Get returns the current cart summary.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, newCartView(h.store(r)))
}

// AddItem looks the book up on its shelf and puts it into the cart. A missing
// quantity defaults to one, matching the storefront's add-to-cart button.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.BookID == "" {
		respondDomainError(w, domain.ErrBookIDRequired)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	shelf := domain.Shelf(req.Shelf)
	if req.Shelf == "" {
		shelf = domain.ShelfBooks
	}

	book, err := h.catalog.Get(shelf, req.BookID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	store := h.store(r)
	if err := store.AddItem(book, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newCartView(store))
}

// UpdateQuantity sets a line's quantity directly.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	store := h.store(r)
	if err := store.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartView(store))
}

// RemoveItem drops a line regardless of quantity. Removing an absent line
// still returns the current cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.RemoveItem(chi.URLParam(r, "id"))
	respondJSON(w, http.StatusOK, newCartView(store))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	store.Clear()
	respondJSON(w, http.StatusOK, newCartView(store))
}
