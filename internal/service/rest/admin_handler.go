package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/admin"
	"github.com/daralkutub/storefront/internal/service/catalog"
	"github.com/daralkutub/storefront/internal/service/pricing"
)

const defaultOrderListLimit = 100

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries an issued or refreshed admin token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RefreshRequest is the body of POST /api/admin/refresh.
type RefreshRequest struct {
	Token string `json:"token"`
}

// UpdateStatusRequest is the body of PATCH /api/admin/orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BookPayload is the admin book create/update body, shared by both shelves.
type BookPayload struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description,omitempty"`
	PriceMinor  int64   `json:"price_minor"`
	CoverImage  string  `json:"cover_image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Language    string  `json:"language,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	InStock     bool    `json:"in_stock"`
	Featured    bool    `json:"featured"`
	NewArrival  bool    `json:"new_arrival"`
	BestSeller  bool    `json:"best_seller"`
}

func (p BookPayload) toDomain(shelf domain.Shelf) domain.Book {
	return domain.Book{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Description,
		PriceMinor:  p.PriceMinor,
		CoverImage:  p.CoverImage,
		Category:    p.Category,
		Language:    p.Language,
		Publisher:   p.Publisher,
		Rating:      p.Rating,
		InStock:     p.InStock,
		Featured:    p.Featured,
		NewArrival:  p.NewArrival,
		BestSeller:  p.BestSeller,
		Shelf:       shelf,
	}
}

// StatsView is the back-office dashboard summary.
type StatsView struct {
	RevenueMinor  int64  `json:"revenue_minor"`
	Revenue       string `json:"revenue"`
	Currency      string `json:"currency"`
	OrderCount    int    `json:"order_count"`
	PendingOrders int    `json:"pending_orders"`
	CustomerCount int    `json:"customer_count"`
}

// AdminHandler serves the back office: login, order management, dashboard
// stats and catalog maintenance. Everything except Login sits behind the
// bearer-token middleware.
type AdminHandler struct {
	sessions *admin.SessionManager
	orders   *admin.OrdersService
	catalog  *catalog.Service
	logger   *log.Entry
}

// NewAdminHandler creates the back-office handler.
func NewAdminHandler(sessions *admin.SessionManager, orders *admin.OrdersService, svc *catalog.Service, logger *log.Entry) *AdminHandler {
	if logger == nil {
		logger = log.New().WithField("component", "rest")
	}
	return &AdminHandler{sessions: sessions, orders: orders, catalog: svc, logger: logger}
}

// Login checks admin credentials and issues a signed expiring token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Refresh re-issues a token that is close to expiry.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.sessions.Refresh(req.Token)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// ListOrders serves all orders, newest first. ?limit caps the result.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultOrderListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	orders, err := h.orders.List(limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetOrder serves one order by id.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderView(order))
}

// UpdateOrderStatus moves an order through the workflow.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderView(order))
}

// DeleteOrder removes an order and its lines.
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats serves the dashboard summary.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, StatsView{
		RevenueMinor:  stats.RevenueMinor,
		Revenue:       pricing.FormatAmount(stats.RevenueMinor),
		Currency:      pricing.Currency,
		OrderCount:    stats.OrderCount,
		PendingOrders: stats.PendingOrders,
		CustomerCount: stats.CustomerCount,
	})
}

// CreateBook adds a catalog record to the shelf.
func (h *AdminHandler) CreateBook(shelf domain.Shelf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}

		book, err := h.catalog.Create(req.toDomain(shelf))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, newBookView(book))
	}
}

// UpdateBook replaces a catalog record. The id comes from the URL, not the
// body.
func (h *AdminHandler) UpdateBook(shelf domain.Shelf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}

		payload := req.toDomain(shelf)
		payload.ID = chi.URLParam(r, "id")
		book, err := h.catalog.Update(payload)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, newBookView(book))
	}
}

// DeleteBook removes a catalog record from the shelf.
func (h *AdminHandler) DeleteBook(shelf domain.Shelf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalog.Delete(shelf, chi.URLParam(r, "id")); err != nil {
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
