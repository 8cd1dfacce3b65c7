package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/service/cart"
	"github.com/daralkutub/storefront/internal/service/checkout"
	"github.com/daralkutub/storefront/internal/service/pricing"
)

// CustomerPayload mirrors the checkout form fields.
type CustomerPayload struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Notes      string `json:"notes,omitempty"`
}

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Customer CustomerPayload `json:"customer"`
	Shipping string          `json:"shipping_method"`
	Payment  string          `json:"payment_method"`
}

// OrderItemView is one purchased line on the receipt.
type OrderItemView struct {
	BookID         string `json:"book_id"`
	Title          string `json:"title"`
	PriceMinor     int64  `json:"price_minor"`
	Price          string `json:"price"`
	Quantity       int32  `json:"quantity"`
	CoverImage     string `json:"cover_image,omitempty"`
	LineTotalMinor int64  `json:"line_total_minor"`
	LineTotal      string `json:"line_total"`
}

// OrderView is the receipt returned after checkout and by order lookups.
type OrderView struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	Customer         CustomerPayload `json:"customer"`
	Items            []OrderItemView `json:"items"`
	ShippingMethod   string          `json:"shipping_method"`
	PaymentMethod    string          `json:"payment_method"`
	SubtotalMinor    int64           `json:"subtotal_minor"`
	Subtotal         string          `json:"subtotal"`
	ShippingFeeMinor int64           `json:"shipping_fee_minor"`
	ShippingFee      string          `json:"shipping_fee"`
	TotalMinor       int64           `json:"total_minor"`
	Total            string          `json:"total"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func newOrderView(order domain.Order) OrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		lineTotal := int64(item.Quantity) * item.PriceMinor
		items = append(items, OrderItemView{
			BookID:         item.BookID,
			Title:          item.Title,
			PriceMinor:     item.PriceMinor,
			Price:          pricing.FormatAmount(item.PriceMinor),
			Quantity:       item.Quantity,
			CoverImage:     item.CoverImage,
			LineTotalMinor: lineTotal,
			LineTotal:      pricing.FormatAmount(lineTotal),
		})
	}
	return OrderView{
		ID:     order.ID,
		Number: order.Number,
		Customer: CustomerPayload{
			FullName:   order.Customer.FullName,
			Email:      order.Customer.Email,
			Phone:      order.Customer.Phone,
			Address:    order.Customer.Address,
			City:       order.Customer.City,
			PostalCode: order.Customer.PostalCode,
			Notes:      order.Customer.Notes,
		},
		Items:            items,
		ShippingMethod:   string(order.Shipping),
		PaymentMethod:    string(order.Payment),
		SubtotalMinor:    order.SubtotalMinor,
		Subtotal:         pricing.FormatAmount(order.SubtotalMinor),
		ShippingFeeMinor: order.ShippingFeeMinor,
		ShippingFee:      pricing.FormatAmount(order.ShippingFeeMinor),
		TotalMinor:       order.TotalMinor,
		Total:            pricing.FormatAmount(order.TotalMinor),
		Currency:         order.Currency,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// CheckoutHandler turns the session's cart into an order and serves public
// receipt lookups.
type CheckoutHandler struct {
	checkout *checkout.Service
	carts    *cart.Manager
	orders   domain.OrderRepository
	logger   *log.Entry
}

// NewCheckoutHandler creates the checkout handler.
func NewCheckoutHandler(svc *checkout.Service, carts *cart.Manager, orders domain.OrderRepository, logger *log.Entry) *CheckoutHandler {
	if logger == nil {
		logger = log.New().WithField("component", "rest")
	}
	return &CheckoutHandler{checkout: svc, carts: carts, orders: orders, logger: logger}
}

// Submit places the order for the current session's cart.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sessionID := sessionIDFromContext(r.Context())
	order, err := h.checkout.Submit(r.Context(), sessionID, h.carts.Session(sessionID), checkout.SubmitRequest{
		Customer: domain.Customer{
			FullName:   req.Customer.FullName,
			Email:      req.Customer.Email,
			Phone:      req.Customer.Phone,
			Address:    req.Customer.Address,
			City:       req.Customer.City,
			PostalCode: req.Customer.PostalCode,
			Notes:      req.Customer.Notes,
		},
		Shipping: domain.ShippingMethod(req.Shipping),
		Payment:  domain.PaymentMethod(req.Payment),
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.logger.WithField("order_number", order.Number).Info("order placed")
	respondJSON(w, http.StatusCreated, newOrderView(order))
}

// GetOrder serves the receipt for a placed order by id.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderView(order))
}
