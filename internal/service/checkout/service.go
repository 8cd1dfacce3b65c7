package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/messaging/kafka"
	"github.com/daralkutub/storefront/internal/metrics"
	"github.com/daralkutub/storefront/internal/service/cart"
	"github.com/daralkutub/storefront/internal/service/pricing"
)

// SubmitRequest carries the checkout form fields for one submission.
type SubmitRequest struct {
	Customer domain.Customer
	Shipping domain.ShippingMethod
	Payment  domain.PaymentMethod
}

// Service turns a session's cart into a persisted order. One submission per
// session may run at a time; a competing submit is rejected immediately.
type Service struct {
	orders  domain.OrderRepository
	outbox  domain.OutboxRepository
	logger  *log.Entry
	metrics *metrics.StoreMetrics
	now     func() time.Time
	newID   func() string

	mu        sync.Mutex
	inFlight  map[string]struct{}
	numberDay string
	numberSeq int
}

// Option customizes the service.
type Option func(*Service)

// WithMetrics attaches storefront metrics.
func WithMetrics(m *metrics.StoreMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides order/item id generation, used by tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService creates a checkout service.
func NewService(orders domain.OrderRepository, outbox domain.OutboxRepository, logger *log.Entry, opts ...Option) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	s := &Service{
		orders:   orders,
		outbox:   outbox,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the request, freezes the cart into an order, persists it
// and enqueues an order.created event. The cart is cleared only after the
// order is stored; on any failure it is left untouched.
func (s *Service) Submit(ctx context.Context, sessionID string, cartStore *cart.Store, req SubmitRequest) (domain.Order, error) {
	if err := s.acquire(sessionID); err != nil {
		return domain.Order{}, err
	}
	defer s.release(sessionID)

	start := s.now()
	if s.metrics != nil {
		s.metrics.CheckoutStarted()
		defer s.metrics.CheckoutFinished()
		defer func() {
			s.metrics.RecordCheckoutDuration(time.Since(start))
		}()
	}

	lines := cartStore.Lines()
	if err := s.validate(lines, &req); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Info("checkout rejected")
		if s.metrics != nil {
			s.metrics.RecordCheckoutRejected()
		}
		return domain.Order{}, err
	}

	order := s.buildOrder(lines, req)

	if err := ctx.Err(); err != nil {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailed()
		}
		return domain.Order{}, fmt.Errorf("checkout aborted: %w", err)
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailed()
		}
		return domain.Order{}, errors.Join(errs...)
	}

	if err := s.orders.Create(order); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"session_id":   sessionID,
			"order_number": order.Number,
		}).Error("failed to persist order")
		if s.metrics != nil {
			s.metrics.RecordCheckoutFailed()
		}
		return domain.Order{}, fmt.Errorf("failed to persist order: %w", err)
	}

	s.enqueueCreatedEvent(order)

	if s.metrics != nil {
		s.metrics.RecordCheckoutSubmitted(order.TotalMinor)
	}

	cartStore.Clear()

	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"order_number": order.Number,
		"total_minor":  order.TotalMinor,
		"items":        len(order.Items),
	}).Info("order placed")

	return order, nil
}

func (s *Service) acquire(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return domain.ErrSubmissionInFlight
	}
	s.inFlight[sessionID] = struct{}{}
	return nil
}

func (s *Service) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

func (s *Service) validate(lines []domain.CartLine, req *SubmitRequest) error {
	if len(lines) == 0 {
		return domain.ErrCartEmpty
	}

	req.Customer.FullName = strings.TrimSpace(req.Customer.FullName)
	req.Customer.Email = strings.TrimSpace(req.Customer.Email)
	req.Customer.Phone = strings.TrimSpace(req.Customer.Phone)
	req.Customer.Address = strings.TrimSpace(req.Customer.Address)
	req.Customer.City = strings.TrimSpace(req.Customer.City)
	req.Customer.PostalCode = strings.TrimSpace(req.Customer.PostalCode)
	req.Customer.Notes = strings.TrimSpace(req.Customer.Notes)

	if req.Customer.FullName == "" || req.Customer.Email == "" ||
		req.Customer.Phone == "" || req.Customer.Address == "" ||
		req.Customer.City == "" || req.Customer.PostalCode == "" {
		return domain.ErrCustomerFieldsMissing
	}

	if !req.Shipping.Valid() {
		return domain.ErrShippingMethodInvalid
	}
	if !req.Payment.Valid() {
		return domain.ErrPaymentMethodInvalid
	}
	return nil
}

func (s *Service) buildOrder(lines []domain.CartLine, req SubmitRequest) domain.Order {
	now := s.now().UTC()

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ID:         s.newID(),
			BookID:     line.BookID,
			Title:      line.Title,
			PriceMinor: line.PriceMinor,
			Quantity:   line.Quantity,
			CoverImage: line.CoverImage,
			CreatedAt:  now,
		})
	}

	subtotal := pricing.Subtotal(lines)
	fee := pricing.ShippingFee(subtotal, req.Shipping)

	return domain.Order{
		ID:               s.newID(),
		Number:           s.nextNumber(now),
		Customer:         req.Customer,
		Items:            items,
		Shipping:         req.Shipping,
		Payment:          req.Payment,
		SubtotalMinor:    subtotal,
		ShippingFeeMinor: fee,
		TotalMinor:       pricing.Total(subtotal, fee),
		Currency:         pricing.Currency,
		Status:           domain.OrderStatusPending,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// nextNumber issues receipt numbers of the form KTB-YYMMDD-NNNN with a
// counter that restarts each day.
func (s *Service) nextNumber(now time.Time) string {
	day := now.Format("060102")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numberDay != day {
		s.numberDay = day
		s.numberSeq = 0
	}
	s.numberSeq++
	return fmt.Sprintf("KTB-%s-%04d", day, s.numberSeq)
}

// enqueueCreatedEvent records the order.created event in the outbox. The
// order is already persisted at this point, so an outbox failure is logged
// and the submission still succeeds.
func (s *Service) enqueueCreatedEvent(order domain.Order) {
	if s.outbox == nil {
		return
	}

	event := kafka.NewOrderEvent(
		kafka.EventTypeOrderCreated,
		order.ID,
		order.Number,
		order.Customer.Email,
		string(order.Status),
		order.TotalMinor,
		order.Currency,
	)
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("failed to marshal order event")
		return
	}

	_, err = s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(kafka.EventTypeOrderCreated),
		Payload:       payload,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("failed to enqueue order event")
	}
}
