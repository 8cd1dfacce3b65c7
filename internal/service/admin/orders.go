package admin

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/messaging/kafka"
)

// OrderStats is the dashboard summary shown in the back office.
type OrderStats struct {
	// RevenueMinor sums the totals of every order on record.
	RevenueMinor  int64 `json:"revenue_minor"`
	OrderCount    int   `json:"order_count"`
	PendingOrders int   `json:"pending_orders"`
	// CustomerCount is the number of distinct customer emails.
	CustomerCount int `json:"customer_count"`
}

// OrdersService is the admin view over placed orders.
type OrdersService struct {
	orders domain.OrderRepository
	outbox domain.OutboxRepository
	logger *log.Entry
	now    func() time.Time
}

// NewOrdersService creates the back-office order service.
func NewOrdersService(orders domain.OrderRepository, outbox domain.OutboxRepository, logger *log.Entry) *OrdersService {
	if logger == nil {
		logger = log.New().WithField("component", "admin-orders")
	}
	return &OrdersService{
		orders: orders,
		outbox: outbox,
		logger: logger,
		now:    time.Now,
	}
}

// List returns orders newest first, capped by limit when limit > 0.
func (s *OrdersService) List(limit int) ([]domain.Order, error) {
	return s.orders.List(limit)
}

// Get returns one order.
func (s *OrdersService) Get(id string) (domain.Order, error) {
	return s.orders.Get(id)
}

// UpdateStatus moves an order to a new workflow status under optimistic
// locking and enqueues an order.status_changed event.
func (s *OrdersService) UpdateStatus(id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.ErrOrderStatusInvalid
	}

	order, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status == status {
		return order, nil
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = s.now().UTC()

	if err := s.orders.Save(order); err != nil {
		return domain.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Version++

	s.enqueueEvent(kafka.EventTypeOrderStatusChanged, order)

	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"order_number": order.Number,
		"from":         previous,
		"to":           status,
	}).Info("order status changed")

	return order, nil
}

// Delete removes an order from the store.
func (s *OrdersService) Delete(id string) error {
	order, err := s.orders.Get(id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(id); err != nil {
		return err
	}

	s.enqueueEvent(kafka.EventTypeOrderDeleted, order)

	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"order_number": order.Number,
	}).Info("order deleted")
	return nil
}

// Stats aggregates the dashboard numbers over all orders. Revenue counts
// every order regardless of status, matching what the dashboard always
// displayed.
func (s *OrdersService) Stats() (OrderStats, error) {
	orders, err := s.orders.List(0)
	if err != nil {
		return OrderStats{}, fmt.Errorf("failed to load orders for stats: %w", err)
	}

	var stats OrderStats
	customers := make(map[string]struct{})
	for _, order := range orders {
		stats.RevenueMinor += order.TotalMinor
		stats.OrderCount++
		if order.Status == domain.OrderStatusPending {
			stats.PendingOrders++
		}
		customers[order.Customer.Email] = struct{}{}
	}
	stats.CustomerCount = len(customers)

	return stats, nil
}

func (s *OrdersService) enqueueEvent(eventType kafka.EventType, order domain.Order) {
	if s.outbox == nil {
		return
	}

	event := kafka.NewOrderEvent(
		eventType,
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
		EventType:     string(eventType),
		Payload:       payload,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("failed to enqueue order event")
	}
}
