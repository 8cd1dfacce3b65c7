package kafka

import "time"

// EventType names an event published by the storefront.
type EventType string

const (
	// EventTypeOrderCreated: a new order was placed at checkout.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeOrderStatusChanged: an admin moved the order through the
	// workflow.
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	// EventTypeOrderDeleted: an admin removed the order.
	EventTypeOrderDeleted EventType = "order.deleted"
)

// Kafka topics.
const (
	TopicOrderEvents = "store.order.events"
)

// OrderEvent is the payload published for order lifecycle events.
type OrderEvent struct {
	EventType     EventType `json:"event_type"`
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	TotalMinor    int64     `json:"total_minor"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewOrderEvent builds an order event stamped with the current time.
func NewOrderEvent(eventType EventType, orderID, number, email, status string, totalMinor int64, currency string) *OrderEvent {
	return &OrderEvent{
		EventType:     eventType,
		OrderID:       orderID,
		OrderNumber:   number,
		CustomerEmail: email,
		Status:        status,
		TotalMinor:    totalMinor,
		Currency:      currency,
		Timestamp:     time.Now().UTC(),
	}
}
