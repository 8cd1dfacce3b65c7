package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
)

func TestProducer_PublishEvent(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndSucceed()

	event := NewOrderEvent(
		EventTypeOrderCreated,
		"order-123",
		"KTB-260828-0001",
		"amina@example.tn",
		"pending",
		4950,
		"TND",
	)

	err := producer.PublishEvent(TopicOrderEvents, "order-123", event)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)

	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	event := NewOrderEvent(
		EventTypeOrderStatusChanged,
		"order-123",
		"KTB-260828-0001",
		"amina@example.tn",
		"shipped",
		4950,
		"TND",
	)

	err := producer.PublishEvent(TopicOrderEvents, "order-123", event)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderEvent(t *testing.T) {
	event := NewOrderEvent(EventTypeOrderCreated, "order-123", "KTB-260828-0007", "youssef@example.tn", "pending", 15000, "TND")

	if event.EventType != EventTypeOrderCreated {
		t.Errorf("expected event type %s, got %s", EventTypeOrderCreated, event.EventType)
	}

	if event.OrderID != "order-123" {
		t.Errorf("expected order id order-123, got %s", event.OrderID)
	}

	if event.OrderNumber != "KTB-260828-0007" {
		t.Errorf("expected order number KTB-260828-0007, got %s", event.OrderNumber)
	}

	if event.CustomerEmail != "youssef@example.tn" {
		t.Errorf("expected customer email youssef@example.tn, got %s", event.CustomerEmail)
	}

	if event.Status != "pending" {
		t.Errorf("expected status pending, got %s", event.Status)
	}

	if event.TotalMinor != 15000 {
		t.Errorf("expected total 15000, got %d", event.TotalMinor)
	}

	if event.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}

	if time.Since(event.Timestamp) > time.Second {
		t.Error("timestamp should be close to current time")
	}
}
