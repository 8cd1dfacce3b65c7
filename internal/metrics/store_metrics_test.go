package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func newTestMetrics() *StoreMetrics {
	// Fresh registry per test so counters start from zero.
	return newStoreMetricsWithRegisterer(prometheus.NewRegistry())
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := g.Write(metric); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	return metric.GetGauge().GetValue()
}

func TestNewStoreMetrics(t *testing.T) {
	m := newTestMetrics()

	if m.cartOperations == nil {
		t.Error("cartOperations should not be nil")
	}
	if m.snapshotFailures == nil {
		t.Error("snapshotFailures should not be nil")
	}
	if m.checkoutSubmitted == nil {
		t.Error("checkoutSubmitted should not be nil")
	}
	if m.checkoutDuration == nil {
		t.Error("checkoutDuration should not be nil")
	}
	if m.orderTotal == nil {
		t.Error("orderTotal should not be nil")
	}
}

func TestStoreMetrics_DoubleRegistrationReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := newStoreMetricsWithRegisterer(registry)
	second := newStoreMetricsWithRegisterer(registry)

	first.RecordCheckoutRejected()
	second.RecordCheckoutRejected()

	if got := counterValue(t, first.checkoutRejected); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestStoreMetrics_CartOperations(t *testing.T) {
	m := newTestMetrics()

	m.RecordCartOperation("add")
	m.RecordCartOperation("add")
	m.RecordCartOperation("remove")

	metric := &dto.Metric{}
	if err := m.cartOperations.WithLabelValues("add").Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 add operations, got %v", got)
	}
}

func TestStoreMetrics_CheckoutLifecycle(t *testing.T) {
	m := newTestMetrics()

	m.CheckoutStarted()
	if got := gaugeValue(t, m.activeCheckouts); got != 1 {
		t.Fatalf("expected 1 active checkout, got %v", got)
	}

	m.RecordCheckoutSubmitted(4700)
	m.RecordCheckoutDuration(25 * time.Millisecond)
	m.CheckoutFinished()

	if got := counterValue(t, m.checkoutSubmitted); got != 1 {
		t.Fatalf("expected 1 submitted checkout, got %v", got)
	}
	if got := gaugeValue(t, m.activeCheckouts); got != 0 {
		t.Fatalf("expected 0 active checkouts, got %v", got)
	}
}
