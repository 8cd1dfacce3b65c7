package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics holds the storefront's cart and checkout instrumentation.
type StoreMetrics struct {
	// Cart mutations grouped by operation (add/remove/update/clear).
	cartOperations *prometheus.CounterVec
	// Snapshot persistence failures; these are swallowed, so the counter is
	// the only place they surface besides logs.
	snapshotFailures prometheus.Counter

	// Checkout outcomes.
	checkoutSubmitted prometheus.Counter
	checkoutRejected  prometheus.Counter
	checkoutFailed    prometheus.Counter
	checkoutDuration  prometheus.Histogram

	// Order value distribution in minor currency units.
	orderTotal prometheus.Histogram

	// Gauge for checkouts currently in flight.
	activeCheckouts prometheus.Gauge
}

// NewStoreMetrics registers the metrics on the default registerer.
func NewStoreMetrics() *StoreMetrics {
	return newStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		cartOperations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "store_cart_operations_total",
			Help: "Total number of cart mutations grouped by operation",
		}, []string{"operation"}),
		snapshotFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "store_cart_snapshot_failures_total",
			Help: "Total number of cart snapshot persistence failures",
		}),
		checkoutSubmitted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "store_checkout_submitted_total",
			Help: "Total number of orders submitted successfully",
		}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "store_checkout_rejected_total",
			Help: "Total number of checkouts rejected by validation",
		}),
		checkoutFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "store_checkout_failed_total",
			Help: "Total number of checkouts that failed at the order store",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "store_checkout_duration_seconds",
			Help:    "Duration of checkout submissions in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		orderTotal: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "store_order_total_minor",
			Help:    "Distribution of order totals in minor currency units",
			Buckets: []float64{1000, 2500, 5000, 10000, 15000, 25000, 50000, 100000},
		}),
		activeCheckouts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "store_active_checkouts",
			Help: "Number of checkout submissions currently in flight",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCartOperation counts one cart mutation by name.
func (m *StoreMetrics) RecordCartOperation(operation string) {
	m.cartOperations.WithLabelValues(operation).Inc()
}

// RecordSnapshotFailure counts a swallowed snapshot persistence failure.
func (m *StoreMetrics) RecordSnapshotFailure() {
	m.snapshotFailures.Inc()
}

// RecordCheckoutSubmitted counts a successfully placed order and its total.
func (m *StoreMetrics) RecordCheckoutSubmitted(totalMinor int64) {
	m.checkoutSubmitted.Inc()
	m.orderTotal.Observe(float64(totalMinor))
}

// RecordCheckoutRejected counts a validation rejection.
func (m *StoreMetrics) RecordCheckoutRejected() {
	m.checkoutRejected.Inc()
}

// RecordCheckoutFailed counts a submission that failed downstream.
func (m *StoreMetrics) RecordCheckoutFailed() {
	m.checkoutFailed.Inc()
}

// RecordCheckoutDuration records how long a submission took.
func (m *StoreMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// CheckoutStarted increments the in-flight gauge.
func (m *StoreMetrics) CheckoutStarted() {
	m.activeCheckouts.Inc()
}

// CheckoutFinished decrements the in-flight gauge.
func (m *StoreMetrics) CheckoutFinished() {
	m.activeCheckouts.Dec()
}
