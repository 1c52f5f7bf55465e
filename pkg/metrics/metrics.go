package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records catalog, cart and checkout activity.
type StorefrontMetrics struct {
	loadDuration *prometheus.HistogramVec
	loadTotal    *prometheus.CounterVec
	cartOps      *prometheus.CounterVec
	checkouts    *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	loadDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog loads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	loadTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_load_total",
		Help: "Catalog load attempts by source and outcome.",
	}, []string{"source", "outcome"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"operation"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(loadDuration, loadTotal, cartOps, checkouts)
	return &StorefrontMetrics{
		loadDuration: loadDuration,
		loadTotal:    loadTotal,
		cartOps:      cartOps,
		checkouts:    checkouts,
	}
}

// ObserveLoad records one catalog load attempt.
func (m *StorefrontMetrics) ObserveLoad(source string, duration time.Duration, err error) {
	if m == nil || m.loadTotal == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.loadTotal.WithLabelValues(normalizeLabel(source), outcome).Inc()
	m.loadDuration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncCartOp increments the counter for the named cart mutation.
func (m *StorefrontMetrics) IncCartOp(operation string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncCheckout increments the checkout counter.
func (m *StorefrontMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
