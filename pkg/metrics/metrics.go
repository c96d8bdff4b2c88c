package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records checkout and webhook activity.
type StorefrontMetrics struct {
	checkoutAttempts *prometheus.CounterVec
	ordersCreated    prometheus.Counter
	orderTotalCents  prometheus.Histogram
	webhookEvents    *prometheus.CounterVec
	emailFailures    prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout submissions by terminal outcome.",
	}, []string{"outcome"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted at checkout submission.",
	})
	totals := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_total_cents",
		Help:    "Distribution of frozen order totals in cents.",
		Buckets: prometheus.ExponentialBuckets(500, 2, 10),
	})
	webhooks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Payment webhook events by type.",
	}, []string{"type"})
	emails := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_email_failures_total",
		Help: "Best-effort order notification emails that failed to send.",
	})
	reg.MustRegister(attempts, created, totals, webhooks, emails)
	return &StorefrontMetrics{
		checkoutAttempts: attempts,
		ordersCreated:    created,
		orderTotalCents:  totals,
		webhookEvents:    webhooks,
		emailFailures:    emails,
	}
}

// IncCheckout counts a checkout submission reaching the named outcome.
func (m *StorefrontMetrics) IncCheckout(outcome string) {
	if m == nil || m.checkoutAttempts == nil {
		return
	}
	m.checkoutAttempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveOrder records a persisted order and its frozen total.
func (m *StorefrontMetrics) ObserveOrder(totalCents int) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
	m.orderTotalCents.Observe(float64(totalCents))
}

// IncWebhookEvent counts a received webhook event by type.
func (m *StorefrontMetrics) IncWebhookEvent(eventType string) {
	if m == nil || m.webhookEvents == nil {
		return
	}
	m.webhookEvents.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncEmailFailure counts a failed best-effort notification email.
func (m *StorefrontMetrics) IncEmailFailure() {
	if m == nil || m.emailFailures == nil {
		return
	}
	m.emailFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
