package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontMetricsRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefrontMetrics(reg)

	m.IncCheckout("confirmed")
	m.IncCheckout("confirmed")
	m.IncCheckout("")
	m.ObserveOrder(2495)
	m.IncWebhookEvent("checkout.session.completed")
	m.IncEmailFailure()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	attempts := byName["checkout_attempts_total"]
	if attempts == nil {
		t.Fatal("checkout_attempts_total not registered")
	}
	total := 0.0
	for _, metric := range attempts.GetMetric() {
		total += metric.GetCounter().GetValue()
		for _, label := range metric.GetLabel() {
			if label.GetValue() == "" {
				t.Fatal("empty outcome label should be normalized")
			}
		}
	}
	if total != 3 {
		t.Fatalf("expected 3 checkout attempts, got %v", total)
	}

	created := byName["orders_created_total"]
	if created == nil || created.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatal("expected one created order")
	}

	if byName["webhook_events_total"] == nil {
		t.Fatal("webhook_events_total not registered")
	}
}

func TestStorefrontMetricsNilSafe(t *testing.T) {
	var m *StorefrontMetrics
	m.IncCheckout("confirmed")
	m.ObserveOrder(100)
	m.IncWebhookEvent("x")
	m.IncEmailFailure()

	empty := NewStorefrontMetrics(nil)
	empty.IncCheckout("confirmed")
	empty.ObserveOrder(100)
}
