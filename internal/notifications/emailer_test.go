package notifications

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-prints/storefront-backend/pkg/config"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:            "ord_mail1",
		CustomerEmail: "avery@example.com",
		CustomerName:  "Avery Stone",
		ShippingAddress: types.Address{
			Name:     "Avery Stone",
			Address1: "12 Gallery Row",
			City:     "Portland",
			Region:   "OR",
			Postal:   "97201",
			Country:  "US",
		},
		SubtotalCents: 3000,
		ShippingCents: 995,
		TaxCents:      180,
		TotalCents:    4175,
		Status:        enums.OrderStatusPaid,
		Payment: &models.PaymentRecord{
			Brand: enums.CardBrandVisa,
			Last4: "4242",
		},
		Items: []models.OrderLineItem{
			{ProductID: "print-1", Name: "Dune Light", Size: enums.PrintSize8x10, Qty: 2, UnitPriceCents: 1500},
		},
		CreatedAt: time.Date(2026, time.February, 1, 9, 30, 0, 0, time.UTC),
	}
}

func testEmailConfig(endpoint string) config.EmailConfig {
	return config.EmailConfig{
		Endpoint:   endpoint,
		ServiceID:  "svc_1",
		TemplateID: "tmpl_1",
		PublicKey:  "pk_1",
		ToName:     "Studio",
		ToEmail:    "orders@studio.test",
		FromName:   "Photography Order System",
		Timeout:    2 * time.Second,
	}
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestSendOrderConfirmationPostsTemplate(t *testing.T) {
	var got sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	emailer := NewEmailer(testEmailConfig(server.URL), testLogger())
	require.NotNil(t, emailer)

	require.NoError(t, emailer.SendOrderConfirmation(context.Background(), testOrder()))

	assert.Equal(t, "svc_1", got.ServiceID)
	assert.Equal(t, "tmpl_1", got.TemplateID)
	assert.Equal(t, "pk_1", got.UserID)
	assert.Equal(t, "orders@studio.test", got.TemplateParams.ToEmail)
	assert.Equal(t, "avery@example.com", got.TemplateParams.ReplyTo)
	assert.Contains(t, got.TemplateParams.Subject, "ord_mail1")
	assert.Contains(t, got.TemplateParams.Message, "2x Dune Light (8x10)")
	assert.Contains(t, got.TemplateParams.Message, "Total: $41.75")
}

func TestSendOrderConfirmationRelayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	emailer := NewEmailer(testEmailConfig(server.URL), testLogger())
	err := emailer.SendOrderConfirmation(context.Background(), testOrder())

	appErr := errors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.CodeDependency, appErr.Code())
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewEmailerWithoutEndpointIsDisabled(t *testing.T) {
	emailer := NewEmailer(config.EmailConfig{}, testLogger())
	assert.Nil(t, emailer)

	// nil receiver is a safe no-op
	require.NoError(t, emailer.SendOrderConfirmation(context.Background(), testOrder()))
}

func TestFormatOrderSummary(t *testing.T) {
	summary := FormatOrderSummary(testOrder())

	for _, want := range []string{
		"Order ord_mail1",
		"Avery Stone <avery@example.com>",
		"Subtotal: $30.00",
		"Shipping: $9.95",
		"Tax: $1.80",
		"Total: $41.75",
		"Portland, OR 97201",
		"Paid with visa ending 4242",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
