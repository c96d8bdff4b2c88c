// Package stripewebhook applies Stripe checkout events to order records.
// Session events locate the order through the orderId metadata stamped at
// session creation; payment-intent events locate it through the stored
// intent id. Events that reference nothing we know are logged and dropped,
// never bounced back to Stripe.
package stripewebhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v84"

	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	"github.com/northlight-prints/storefront-backend/pkg/metrics"
)

// orderMetadataKey is the session metadata field carrying our order id.
const orderMetadataKey = "orderId"

type orderService interface {
	CompleteFromSession(ctx context.Context, orderID, paymentIntentID string) (*models.Order, error)
	UpdateStatusByID(ctx context.Context, id string, status enums.OrderStatus, meta map[string]any) (*models.Order, error)
	UpdateStatusByPaymentIntent(ctx context.Context, intentID string, status enums.OrderStatus, meta map[string]any) (*models.Order, error)
}

// ServiceParams wires the webhook service dependencies.
type ServiceParams struct {
	Orders  orderService
	Logg    *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

type Service struct {
	orders  orderService
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Orders == nil {
		return nil, errors.New(errors.CodeInternal, "order service required")
	}
	if params.Logg == nil {
		return nil, errors.New(errors.CodeInternal, "logger required")
	}
	return &Service{
		orders:  params.Orders,
		logg:    params.Logg,
		metrics: params.Metrics,
	}, nil
}

// HandleEvent applies one verified event. Domain dead ends (unknown order,
// already-applied transition, missing metadata) are swallowed after logging:
// redelivering those events cannot produce a different outcome. Only
// infrastructure failures propagate, so the caller can release the
// idempotency mark and let Stripe retry.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return errors.New(errors.CodeValidation, "stripe event data required")
	}

	s.metrics.IncWebhookEvent(string(event.Type))

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		return s.handleSession(ctx, event, enums.OrderStatusCompleted)
	case stripe.EventTypeCheckoutSessionExpired:
		return s.handleSession(ctx, event, enums.OrderStatusExpired)
	case stripe.EventTypePaymentIntentPaymentFailed:
		return s.handlePaymentFailed(ctx, event)
	default:
		return nil
	}
}

func (s *Service) handleSession(ctx context.Context, event *stripe.Event, status enums.OrderStatus) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("event %s: undecodable checkout session, dropping", event.ID))
		return nil
	}

	orderID := sess.Metadata[orderMetadataKey]
	if orderID == "" {
		s.logg.Warn(ctx, fmt.Sprintf("event %s: session %s carries no order id, dropping", event.ID, sess.ID))
		return nil
	}
	ctx = s.logg.WithOrderID(ctx, orderID)

	var err error
	if status == enums.OrderStatusCompleted {
		intentID := ""
		if sess.PaymentIntent != nil {
			intentID = sess.PaymentIntent.ID
		}
		_, err = s.orders.CompleteFromSession(ctx, orderID, intentID)
	} else {
		_, err = s.orders.UpdateStatusByID(ctx, orderID, status, nil)
	}
	return s.settle(ctx, event.ID, err)
}

func (s *Service) handlePaymentFailed(ctx context.Context, event *stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("event %s: undecodable payment intent, dropping", event.ID))
		return nil
	}
	if intent.ID == "" {
		s.logg.Warn(ctx, fmt.Sprintf("event %s: payment intent without id, dropping", event.ID))
		return nil
	}

	meta := map[string]any{}
	if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
		meta["error"] = intent.LastPaymentError.Msg
	}

	_, err := s.orders.UpdateStatusByPaymentIntent(ctx, intent.ID, enums.OrderStatusFailed, meta)
	return s.settle(ctx, event.ID, err)
}

// settle decides whether an order-update error is worth a retry. Not-found
// and state-conflict outcomes are final for this event.
func (s *Service) settle(ctx context.Context, eventID string, err error) error {
	if err == nil {
		return nil
	}
	if appErr := errors.As(err); appErr != nil {
		switch appErr.Code() {
		case errors.CodeNotFound, errors.CodeStateConflict:
			s.logg.Warn(ctx, fmt.Sprintf("event %s: %s, dropping", eventID, appErr.Message()))
			return nil
		}
	}
	return err
}
