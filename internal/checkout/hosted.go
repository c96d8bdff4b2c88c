package checkout

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	"github.com/northlight-prints/storefront-backend/internal/cart"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
	pkgstripe "github.com/northlight-prints/storefront-backend/pkg/stripe"
)

// SessionClient exposes the one Stripe operation the hosted variant needs,
// so the flow can be tested without the network.
type SessionClient interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type sessionClientWrapper struct{}

// NewSessionClient wraps the initialized Stripe client.
func NewSessionClient(api *pkgstripe.Client) SessionClient {
	if api == nil {
		return nil
	}
	return &sessionClientWrapper{}
}

func (w *sessionClientWrapper) Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if params != nil {
		params.Context = ctx
	}
	return session.New(params)
}

// HostedCheckout persists a pending order, opens a Stripe Checkout session
// carrying the order id in metadata, and redirects the client to Stripe.
// The order only moves off pending when the webhook arrives.
type HostedCheckout struct {
	*Service
	sessions   SessionClient
	successURL string
	cancelURL  string
}

// NewHostedCheckout wires the hosted variant.
func NewHostedCheckout(svc *Service, sessions SessionClient, successURL, cancelURL string) (*HostedCheckout, error) {
	if svc == nil {
		return nil, fmt.Errorf("hosted checkout requires the checkout service")
	}
	if sessions == nil {
		return nil, fmt.Errorf("hosted checkout requires a stripe session client")
	}
	return &HostedCheckout{
		Service:    svc,
		sessions:   sessions,
		successURL: successURL,
		cancelURL:  cancelURL,
	}, nil
}

// Submit freezes the cart into a pending order and opens the payment
// session. A session failure marks the order payment_failed and surfaces a
// retryable error naming the order.
func (h *HostedCheckout) Submit(ctx context.Context, token string, items []cart.LineItem, input SubmitInput) (*Result, error) {
	order, err := h.buildOrder(items, input)
	if err != nil {
		h.metrics.IncCheckout(outcomeRejected)
		return nil, err
	}

	ctx = h.logg.WithOrderID(ctx, order.ID)
	if err := h.persistOrder(ctx, token, order); err != nil {
		h.metrics.IncCheckout(outcomeRejected)
		return nil, err
	}

	sess, err := h.sessions.Create(ctx, h.sessionParams(order))
	if err != nil {
		h.failOrder(ctx, order, err)
		h.metrics.IncCheckout(outcomeFailed)
		return nil, errors.Wrap(errors.CodePaymentFailed, err,
			fmt.Sprintf("payment session for order %s could not be started", order.ID))
	}

	h.logg.Info(ctx, fmt.Sprintf("checkout session %s opened", sess.ID))
	h.metrics.IncCheckout(outcomeAccepted)

	return &Result{
		OrderID:     order.ID,
		Status:      order.Status,
		TotalCents:  order.TotalCents,
		RedirectURL: sess.URL,
	}, nil
}

func (h *HostedCheckout) sessionParams(order *models.Order) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(h.successURL),
		CancelURL:     stripe.String(h.cancelURL),
		CustomerEmail: stripe.String(order.CustomerEmail),
		Metadata: map[string]string{
			"orderId":      order.ID,
			"customerName": order.CustomerName,
		},
	}

	for _, item := range order.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Qty)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(item.UnitPriceCents)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("%s (%s)", item.Name, item.Size)),
				},
			},
		})
	}

	if order.ShippingCents > 0 {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(order.ShippingCents)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Shipping"),
				},
			},
		})
	}
	if order.TaxCents > 0 {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(order.TaxCents)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Estimated tax"),
				},
			},
		})
	}

	return params
}

// failOrder moves the order to payment_failed and records the cause. The
// status write is best effort: the order is already visible to the operator
// and the webhook path cannot rescue a session that never opened.
func (h *HostedCheckout) failOrder(ctx context.Context, order *models.Order, cause error) {
	meta := map[string]any{"error": cause.Error()}
	if _, err := h.orders.UpdateStatusByID(ctx, order.ID, enums.OrderStatusPaymentFailed, meta); err != nil {
		h.logg.Error(ctx, "mark order payment_failed", err)
	}
}
