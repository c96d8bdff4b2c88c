package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/northlight-prints/storefront-backend/internal/cart"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
)

// SimulatedCheckout captures payment in-process: the card is validated,
// reduced to brand+last4, and the order is written already paid. No money
// moves and no webhook follows.
type SimulatedCheckout struct {
	*Service
	now func() time.Time
}

// NewSimulatedCheckout wires the simulated variant.
func NewSimulatedCheckout(svc *Service) (*SimulatedCheckout, error) {
	if svc == nil {
		return nil, fmt.Errorf("simulated checkout requires the checkout service")
	}
	return &SimulatedCheckout{Service: svc, now: time.Now}, nil
}

// Submit validates card and shipping, writes the paid order with a synthetic
// payment record, and sends the confirmation email best effort.
func (s *SimulatedCheckout) Submit(ctx context.Context, token string, items []cart.LineItem, input SubmitInput) (*Result, error) {
	if input.Card == nil {
		s.metrics.IncCheckout(outcomeRejected)
		return nil, errors.New(errors.CodeValidation, "card details are required")
	}
	if fieldErrors := ValidateCard(*input.Card, s.now()); len(fieldErrors) > 0 {
		s.metrics.IncCheckout(outcomeRejected)
		return nil, errors.New(errors.CodeValidation, "card details are invalid").
			WithDetails(fieldErrors)
	}
	if input.Billing != nil {
		if fieldErrors := ValidateBilling(*input.Billing); len(fieldErrors) > 0 {
			s.metrics.IncCheckout(outcomeRejected)
			return nil, errors.New(errors.CodeValidation, "billing details are incomplete").
				WithDetails(fieldErrors)
		}
	}

	order, err := s.buildOrder(items, input)
	if err != nil {
		s.metrics.IncCheckout(outcomeRejected)
		return nil, err
	}

	order.Status = enums.OrderStatusPaid
	order.Payment = &models.PaymentRecord{
		Brand:         DetectBrand(input.Card.Number),
		Last4:         Last4(input.Card.Number),
		TransactionID: "sim_" + uuid.NewString(),
		CapturedAt:    s.now().UTC(),
	}

	ctx = s.logg.WithOrderID(ctx, order.ID)
	if err := s.persistOrder(ctx, token, order); err != nil {
		s.metrics.IncCheckout(outcomeRejected)
		return nil, err
	}

	s.logg.Info(ctx, fmt.Sprintf("order %s captured (%s •••• %s)",
		order.ID, order.Payment.Brand, order.Payment.Last4))
	s.metrics.IncCheckout(outcomeAccepted)
	s.sendConfirmation(ctx, order)

	return &Result{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
	}, nil
}
