// Package checkout turns a cart into a frozen order record and hands it to
// one of two payment variants: a Stripe-hosted session or a simulated
// in-process capture. The variant is chosen once at boot; a running process
// serves exactly one.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/northlight-prints/storefront-backend/internal/cart"
	"github.com/northlight-prints/storefront-backend/internal/catalog"
	"github.com/northlight-prints/storefront-backend/internal/pricing"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	"github.com/northlight-prints/storefront-backend/pkg/metrics"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

// Checkout outcomes for metrics labels.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "payment_failed"
)

// OrderWriter is the slice of the order repository the checkout flow needs.
type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) error
	UpdateStatusByID(ctx context.Context, id string, status enums.OrderStatus, meta map[string]any) (*models.Order, error)
}

// HistoryRecorder appends a submitted order to the client's local order
// history. Best effort: history is a convenience copy, the database record
// is authoritative.
type HistoryRecorder interface {
	Record(token string, order *models.Order) error
}

// Mailer sends the order confirmation. Failures never fail the checkout.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// SubmitInput is everything a checkout submission carries besides the cart.
type SubmitInput struct {
	Shipping  types.Address
	Billing   *types.Address
	Marketing types.Marketing
	Card      *CardDetails // simulated variant only
}

// Result is what the API returns for a submission. RedirectURL is set only
// by the hosted variant.
type Result struct {
	OrderID     string            `json:"orderId"`
	Status      enums.OrderStatus `json:"status"`
	TotalCents  int               `json:"total"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
}

// QuoteLine is one priced cart line in a quote.
type QuoteLine struct {
	LineID         string          `json:"uid"`
	ProductID      string          `json:"id"`
	Name           string          `json:"name"`
	Size           enums.PrintSize `json:"size"`
	Qty            int             `json:"qty"`
	UnitPriceCents int             `json:"unitPrice"`
	LineTotalCents int             `json:"lineTotal"`
}

// Quote prices a cart against a destination without creating anything.
type Quote struct {
	Lines         []QuoteLine `json:"lines"`
	SubtotalCents int         `json:"subtotal"`
	ShippingCents int         `json:"shipping"`
	Tax           TaxEstimate `json:"tax"`
	TaxCents      int         `json:"taxCents"`
	TotalCents    int         `json:"total"`
}

// ServiceParams wires the shared checkout dependencies.
type ServiceParams struct {
	Catalog *catalog.Catalog
	Orders  OrderWriter
	History HistoryRecorder
	Mailer  Mailer
	Logg    *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Service holds the variant-independent half of checkout: quoting, order
// assembly, and persistence. The variants embed it.
type Service struct {
	catalog *catalog.Catalog
	orders  OrderWriter
	history HistoryRecorder
	mailer  Mailer
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewService validates and wires the shared checkout core.
func NewService(params ServiceParams) (*Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("checkout service requires a catalog")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("checkout service requires an order writer")
	}
	if params.Logg == nil {
		return nil, fmt.Errorf("checkout service requires a logger")
	}
	return &Service{
		catalog: params.Catalog,
		orders:  params.Orders,
		history: params.History,
		mailer:  params.Mailer,
		logg:    params.Logg,
		metrics: params.Metrics,
	}, nil
}

// Quote prices the cart for the given destination. Safe on an empty cart.
func (s *Service) Quote(items []cart.LineItem, country, region string) Quote {
	quote := Quote{Lines: make([]QuoteLine, 0, len(items))}

	for _, item := range items {
		name := item.ProductID
		if product, ok := s.catalog.ByID(item.ProductID); ok {
			name = product.Name
		}
		unit := pricing.PriceFor(item.Size)
		line := QuoteLine{
			LineID:         item.LineID,
			ProductID:      item.ProductID,
			Name:           name,
			Size:           item.Size,
			Qty:            item.Qty,
			UnitPriceCents: unit,
			LineTotalCents: unit * item.Qty,
		}
		quote.Lines = append(quote.Lines, line)
		quote.SubtotalCents += line.LineTotalCents
	}

	quote.ShippingCents = EstimateShipping(quote.SubtotalCents)
	quote.Tax = EstimateTaxRate(country, region)
	quote.TaxCents = quote.Tax.TaxCents(quote.SubtotalCents)
	quote.TotalCents = quote.SubtotalCents + quote.ShippingCents + quote.TaxCents
	return quote
}

// buildOrder validates the submission and assembles the frozen order record.
// Nothing is persisted here.
func (s *Service) buildOrder(items []cart.LineItem, input SubmitInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, errors.New(errors.CodeValidation, "cart is empty")
	}
	if err := shippingError(ValidateShipping(input.Shipping)); err != nil {
		return nil, err
	}
	for _, item := range items {
		if _, ok := s.catalog.ByID(item.ProductID); !ok {
			return nil, errors.New(errors.CodeValidation,
				fmt.Sprintf("unknown product %q in cart", item.ProductID))
		}
	}

	quote := s.Quote(items, input.Shipping.Country, input.Shipping.Region)

	order := &models.Order{
		ID:              newOrderID(),
		CustomerEmail:   strings.TrimSpace(input.Shipping.Email),
		CustomerName:    strings.TrimSpace(input.Shipping.Name),
		ShippingAddress: input.Shipping,
		BillingAddress:  input.Billing,
		SubtotalCents:   quote.SubtotalCents,
		ShippingCents:   quote.ShippingCents,
		TaxCents:        quote.TaxCents,
		TotalCents:      quote.TotalCents,
		Status:          enums.OrderStatusPending,
		Marketing:       input.Marketing,
	}
	for _, line := range quote.Lines {
		order.Items = append(order.Items, models.OrderLineItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      line.ProductID,
			Name:           line.Name,
			Size:           line.Size,
			Qty:            line.Qty,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	return order, nil
}

// persistOrder writes the record and mirrors it into the client's local
// history.
func (s *Service) persistOrder(ctx context.Context, token string, order *models.Order) error {
	if err := s.orders.Create(ctx, order); err != nil {
		// The client's local history still holds the order, so checkout
		// proceeds; webhook-driven status updates will miss it.
		s.logg.Warn(ctx, fmt.Sprintf("order %s insert failed, local history only: %v", order.ID, err))
	}
	s.recordHistory(ctx, token, order)
	s.metrics.ObserveOrder(order.TotalCents)
	return nil
}

func (s *Service) recordHistory(ctx context.Context, token string, order *models.Order) {
	if s.history == nil || token == "" {
		return
	}
	if err := s.history.Record(token, order); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("order history write failed: %v", err))
	}
}

// sendConfirmation emails the receipt. Failures are logged and counted, the
// order stands either way.
func (s *Service) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
		s.metrics.IncEmailFailure()
		s.logg.Error(ctx, "order confirmation email failed", err)
	}
}

func newOrderID() string {
	return "ord_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
