// Package notifications sends the operator-facing order emails through an
// EmailJS-style HTTP relay. Sending is always best effort: a lost email
// never fails or blocks the order it describes.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/northlight-prints/storefront-backend/pkg/config"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	"github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

// templateParams is the flat field set the relay template expects.
type templateParams struct {
	ToName    string `json:"to_name"`
	ToEmail   string `json:"to_email"`
	FromName  string `json:"from_name"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ReplyTo   string `json:"reply_to,omitempty"`
	OrderID   string `json:"order_id"`
	OrderDate string `json:"order_date"`
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

// Emailer posts order notifications to the configured relay endpoint.
type Emailer struct {
	cfg    config.EmailConfig
	client *http.Client
	logg   *logger.Logger
}

// NewEmailer wires the relay sender. Returns nil when no endpoint is
// configured; callers treat a nil Emailer as notifications-off.
func NewEmailer(cfg config.EmailConfig, logg *logger.Logger) *Emailer {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil
	}
	return &Emailer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logg:   logg,
	}
}

// SendOrderConfirmation posts the order summary to the relay.
func (e *Emailer) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if e == nil {
		return nil
	}
	if order == nil {
		return errors.New(errors.CodeValidation, "order is required")
	}

	params := templateParams{
		ToName:    e.cfg.ToName,
		ToEmail:   e.cfg.ToEmail,
		FromName:  e.cfg.FromName,
		Subject:   fmt.Sprintf("New print order %s", order.ID),
		Message:   FormatOrderSummary(order),
		ReplyTo:   order.CustomerEmail,
		OrderID:   order.ID,
		OrderDate: order.CreatedAt.Format("2006-01-02 15:04 MST"),
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encode email request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "build email request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "send email")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(errors.CodeDependency,
			fmt.Sprintf("email relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	e.logg.Info(ctx, fmt.Sprintf("order %s notification sent", order.ID))
	return nil
}

// FormatOrderSummary renders the plain-text body the relay template embeds.
func FormatOrderSummary(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s <%s>\n\n", order.CustomerName, order.CustomerEmail)

	b.WriteString("Items:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s (%s) %s\n",
			item.Qty, item.Name, item.Size, formatCents(item.UnitPriceCents*item.Qty))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", formatCents(order.SubtotalCents))
	fmt.Fprintf(&b, "Shipping: %s\n", formatCents(order.ShippingCents))
	fmt.Fprintf(&b, "Tax: %s\n", formatCents(order.TaxCents))
	fmt.Fprintf(&b, "Total: %s\n", formatCents(order.TotalCents))

	addr := order.ShippingAddress
	fmt.Fprintf(&b, "\nShip to:\n  %s\n  %s\n", addr.Name, addr.Address1)
	if addr.Address2 != "" {
		fmt.Fprintf(&b, "  %s\n", addr.Address2)
	}
	fmt.Fprintf(&b, "  %s, %s %s\n  %s\n", addr.City, addr.Region, addr.Postal, addr.Country)
	if addr.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", addr.Notes)
	}

	if order.Payment != nil {
		fmt.Fprintf(&b, "\nPaid with %s ending %s\n", order.Payment.Brand, order.Payment.Last4)
	}

	if order.Marketing.PromoAgree {
		b.WriteString("\nSubscribed to promotional email\n")
	}

	return b.String()
}

func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
