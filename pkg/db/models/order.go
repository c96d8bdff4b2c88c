package models

import (
	"time"

	"github.com/northlight-prints/storefront-backend/pkg/enums"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

// Order is the frozen record written at checkout submission. Totals and item
// snapshots are captured once and never recomputed; only the status fields
// move afterwards, and only forward.
type Order struct {
	ID                    string            `gorm:"column:id;primaryKey"`
	CustomerEmail         string            `gorm:"column:customer_email;not null"`
	CustomerName          string            `gorm:"column:customer_name;not null"`
	ShippingAddress       types.Address     `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	BillingAddress        *types.Address    `gorm:"column:billing_address;type:jsonb;serializer:json"`
	SubtotalCents         int               `gorm:"column:subtotal_cents;not null"`
	ShippingCents         int               `gorm:"column:shipping_cents;not null"`
	TaxCents              int               `gorm:"column:tax_cents;not null"`
	TotalCents            int               `gorm:"column:total_cents;not null"`
	Status                enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	StripePaymentIntentID *string           `gorm:"column:stripe_payment_intent_id"`
	Payment               *PaymentRecord    `gorm:"column:payment;type:jsonb;serializer:json"`
	Marketing             types.Marketing   `gorm:"column:marketing;type:jsonb;serializer:json"`
	Metadata              *types.JSONMap    `gorm:"column:metadata;type:jsonb;serializer:json"`
	Items                 []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// PaymentRecord is the synthetic capture written by the simulated checkout
// variant. Never holds a full card number.
type PaymentRecord struct {
	Brand         enums.CardBrand `json:"brand"`
	Last4         string          `json:"last4"`
	TransactionID string          `json:"transaction_id"`
	CapturedAt    time.Time       `json:"captured_at"`
}
