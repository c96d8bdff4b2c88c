package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

// OrderLineItem captures the snapshot of each item within an order: the
// product's name and unit price as they were at submission time.
type OrderLineItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        string          `gorm:"column:order_id;not null;index"`
	ProductID      string          `gorm:"column:product_id;not null"`
	Name           string          `gorm:"column:name;not null"`
	Size           enums.PrintSize `gorm:"column:size;not null"`
	Qty            int             `gorm:"column:qty;not null"`
	UnitPriceCents int             `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
