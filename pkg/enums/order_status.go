package enums

import "fmt"

// OrderStatus tracks the lifecycle of a storefront order. Transitions are
// one-directional: an order leaves pending exactly once and never returns.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusPaid          OrderStatus = "paid"
	OrderStatusCompleted     OrderStatus = "completed"
	OrderStatusExpired       OrderStatus = "expired"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"
	OrderStatusFailed        OrderStatus = "failed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusCompleted,
	OrderStatusExpired,
	OrderStatusPaymentFailed,
	OrderStatusFailed,
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {
		OrderStatusPaid,
		OrderStatusCompleted,
		OrderStatusExpired,
		OrderStatusPaymentFailed,
		OrderStatusFailed,
	},
	OrderStatusPaid: {OrderStatusCompleted},
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether moving to target is allowed from s.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	if s == target {
		return false
	}
	for _, candidate := range orderStatusTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
