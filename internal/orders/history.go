package orders

import (
	"time"

	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
)

// historyLimit caps the per-client order history document.
const historyLimit = 50

// HistoryEntry is the client-side summary of a submitted order, newest
// first. The database record is authoritative; this copy exists so the
// storefront can show "your orders" without an account.
type HistoryEntry struct {
	ID         string        `json:"id"`
	Status     string        `json:"status"`
	TotalCents int           `json:"total"`
	CreatedAt  time.Time     `json:"createdAt"`
	Items      []HistoryItem `json:"items"`
}

type HistoryItem struct {
	ProductID      string `json:"id"`
	Name           string `json:"name"`
	Size           string `json:"size"`
	Qty            int    `json:"qty"`
	UnitPriceCents int    `json:"unitPrice"`
}

type historyDoc struct {
	Orders []HistoryEntry `json:"orders"`
}

// HistoryAdapter persists history documents per client namespace.
type HistoryAdapter interface {
	Get(namespace, key string, dest any) error
	Put(namespace, key string, value any) error
}

// History mirrors submitted orders into each client's local document store.
type History struct {
	adapter HistoryAdapter
}

func NewHistory(adapter HistoryAdapter) *History {
	return &History{adapter: adapter}
}

// Record prepends the order to the client's history, trimming to the cap.
// An unreadable existing document starts over rather than failing.
func (h *History) Record(token string, order *models.Order) error {
	if h.adapter == nil || token == "" || order == nil {
		return nil
	}

	var doc historyDoc
	_ = h.adapter.Get(token, localstore.KeyOrders, &doc)

	entry := HistoryEntry{
		ID:         order.ID,
		Status:     order.Status.String(),
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
		Items:      make([]HistoryItem, 0, len(order.Items)),
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	for _, item := range order.Items {
		entry.Items = append(entry.Items, HistoryItem{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Size:           item.Size.String(),
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	doc.Orders = append([]HistoryEntry{entry}, doc.Orders...)
	if len(doc.Orders) > historyLimit {
		doc.Orders = doc.Orders[:historyLimit]
	}

	return h.adapter.Put(token, localstore.KeyOrders, doc)
}

// List returns the client's history, newest first. Missing documents read
// as empty.
func (h *History) List(token string) []HistoryEntry {
	if h.adapter == nil || token == "" {
		return nil
	}
	var doc historyDoc
	if err := h.adapter.Get(token, localstore.KeyOrders, &doc); err != nil {
		return nil
	}
	return doc.Orders
}
