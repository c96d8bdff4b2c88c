package cart

import (
	"github.com/google/uuid"

	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

// Manager rehydrates per-client cart stores from the persistence adapter.
type Manager struct {
	adapter     Adapter
	recommender SizeRecommender
}

// NewManager wires the cart manager. The recommender may be nil; size
// inference then falls back to the default size.
func NewManager(adapter Adapter, recommender SizeRecommender) *Manager {
	return &Manager{adapter: adapter, recommender: recommender}
}

// Load rehydrates the cart for the given client token, migrating legacy
// documents on the way in: missing line ids are generated, missing
// quantities become 1, and unknown sizes correct to the default. Read
// failures yield an empty cart.
func (m *Manager) Load(token string) *Store {
	store := &Store{
		token:       token,
		adapter:     m.adapter,
		recommender: m.recommender,
	}

	if m.adapter == nil {
		return store
	}

	var doc persistedCart
	if err := m.adapter.Get(token, localstore.KeyCart, &doc); err != nil {
		return store
	}

	for _, raw := range doc.Items {
		if raw.ID == "" {
			continue
		}
		lineID := raw.UID
		if lineID == "" {
			lineID = uuid.NewString()
		}
		qty := 1
		if raw.Qty != nil && *raw.Qty >= 1 {
			qty = *raw.Qty
		}
		store.items = append(store.items, LineItem{
			LineID:    lineID,
			ProductID: raw.ID,
			Qty:       qty,
			Size:      enums.NormalizePrintSize(raw.Size),
		})
	}

	return store
}
