package cart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

// LineItem is one cart entry. Multiple lines may reference the same product
// with the same or different sizes; lines are addressed by LineID only.
type LineItem struct {
	LineID    string          `json:"uid"`
	ProductID string          `json:"id"`
	Qty       int             `json:"qty"`
	Size      enums.PrintSize `json:"size"`
}

// SizeRecommender infers a default size for a product when the caller adds
// without choosing one.
type SizeRecommender interface {
	RecommendedSize(productID string) enums.PrintSize
}

// Adapter persists the full line-item list after every mutation.
type Adapter interface {
	Get(namespace, key string, dest any) error
	Put(namespace, key string, value any) error
}

// persistedCart is the document shape under the cart:v1 key. qty is a
// pointer so legacy documents without it can be migrated to 1.
type persistedCart struct {
	Items []persistedItem `json:"items"`
}

type persistedItem struct {
	UID  string `json:"uid,omitempty"`
	ID   string `json:"id"`
	Qty  *int   `json:"qty,omitempty"`
	Size string `json:"size,omitempty"`
}

// Store holds one client's cart. Every command persists synchronously; the
// in-memory list is authoritative for the session, so persistence errors are
// swallowed rather than surfaced.
type Store struct {
	token       string
	adapter     Adapter
	recommender SizeRecommender

	mu    sync.Mutex
	items []LineItem
}

// Add appends qty single-quantity lines for the product. No merging: adding
// the same product+size twice yields two lines. Returns the new lines.
func (s *Store) Add(productID string, qty int, size string) []LineItem {
	if qty < 1 {
		qty = 1
	}

	resolved := s.resolveSize(productID, size)

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]LineItem, 0, qty)
	for i := 0; i < qty; i++ {
		line := LineItem{
			LineID:    uuid.NewString(),
			ProductID: productID,
			Qty:       1,
			Size:      resolved,
		}
		s.items = append(s.items, line)
		added = append(added, line)
	}

	s.persistLocked()
	return added
}

// Remove drops the line with the given id. Unknown ids are a no-op.
func (s *Store) Remove(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.LineID != lineID {
			kept = append(kept, item)
		}
	}
	s.items = kept

	s.persistLocked()
}

// Update adjusts quantity and/or size on an existing line. Nil fields keep
// the current value; quantity floors at 1.
func (s *Store) Update(lineID string, qty *int, size *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].LineID != lineID {
			continue
		}
		if qty != nil {
			next := *qty
			if next < 1 {
				next = 1
			}
			s.items[i].Qty = next
		}
		if size != nil {
			s.items[i].Size = enums.NormalizePrintSize(*size)
		}
		break
	}

	s.persistLocked()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persistLocked()
}

// Items returns a snapshot of the current lines.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) resolveSize(productID, size string) enums.PrintSize {
	if size != "" {
		return enums.NormalizePrintSize(size)
	}
	if s.recommender != nil {
		return s.recommender.RecommendedSize(productID)
	}
	return enums.PrintSizeDefault
}

// persistLocked writes the full list through the adapter. Errors are
// swallowed: memory stays authoritative for the session.
func (s *Store) persistLocked() {
	if s.adapter == nil {
		return
	}

	doc := persistedCart{Items: make([]persistedItem, 0, len(s.items))}
	for _, item := range s.items {
		qty := item.Qty
		doc.Items = append(doc.Items, persistedItem{
			UID:  item.LineID,
			ID:   item.ProductID,
			Qty:  &qty,
			Size: item.Size.String(),
		})
	}

	_ = s.adapter.Put(s.token, localstore.KeyCart, doc)
}
