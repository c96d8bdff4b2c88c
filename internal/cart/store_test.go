package cart

import (
	"errors"
	"testing"

	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

func newTestAdapter(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("localstore: %v", err)
	}
	return store
}

type flakyAdapter struct {
	inner   Adapter
	failPut bool
	failGet bool
}

func (f *flakyAdapter) Get(ns, key string, dest any) error {
	if f.failGet {
		return errors.New("read failed")
	}
	return f.inner.Get(ns, key, dest)
}

func (f *flakyAdapter) Put(ns, key string, value any) error {
	if f.failPut {
		return errors.New("write failed")
	}
	return f.inner.Put(ns, key, value)
}

type fixedRecommender struct {
	size enums.PrintSize
}

func (r fixedRecommender) RecommendedSize(string) enums.PrintSize {
	return r.size
}

func TestAddAppendsDistinctLines(t *testing.T) {
	adapter := newTestAdapter(t)
	mgr := NewManager(adapter, fixedRecommender{size: enums.PrintSize8x10})
	store := mgr.Load("client-a")

	store.Add("print-1", 1, "4x6")
	store.Add("print-1", 1, "4x6")

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].LineID == items[1].LineID {
		t.Fatal("repeated adds must produce unique line ids")
	}
}

func TestAddQtyExpandsToSingleQuantityLines(t *testing.T) {
	adapter := newTestAdapter(t)
	store := NewManager(adapter, nil).Load("client-a")

	store.Add("print-1", 3, "5x7")

	items := store.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	for _, item := range items {
		if item.Qty != 1 {
			t.Fatalf("each added line should have qty 1, got %d", item.Qty)
		}
		if item.Size != enums.PrintSize5x7 {
			t.Fatalf("unexpected size %s", item.Size)
		}
	}
}

func TestAddInfersSizeFromRecommender(t *testing.T) {
	adapter := newTestAdapter(t)
	store := NewManager(adapter, fixedRecommender{size: enums.PrintSize8x10}).Load("c")

	store.Add("print-1", 1, "")

	if got := store.Items()[0].Size; got != enums.PrintSize8x10 {
		t.Fatalf("expected recommended 8x10, got %s", got)
	}
}

func TestUpdateAndRemoveByLineID(t *testing.T) {
	adapter := newTestAdapter(t)
	store := NewManager(adapter, nil).Load("c")

	store.Add("print-1", 1, "4x6")
	store.Add("print-1", 1, "4x6")
	items := store.Items()

	qty := 4
	size := "16x20"
	store.Update(items[0].LineID, &qty, &size)

	updated := store.Items()
	if updated[0].Qty != 4 || updated[0].Size != enums.PrintSize16x20 {
		t.Fatalf("update missed: %+v", updated[0])
	}
	if updated[1].Qty != 1 || updated[1].Size != enums.PrintSize4x6 {
		t.Fatalf("sibling line must be untouched: %+v", updated[1])
	}

	store.Remove(items[0].LineID)
	if remaining := store.Items(); len(remaining) != 1 || remaining[0].LineID != items[1].LineID {
		t.Fatalf("remove should target one line, got %+v", remaining)
	}
}

func TestUpdateFloorsQuantityAndCorrectsSize(t *testing.T) {
	adapter := newTestAdapter(t)
	store := NewManager(adapter, nil).Load("c")
	store.Add("print-1", 1, "4x6")
	lineID := store.Items()[0].LineID

	qty := 0
	size := "99x99"
	store.Update(lineID, &qty, &size)

	got := store.Items()[0]
	if got.Qty != 1 {
		t.Fatalf("qty should floor at 1, got %d", got.Qty)
	}
	if got.Size != enums.PrintSizeDefault {
		t.Fatalf("unknown size should correct to default, got %s", got.Size)
	}
}

func TestMutationsRoundTripThroughReload(t *testing.T) {
	adapter := newTestAdapter(t)
	mgr := NewManager(adapter, nil)

	store := mgr.Load("client-a")
	store.Add("print-1", 2, "4x6")
	store.Add("print-2", 1, "8x10")
	items := store.Items()
	store.Remove(items[0].LineID)
	want := store.Items()

	reloaded := mgr.Load("client-a").Items()
	if len(reloaded) != len(want) {
		t.Fatalf("reload mismatch: got %d lines, want %d", len(reloaded), len(want))
	}
	for i := range want {
		if reloaded[i] != want[i] {
			t.Fatalf("line %d mismatch: got %+v want %+v", i, reloaded[i], want[i])
		}
	}
}

func TestClearEmptiesAndPersists(t *testing.T) {
	adapter := newTestAdapter(t)
	mgr := NewManager(adapter, nil)

	store := mgr.Load("client-a")
	store.Add("print-1", 2, "4x6")
	store.Clear()

	if len(store.Items()) != 0 {
		t.Fatal("clear should empty the cart")
	}
	if reloaded := mgr.Load("client-a").Items(); len(reloaded) != 0 {
		t.Fatalf("cleared cart should persist empty, got %d lines", len(reloaded))
	}
}

func TestLegacyDocumentMigration(t *testing.T) {
	inner := newTestAdapter(t)

	// Legacy schema: no uid, no qty, frame/mat fields from the old model.
	legacy := map[string]any{
		"items": []map[string]any{
			{"id": "print-1", "size": "5x7", "frame": "oak"},
			{"id": "print-2", "qty": 3},
			{"size": "4x6"}, // no product id: dropped
		},
	}
	if err := inner.Put("client-a", localstore.KeyCart, legacy); err != nil {
		t.Fatalf("seed legacy doc: %v", err)
	}

	items := NewManager(inner, nil).Load("client-a").Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 migrated lines, got %d", len(items))
	}
	if items[0].LineID == "" || items[1].LineID == "" {
		t.Fatal("migration must generate line ids")
	}
	if items[0].Qty != 1 {
		t.Fatalf("missing qty should migrate to 1, got %d", items[0].Qty)
	}
	if items[1].Qty != 3 {
		t.Fatalf("existing qty should survive, got %d", items[1].Qty)
	}
	if items[1].Size != enums.PrintSizeDefault {
		t.Fatalf("missing size should correct to default, got %s", items[1].Size)
	}
}

func TestPersistenceErrorsAreSwallowed(t *testing.T) {
	inner := newTestAdapter(t)
	adapter := &flakyAdapter{inner: inner, failPut: true}
	store := NewManager(adapter, nil).Load("c")

	store.Add("print-1", 1, "4x6")
	if len(store.Items()) != 1 {
		t.Fatal("in-memory state must survive persistence failure")
	}

	adapter.failGet = true
	if items := NewManager(adapter, nil).Load("c").Items(); len(items) != 0 {
		t.Fatalf("read failure should rehydrate empty, got %d", len(items))
	}
}
