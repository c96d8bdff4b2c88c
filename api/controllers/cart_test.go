package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/northlight-prints/storefront-backend/api/middleware"
	cartsvc "github.com/northlight-prints/storefront-backend/internal/cart"
	"github.com/northlight-prints/storefront-backend/internal/localstore"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
)

type fixedSizeRecommender struct {
	size enums.PrintSize
}

func (f fixedSizeRecommender) RecommendedSize(string) enums.PrintSize {
	return f.size
}

func newTestCartManager(t *testing.T) *cartsvc.Manager {
	t.Helper()
	store, err := localstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("open localstore: %v", err)
	}
	return cartsvc.NewManager(store, fixedSizeRecommender{size: enums.PrintSize8x10})
}

func seedToken(req *http.Request, token string) *http.Request {
	return req.WithContext(middleware.WithClientToken(req.Context(), token))
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartAddCreatesSingleQtyLines(t *testing.T) {
	manager := newTestCartManager(t)
	handler := CartAdd(manager, nil)

	req := seedToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"id":"print-1","qty":3}`)), "client-a")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	cart := decodeCart(t, resp)
	if len(cart.Items) != 3 {
		t.Fatalf("expected 3 lines got %d", len(cart.Items))
	}
	for _, item := range cart.Items {
		if item.Qty != 1 {
			t.Fatalf("expected single-qty line, got qty %d", item.Qty)
		}
		if item.Size != enums.PrintSize8x10 {
			t.Fatalf("expected recommended size, got %s", item.Size)
		}
	}
}

func TestCartAddRejectsMissingProduct(t *testing.T) {
	handler := CartAdd(newTestCartManager(t), nil)

	req := seedToken(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"qty":1}`)), "client-a")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartFetchIsolatesClients(t *testing.T) {
	manager := newTestCartManager(t)
	manager.Load("client-a").Add("print-1", 1, "11x14")

	handler := CartFetch(manager, nil)

	req := seedToken(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "client-b")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if cart := decodeCart(t, resp); len(cart.Items) != 0 {
		t.Fatalf("expected empty cart for fresh client, got %d lines", len(cart.Items))
	}
}

func TestCartUpdateLineChangesSize(t *testing.T) {
	manager := newTestCartManager(t)
	lines := manager.Load("client-a").Add("print-1", 1, "8x10")

	router := chi.NewRouter()
	router.Patch("/api/v1/cart/items/{lineID}", CartUpdateLine(manager, nil))

	req := seedToken(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+lines[0].LineID,
		strings.NewReader(`{"size":"20x30"}`)), "client-a")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	cart := decodeCart(t, resp)
	if len(cart.Items) != 1 || cart.Items[0].Size != enums.PrintSize20x30 {
		t.Fatalf("expected line resized to 20x30, got %+v", cart.Items)
	}
}

func TestCartRemoveLineAndClear(t *testing.T) {
	manager := newTestCartManager(t)
	lines := manager.Load("client-a").Add("print-1", 2, "8x10")

	router := chi.NewRouter()
	router.Delete("/api/v1/cart/items/{lineID}", CartRemoveLine(manager, nil))
	router.Delete("/api/v1/cart", CartClear(manager, nil))

	req := seedToken(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+lines[0].LineID, nil), "client-a")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if cart := decodeCart(t, resp); len(cart.Items) != 1 {
		t.Fatalf("expected 1 line after remove, got %d", len(cart.Items))
	}

	req = seedToken(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "client-a")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if cart := decodeCart(t, resp); len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(cart.Items))
	}
}
