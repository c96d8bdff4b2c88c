package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northlight-prints/storefront-backend/api/middleware"
	"github.com/northlight-prints/storefront-backend/api/responses"
	"github.com/northlight-prints/storefront-backend/api/validators"
	cartsvc "github.com/northlight-prints/storefront-backend/internal/cart"
	pkgerrors "github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

type addToCartRequest struct {
	ProductID string `json:"id" validate:"required"`
	Qty       int    `json:"qty" validate:"omitempty,min=1,max=99"`
	Size      string `json:"size" validate:"omitempty,max=8"`
}

type updateLineRequest struct {
	Qty  *int    `json:"qty" validate:"omitempty,min=1,max=99"`
	Size *string `json:"size" validate:"omitempty,max=8"`
}

type cartResponse struct {
	Items []cartsvc.LineItem `json:"items"`
}

// CartFetch returns the caller's current cart.
func CartFetch(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		store := manager.Load(middleware.ClientTokenFromContext(r.Context()))
		responses.WriteSuccess(w, cartResponse{Items: store.Items()})
	}
}

// CartAdd appends lines for a product. Quantity expands into single-quantity
// lines; repeated adds never merge.
func CartAdd(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload addToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := manager.Load(middleware.ClientTokenFromContext(r.Context()))
		store.Add(payload.ProductID, payload.Qty, payload.Size)
		responses.WriteSuccessStatus(w, http.StatusCreated, cartResponse{Items: store.Items()})
	}
}

// CartUpdateLine adjusts quantity and/or size on one line.
func CartUpdateLine(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		var payload updateLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := manager.Load(middleware.ClientTokenFromContext(r.Context()))
		store.Update(chi.URLParam(r, "lineID"), payload.Qty, payload.Size)
		responses.WriteSuccess(w, cartResponse{Items: store.Items()})
	}
}

// CartRemoveLine drops one line. Unknown line ids are a no-op.
func CartRemoveLine(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		store := manager.Load(middleware.ClientTokenFromContext(r.Context()))
		store.Remove(chi.URLParam(r, "lineID"))
		responses.WriteSuccess(w, cartResponse{Items: store.Items()})
	}
}

// CartClear empties the cart.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart unavailable"))
			return
		}

		store := manager.Load(middleware.ClientTokenFromContext(r.Context()))
		store.Clear()
		responses.WriteSuccess(w, cartResponse{Items: store.Items()})
	}
}
