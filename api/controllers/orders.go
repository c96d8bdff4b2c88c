package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/northlight-prints/storefront-backend/api/middleware"
	"github.com/northlight-prints/storefront-backend/api/responses"
	ordersvc "github.com/northlight-prints/storefront-backend/internal/orders"
	"github.com/northlight-prints/storefront-backend/pkg/db/models"
	pkgerrors "github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

// OrderFetch returns one order record by id.
func OrderFetch(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		order, err := svc.Get(r.Context(), chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderList returns the newest orders for the operator view.
func OrderList(svc *ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		var (
			out []models.Order
			err error
		)
		if email := r.URL.Query().Get("email"); email != "" {
			out, err = svc.ByEmail(r.Context(), email, limit)
		} else {
			out, err = svc.Recent(r.Context(), limit)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// OrderHistory returns the caller's local order history, newest first.
func OrderHistory(history *ordersvc.History, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if history == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order history unavailable"))
			return
		}

		entries := history.List(middleware.ClientTokenFromContext(r.Context()))
		if entries == nil {
			entries = []ordersvc.HistoryEntry{}
		}
		responses.WriteSuccess(w, entries)
	}
}
