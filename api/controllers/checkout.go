package controllers

import (
	"context"
	"net/http"

	"github.com/northlight-prints/storefront-backend/api/middleware"
	"github.com/northlight-prints/storefront-backend/api/responses"
	"github.com/northlight-prints/storefront-backend/api/validators"
	cartsvc "github.com/northlight-prints/storefront-backend/internal/cart"
	"github.com/northlight-prints/storefront-backend/internal/checkout"
	pkgerrors "github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
	"github.com/northlight-prints/storefront-backend/pkg/types"
)

// CheckoutSubmitter is implemented by both checkout variants; the router
// wires whichever one the deployment runs.
type CheckoutSubmitter interface {
	Submit(ctx context.Context, token string, items []cartsvc.LineItem, input checkout.SubmitInput) (*checkout.Result, error)
}

type submitCheckoutRequest struct {
	Shipping  types.Address         `json:"shipping"`
	Billing   *types.Address        `json:"billing"`
	Marketing types.Marketing       `json:"marketing"`
	Card      *checkout.CardDetails `json:"card"`
}

// CheckoutEstimate prices the current cart against a destination. Missing
// destination fields produce a zero-rate estimate with a note, not an error.
func CheckoutEstimate(svc *checkout.Service, manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		store := manager.Load(middleware.ClientTokenFromContext(r.Context()))
		quote := svc.Quote(store.Items(), r.URL.Query().Get("country"), r.URL.Query().Get("region"))
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutSubmit freezes the cart into an order through the configured
// variant. The cart clears only when submission succeeds.
func CheckoutSubmit(submitter CheckoutSubmitter, manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if submitter == nil || manager == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}

		var payload submitCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.ClientTokenFromContext(r.Context())
		store := manager.Load(token)

		result, err := submitter.Submit(r.Context(), token, store.Items(), checkout.SubmitInput{
			Shipping:  payload.Shipping,
			Billing:   payload.Billing,
			Marketing: payload.Marketing,
			Card:      payload.Card,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear()
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
