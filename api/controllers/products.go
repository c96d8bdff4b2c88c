package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/northlight-prints/storefront-backend/api/responses"
	"github.com/northlight-prints/storefront-backend/internal/media"
	"github.com/northlight-prints/storefront-backend/internal/pricing"
	"github.com/northlight-prints/storefront-backend/pkg/enums"
	pkgerrors "github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

type productView struct {
	pricing.PricedProduct
	Sizes       []sizeOption `json:"sizes"`
	Placeholder *media.RGB   `json:"placeholderColor,omitempty"`
}

type sizeOption struct {
	Size       string `json:"size"`
	Label      string `json:"label"`
	PriceCents int    `json:"price"`
}

// ListProducts returns the priced catalog with per-product size options.
// Display labels flip for landscape pieces; prices never do.
func ListProducts(engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}

		priced := engine.PricedCatalog(r.Context())
		out := make([]productView, 0, len(priced))
		for _, product := range priced {
			out = append(out, productView{
				PricedProduct: product,
				Sizes:         sizeOptions(product.ID),
				Placeholder:   placeholder(engine, product.ID),
			})
		}

		responses.WriteSuccess(w, out)
	}
}

// GetProduct returns one priced product by id.
func GetProduct(engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		for _, product := range engine.PricedCatalog(r.Context()) {
			if product.ID == productID {
				responses.WriteSuccess(w, productView{
					PricedProduct: product,
					Sizes:         sizeOptions(product.ID),
					Placeholder:   placeholder(engine, product.ID),
				})
				return
			}
		}

		responses.WriteError(r.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
	}
}

func placeholder(engine *pricing.Engine, productID string) *media.RGB {
	rgb, ok := engine.PlaceholderColor(productID)
	if !ok {
		return nil
	}
	return &rgb
}

func sizeOptions(productID string) []sizeOption {
	sizes := enums.AllPrintSizes()
	out := make([]sizeOption, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, sizeOption{
			Size:       size.String(),
			Label:      media.DisplaySize(productID, size.String()),
			PriceCents: pricing.PriceFor(size),
		})
	}
	return out
}
