package controllers

import (
	"net/http"

	"github.com/northlight-prints/storefront-backend/api/middleware"
	"github.com/northlight-prints/storefront-backend/api/responses"
	"github.com/northlight-prints/storefront-backend/api/validators"
	prefsvc "github.com/northlight-prints/storefront-backend/internal/prefs"
	pkgerrors "github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

type consentRequest struct {
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,max=16"`
}

// ConsentFetch returns the caller's consent flags.
func ConsentFetch(svc *prefsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Consent(middleware.ClientTokenFromContext(r.Context())))
	}
}

// ConsentSave records the caller's consent answer.
func ConsentSave(svc *prefsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}

		var payload consentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.ClientTokenFromContext(r.Context())
		consent := prefsvc.Consent{Analytics: payload.Analytics, Marketing: payload.Marketing}
		if err := svc.SaveConsent(token, consent); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save consent"))
			return
		}
		responses.WriteSuccess(w, svc.Consent(token))
	}
}

// ThemeFetch returns the caller's theme choice.
func ThemeFetch(svc *prefsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}
		theme := svc.Theme(middleware.ClientTokenFromContext(r.Context()))
		responses.WriteSuccess(w, map[string]string{"theme": string(theme)})
	}
}

// ThemeSave records the theme, correcting unknown values to light.
func ThemeSave(svc *prefsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "preferences unavailable"))
			return
		}

		var payload themeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		theme, err := svc.SaveTheme(middleware.ClientTokenFromContext(r.Context()), payload.Theme)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save theme"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"theme": string(theme)})
	}
}
