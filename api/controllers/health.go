package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/northlight-prints/storefront-backend/api/responses"
	pkgerrors "github.com/northlight-prints/storefront-backend/pkg/errors"
	"github.com/northlight-prints/storefront-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness only.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores and reports per-dependency state.
func HealthReady(db pinger, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var errs error
		status := map[string]string{"status": "ready"}

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				status["db"] = "down"
				errs = multierr.Append(errs, err)
			} else {
				status["db"] = "up"
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				status["redis"] = "down"
				errs = multierr.Append(errs, err)
			} else {
				status["redis"] = "up"
			}
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "backing stores unavailable"))
			return
		}
		responses.WriteSuccess(w, status)
	}
}
