package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/orderlink/orderlink-backend/api/responses"
	"github.com/orderlink/orderlink-backend/pkg/config"
	"github.com/orderlink/orderlink-backend/pkg/db"
	pkgerrors "github.com/orderlink/orderlink-backend/pkg/errors"
	"github.com/orderlink/orderlink-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the wired dependencies. Pingers passed as nil are
// skipped, so a sqlite-only deployment does not report redis as down.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers map[string]db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderLink-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		components := map[string]string{}
		for name, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unreachable"))
				return
			}
			components[name] = "up"
		}

		responses.WriteSuccess(w, map[string]any{
			"status":     "ready",
			"components": components,
		})
	}
}
