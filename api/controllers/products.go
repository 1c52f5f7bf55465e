package controllers

import (
	"net/http"

	"github.com/orderlink/orderlink-backend/api/responses"
	"github.com/orderlink/orderlink-backend/internal/catalog"
	pkgerrors "github.com/orderlink/orderlink-backend/pkg/errors"
	"github.com/orderlink/orderlink-backend/pkg/logger"
)

// ProductList returns the current catalog in load order.
func ProductList(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog store unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products": store.Products(),
			"count":    store.Len(),
		})
	}
}
