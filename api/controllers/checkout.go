package controllers

import (
	"net/http"

	"github.com/orderlink/orderlink-backend/api/responses"
	"github.com/orderlink/orderlink-backend/internal/order"
	pkgerrors "github.com/orderlink/orderlink-backend/pkg/errors"
	"github.com/orderlink/orderlink-backend/pkg/logger"
)

// Checkout renders the current cart as a WhatsApp order and returns the
// deep link that opens the prefilled chat.
func Checkout(svc *order.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		result, err := svc.Checkout(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
