package controllers

import (
	"io"
	"net/http"

	"github.com/orderlink/orderlink-backend/api/responses"
	"github.com/orderlink/orderlink-backend/internal/catalog"
	pkgerrors "github.com/orderlink/orderlink-backend/pkg/errors"
	"github.com/orderlink/orderlink-backend/pkg/logger"
)

// Workbook uploads beyond this size are rejected before parsing.
const maxUploadBytes = 32 << 20

// CatalogReload refetches the workbook from the configured source and
// replaces the catalog on success.
func CatalogReload(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		count, err := svc.Reload(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"products": count})
	}
}

// CatalogUpload accepts a workbook file as multipart form data. This is the
// manual fallback when the configured source is unreachable.
func CatalogUpload(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, _, err := r.FormFile("workbook")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "workbook file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading workbook upload"))
			return
		}

		count, err := svc.LoadBytes(r.Context(), data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int{"products": count})
	}
}
