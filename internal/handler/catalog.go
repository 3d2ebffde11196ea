package handler

import (
	"net/http"

	"github.com/osse101/RecipeBOM_Go/internal/catalog"
)

// HandleSearch handles GET /search?q=
func HandleSearch(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := GetQueryParam(r, w, "q")
		if !ok {
			return
		}
		result, err := svc.Search(r.Context(), q)
		if err != nil {
			respondServiceError(w, r, OpSearch, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleStats handles GET /stats
func HandleStats(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			respondServiceError(w, r, OpStats, err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

// HandleClearCatalog handles DELETE /catalog?confirm=true
func HandleClearCatalog(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if GetOptionalQueryParam(r, "confirm", "false") != "true" {
			respondError(w, http.StatusBadRequest, ErrMsgConfirmRequired)
			return
		}
		if err := svc.ClearAll(r.Context()); err != nil {
			respondServiceError(w, r, OpClearCatalog, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCatalogCleared})
	}
}
