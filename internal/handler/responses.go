package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreatedResponse returns the id assigned to a new record
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// DeleteResponse lists the recipes that still reference a deleted ingredient
type DeleteResponse struct {
	Message    string             `json:"message"`
	Dependents []domain.Dependent `json:"dependents,omitempty"`
}

var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON encodes payload into a pooled buffer before writing any header,
// so an encoding failure can still become a 500
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status. Client errors echo
// the wrapped domain message, which names the offending item; server errors do not.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, message := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err)
	} else {
		log.Warn(op+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}

// User-facing messages for server-side failures
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgRequestCanceled    = "Request canceled"
)

// mapServiceError converts domain errors to HTTP status codes
func mapServiceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrIngredientNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrDuplicateIngredient):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidItemKind):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCyclicRecipe), errors.Is(err, domain.ErrRecipeTooDeep):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgRequestCanceled
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
