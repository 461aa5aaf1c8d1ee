package services

import (
	"errors"
	"net/http"

	"github.com/playvault/backend/internal/metrics"
)

// Business-rule failure classes. Engine operations abort before any write
// when one of these is hit; callers surface them as user-facing rejections.
var (
	// ErrNotFound: referenced player, payment method or transaction does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: entity exists but its state forbids the operation.
	ErrInvalidState = errors.New("invalid state")
	// ErrLimitExceeded: amount bounds, daily limits or balance sufficiency violated.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// WriteEngineError maps engine failures onto HTTP status codes.
func WriteEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.EngineFailures.WithLabelValues("not_found").Inc()
		SendErrorResponse(w, err.Error(), http.StatusNotFound, nil)
	case errors.Is(err, ErrInvalidState):
		metrics.EngineFailures.WithLabelValues("invalid_state").Inc()
		SendErrorResponse(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, ErrLimitExceeded):
		metrics.EngineFailures.WithLabelValues("limit_exceeded").Inc()
		SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	default:
		metrics.EngineFailures.WithLabelValues("internal").Inc()
		SendErrorResponse(w, "Failed to process transaction", http.StatusInternalServerError, nil)
	}
}
