package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/dto"
	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to an HTTP status and writes it.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, mapDomainError(err), errorLabel(err), err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		validationErr *domain.ValidationError
		transitionErr *domain.InvalidTransitionError
		wrongTypeErr  *domain.WrongTransactionTypeError
	)

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrCurrencyNotFound),
		errors.Is(err, domain.ErrNetworkNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountFrozen),
		errors.Is(err, domain.ErrAccountNotActive):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateReference):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.As(err, &transitionErr),
		errors.As(err, &wrongTypeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorLabel picks the short machine-readable label for an error.
func errorLabel(err error) string {
	var (
		validationErr *domain.ValidationError
		transitionErr *domain.InvalidTransitionError
		wrongTypeErr  *domain.WrongTransactionTypeError
	)

	switch {
	case errors.As(err, &transitionErr):
		return "invalid_status_transition"
	case errors.As(err, &wrongTypeErr):
		return "wrong_transaction_type"
	case errors.As(err, &validationErr):
		return "validation_failed"
	case mapDomainError(err) == http.StatusNotFound:
		return "not_found"
	default:
		return "request_failed"
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
