package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrCurrencyNotFound), http.StatusNotFound},
		{"frozen account", domain.ErrAccountFrozen, http.StatusForbidden},
		{"inactive account", domain.ErrAccountNotActive, http.StatusForbidden},
		{"duplicate reference", domain.ErrDuplicateReference, http.StatusConflict},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{
			"invalid transition",
			domain.NewInvalidTransitionError(domain.TransactionTypeDeposit, domain.StatusCompleted, domain.StatusPending),
			http.StatusUnprocessableEntity,
		},
		{
			"wrong transaction type",
			&domain.WrongTransactionTypeError{Requested: domain.TransactionTypeDeposit, Actual: domain.TransactionTypeWithdraw},
			http.StatusUnprocessableEntity,
		},
		{"validation", &domain.ValidationError{Field: "amount", Message: "must be positive"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorLabel(t *testing.T) {
	transitionErr := domain.NewInvalidTransitionError(domain.TransactionTypeWithdraw, domain.StatusFailed, domain.StatusCompleted)

	if got := errorLabel(transitionErr); got != "invalid_status_transition" {
		t.Fatalf("expected invalid_status_transition, got %q", got)
	}

	if got := errorLabel(domain.ErrUserNotFound); got != "not_found" {
		t.Fatalf("expected not_found, got %q", got)
	}

	if got := errorLabel(errors.New("boom")); got != "request_failed" {
		t.Fatalf("expected request_failed, got %q", got)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(req, "limit", 50); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	if got := parseIntQuery(req, "bad", 50); got != 50 {
		t.Fatalf("expected fallback 50 for non-numeric value, got %d", got)
	}

	if got := parseIntQuery(req, "missing", 50); got != 50 {
		t.Fatalf("expected fallback 50 for absent value, got %d", got)
	}
}
