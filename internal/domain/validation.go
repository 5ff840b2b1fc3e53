package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxTransactionAmount = "1000000000" // 1 billion USD
	MinTransactionAmount = "0.01"
	MaxNoteLength        = 1024
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAmount validates a gross transaction amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "amount", Message: "amount must be positive"}
	}

	minAmount, _ := decimal.NewFromString(MinTransactionAmount)
	if amount.LessThan(minAmount) {
		return &ValidationError{Field: "amount", Message: fmt.Sprintf("minimum amount is %s", MinTransactionAmount)}
	}

	maxAmount, _ := decimal.NewFromString(MaxTransactionAmount)
	if amount.GreaterThan(maxAmount) {
		return &ValidationError{Field: "amount", Message: fmt.Sprintf("maximum amount is %s", MaxTransactionAmount)}
	}

	return nil
}

// ValidateChargeAmount validates an external network charge.
func ValidateChargeAmount(charge decimal.Decimal) error {
	if charge.IsNegative() {
		return &ValidationError{Field: "charge_amount", Message: "charge amount must not be negative"}
	}

	return nil
}

// ValidateNote validates the optional free-text note.
func ValidateNote(note string) error {
	if len(note) > MaxNoteLength {
		return &ValidationError{Field: "note", Message: fmt.Sprintf("note exceeds %d characters", MaxNoteLength)}
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}

	if len(password) > MaxPasswordLength {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("must not exceed %d characters", MaxPasswordLength)}
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return &ValidationError{Field: "password", Message: "must contain uppercase, lowercase, and numbers"}
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
