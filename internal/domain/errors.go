package domain

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrFeeScheduleNotFound = errors.New("fee schedule not found")
	ErrCurrencyNotFound    = errors.New("currency not found")
	ErrNetworkNotFound     = errors.New("network not found")

	// Account state errors
	ErrAccountFrozen    = errors.New("account is frozen")
	ErrAccountNotActive = errors.New("account is not active")

	ErrDuplicateReference = errors.New("transaction reference already exists")
)

// ValidationError reports malformed or out-of-range input with field-level
// detail. Never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// WrongTransactionTypeError is returned when a status update is invoked
// against an entry of a different transaction type than the service handling
// it, e.g. a deposit status call against a withdrawal entry.
type WrongTransactionTypeError struct {
	Requested TransactionType
	Actual    TransactionType
}

func (e *WrongTransactionTypeError) Error() string {
	return fmt.Sprintf("transaction is a %s, not a %s", e.Actual, e.Requested)
}

// PersistenceError wraps a failed atomic unit of work. The whole operation
// rolled back; the caller may retry it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
