package domain

import (
	"fmt"
	"sort"
	"strings"
)

// TransactionType distinguishes money entering the platform from money leaving it.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
)

var validTransactionTypes = map[TransactionType]bool{
	TransactionTypeDeposit:  true,
	TransactionTypeWithdraw: true,
}

// IsValid checks if the transaction type is recognized.
func (t TransactionType) IsValid() bool {
	return validTransactionTypes[t]
}

// TransactionStatus is the state-machine value of a ledger transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusInReview  TransactionStatus = "IN_REVIEW"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusRefund    TransactionStatus = "REFUND"
)

var validStatuses = map[TransactionStatus]bool{
	StatusPending:   true,
	StatusInReview:  true,
	StatusCompleted: true,
	StatusFailed:    true,
	StatusRefund:    true,
}

// IsValid checks if the status is a recognized status value.
func (s TransactionStatus) IsValid() bool {
	return validStatuses[s]
}

// transitions is the complete status graph, keyed by transaction type.
// Deposits and withdrawals currently share the same edges; the table is
// still split by type so a divergence only touches this map.
//
// FAILED and REFUND are terminal. COMPLETED may only move to REFUND.
var transitions = map[TransactionType]map[TransactionStatus][]TransactionStatus{
	TransactionTypeDeposit: {
		StatusPending:   {StatusCompleted, StatusFailed, StatusInReview},
		StatusInReview:  {StatusCompleted, StatusFailed},
		StatusCompleted: {StatusRefund},
		StatusFailed:    {},
		StatusRefund:    {},
	},
	TransactionTypeWithdraw: {
		StatusPending:   {StatusCompleted, StatusFailed, StatusInReview},
		StatusInReview:  {StatusCompleted, StatusFailed},
		StatusCompleted: {StatusRefund},
		StatusFailed:    {},
		StatusRefund:    {},
	},
}

// AllowedNextStatuses returns the set of statuses a transaction of the given
// type may move to from the given status. The returned slice is sorted and
// safe for the caller to modify.
func AllowedNextStatuses(txType TransactionType, from TransactionStatus) []TransactionStatus {
	next, ok := transitions[txType][from]
	if !ok {
		return nil
	}

	out := make([]TransactionStatus, len(next))
	copy(out, next)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// IsTransitionAllowed reports whether moving from one status to another is a
// legal edge for the given transaction type.
func IsTransitionAllowed(txType TransactionType, from, to TransactionStatus) bool {
	for _, s := range transitions[txType][from] {
		if s == to {
			return true
		}
	}

	return false
}

// InvalidTransitionError is returned when a status update requests an edge
// the transition table does not permit. It carries the full context so the
// admin surface can show it verbatim.
type InvalidTransitionError struct {
	Type      TransactionType
	Current   TransactionStatus
	Requested TransactionStatus
	Allowed   []TransactionStatus
}

func (e *InvalidTransitionError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}

	set := "none"
	if len(allowed) > 0 {
		set = strings.Join(allowed, ", ")
	}

	return fmt.Sprintf("invalid %s status transition from %s to %s (allowed: %s)",
		strings.ToLower(string(e.Type)), e.Current, e.Requested, set)
}

// NewInvalidTransitionError builds the error with the allowed set filled in
// from the transition table.
func NewInvalidTransitionError(txType TransactionType, current, requested TransactionStatus) *InvalidTransitionError {
	return &InvalidTransitionError{
		Type:      txType,
		Current:   current,
		Requested: requested,
		Allowed:   AllowedNextStatuses(txType, current),
	}
}
