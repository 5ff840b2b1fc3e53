package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

func TestAllowedNextStatuses(t *testing.T) {
	tests := []struct {
		name    string
		txType  domain.TransactionType
		from    domain.TransactionStatus
		allowed []domain.TransactionStatus
	}{
		{
			name:    "deposit pending",
			txType:  domain.TransactionTypeDeposit,
			from:    domain.StatusPending,
			allowed: []domain.TransactionStatus{domain.StatusCompleted, domain.StatusFailed, domain.StatusInReview},
		},
		{
			name:    "deposit in review",
			txType:  domain.TransactionTypeDeposit,
			from:    domain.StatusInReview,
			allowed: []domain.TransactionStatus{domain.StatusCompleted, domain.StatusFailed},
		},
		{
			name:    "deposit completed can only refund",
			txType:  domain.TransactionTypeDeposit,
			from:    domain.StatusCompleted,
			allowed: []domain.TransactionStatus{domain.StatusRefund},
		},
		{
			name:    "deposit failed is terminal",
			txType:  domain.TransactionTypeDeposit,
			from:    domain.StatusFailed,
			allowed: []domain.TransactionStatus{},
		},
		{
			name:    "deposit refund is terminal",
			txType:  domain.TransactionTypeDeposit,
			from:    domain.StatusRefund,
			allowed: []domain.TransactionStatus{},
		},
		{
			name:    "withdraw pending",
			txType:  domain.TransactionTypeWithdraw,
			from:    domain.StatusPending,
			allowed: []domain.TransactionStatus{domain.StatusCompleted, domain.StatusFailed, domain.StatusInReview},
		},
		{
			name:    "withdraw completed can only refund",
			txType:  domain.TransactionTypeWithdraw,
			from:    domain.StatusCompleted,
			allowed: []domain.TransactionStatus{domain.StatusRefund},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.allowed, domain.AllowedNextStatuses(tt.txType, tt.from))
		})
	}
}

// Every (type, status) pair must have a finite, explicitly enumerated allowed
// set, and every status outside that set must be rejected.
func TestTransitionTableClosure(t *testing.T) {
	allStatuses := []domain.TransactionStatus{
		domain.StatusPending,
		domain.StatusInReview,
		domain.StatusCompleted,
		domain.StatusFailed,
		domain.StatusRefund,
	}

	for _, txType := range []domain.TransactionType{domain.TransactionTypeDeposit, domain.TransactionTypeWithdraw} {
		for _, from := range allStatuses {
			allowed := domain.AllowedNextStatuses(txType, from)
			require.NotNil(t, allowed, "missing table row for %s/%s", txType, from)

			allowedSet := make(map[domain.TransactionStatus]bool)
			for _, s := range allowed {
				allowedSet[s] = true
			}

			for _, to := range allStatuses {
				got := domain.IsTransitionAllowed(txType, from, to)
				assert.Equal(t, allowedSet[to], got, "%s: %s -> %s", txType, from, to)
			}
		}
	}
}

func TestIsTransitionAllowed_NoBackwardEdges(t *testing.T) {
	assert.False(t, domain.IsTransitionAllowed(domain.TransactionTypeDeposit, domain.StatusCompleted, domain.StatusPending))
	assert.False(t, domain.IsTransitionAllowed(domain.TransactionTypeDeposit, domain.StatusFailed, domain.StatusCompleted))
	assert.False(t, domain.IsTransitionAllowed(domain.TransactionTypeWithdraw, domain.StatusRefund, domain.StatusCompleted))
}

func TestInvalidTransitionError(t *testing.T) {
	err := domain.NewInvalidTransitionError(domain.TransactionTypeDeposit, domain.StatusFailed, domain.StatusCompleted)

	assert.Equal(t, domain.StatusFailed, err.Current)
	assert.Equal(t, domain.StatusCompleted, err.Requested)
	assert.Empty(t, err.Allowed)
	assert.Contains(t, err.Error(), "FAILED")
	assert.Contains(t, err.Error(), "COMPLETED")
	assert.Contains(t, err.Error(), "none")

	err = domain.NewInvalidTransitionError(domain.TransactionTypeWithdraw, domain.StatusPending, domain.StatusRefund)
	assert.ElementsMatch(t, []domain.TransactionStatus{domain.StatusCompleted, domain.StatusFailed, domain.StatusInReview}, err.Allowed)
	assert.Contains(t, err.Error(), "COMPLETED")
}

func TestUnknownTypeOrStatus(t *testing.T) {
	assert.Nil(t, domain.AllowedNextStatuses("TRANSFER", domain.StatusPending))
	assert.Nil(t, domain.AllowedNextStatuses(domain.TransactionTypeDeposit, "ARCHIVED"))
	assert.False(t, domain.IsTransitionAllowed(domain.TransactionTypeDeposit, "ARCHIVED", domain.StatusCompleted))
}
