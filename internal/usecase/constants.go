package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// MaxReferenceAttempts bounds how many times a transaction reference is
	// regenerated after a uniqueness collision before giving up
	MaxReferenceAttempts = 5

	// ReferenceCacheTTL is how long reference data (currencies, networks,
	// fee schedules) stays cached
	ReferenceCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
