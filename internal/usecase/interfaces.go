package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// IncrementBalance applies a balance delta as a single atomic update and
	// returns the resulting balance. Never implemented as read-modify-write.
	IncrementBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	UpdateStatusAndBalance(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, afterBalance decimal.Decimal, updatedAt time.Time) error
	UpdateAfterBalance(ctx context.Context, tx Transaction, id string, afterBalance decimal.Decimal, updatedAt time.Time) error
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

// ReferenceStore defines read-only lookups for currencies, networks and fee
// schedules.
type ReferenceStore interface {
	FindFeeByType(ctx context.Context, feeType domain.FeeType) (*domain.FeeSchedule, error)
	FindCurrencyByID(ctx context.Context, id string) (*domain.Currency, error)
	FindNetworkByID(ctx context.Context, id string) (*domain.Network, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures such as
// deadlocks or serialization aborts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique primary ids.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator generates the caller-facing transaction reference and
// the opaque UID correlation token.
type ReferenceGenerator interface {
	NewReference(txType domain.TransactionType) string
	NewUID() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
