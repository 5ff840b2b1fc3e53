package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

func TestUserRepositoryGetByID(t *testing.T) {
	mockPool := newMockPool(t)

	now := time.Now().UTC()
	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, name, hashed_password, role, status, balance, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "hashed_password", "role", "status", "balance", "created_at", "updated_at"}).
			AddRow("user-1", "a@example.com", "Alice", "hash", "customer", "ACTIVE", decimalToNumeric(decimal.RequireFromString("500.00")), timeToPgTimestamptz(now), timeToPgTimestamptz(now)))

	repo := newUserRepository(mockPool)

	user, err := repo.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", user.Email)
	}

	if !user.Balance.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("balance = %s, want 500.00", user.Balance)
	}

	if user.Status != domain.UserStatusActive {
		t.Errorf("status = %q, want ACTIVE", user.Status)
	}

	assertExpectations(t, mockPool)
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectQuery(`SELECT .* FROM users WHERE id`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newUserRepository(mockPool)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepositoryIncrementBalance(t *testing.T) {
	mockPool := newMockPool(t)

	now := time.Now().UTC()
	delta := decimal.RequireFromString("98.00")

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WithArgs("user-1", decimalToNumeric(delta), timeToPgTimestamptz(now)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).
			AddRow(decimalToNumeric(decimal.RequireFromString("598.00"))))
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := newUserRepository(mockPool)

	balance, err := repo.IncrementBalance(context.Background(), tx, "user-1", delta, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.RequireFromString("598.00")) {
		t.Errorf("balance = %s, want 598.00", balance)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestUserRepositoryUpdateStatusNotFound(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectExec(regexp.QuoteMeta(`UPDATE users SET status`)).
		WithArgs("missing", "FROZEN", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newUserRepository(mockPool)

	err := repo.UpdateStatus(context.Background(), "missing", domain.UserStatusFrozen, time.Now().UTC())
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	assertExpectations(t, mockPool)
}
