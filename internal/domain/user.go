package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// User represents a platform account holding a USD balance. Balance is only
// written by the transaction service, inside the same database transaction
// as the ledger entry that causes the change.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Status         UserStatus
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserStatus is the account lifecycle state.
type UserStatus string

const (
	// UserStatusPending means identity verification has not finished yet.
	UserStatusPending UserStatus = "PENDING"
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusFrozen  UserStatus = "FROZEN"
)

var validUserStatuses = map[UserStatus]bool{
	UserStatusPending: true,
	UserStatusActive:  true,
	UserStatusFrozen:  true,
}

// IsValid checks if the status is a recognized account status.
func (s UserStatus) IsValid() bool {
	return validUserStatuses[s]
}

// CanDeposit reports whether the account may receive deposits.
func (u *User) CanDeposit() bool {
	return u.Status != UserStatusFrozen
}

// CanWithdraw reports whether the account may request withdrawals.
// Pending accounts may receive funds but not move them out.
func (u *User) CanWithdraw() bool {
	return u.Status == UserStatusActive
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleCustomer owns an account and its transaction history
	RoleCustomer Role = "customer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleCustomer: true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanManageTransactions checks if the role may change transaction statuses
func (r Role) CanManageTransactions() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
