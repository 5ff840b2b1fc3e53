package dto

import (
	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
)

// CreateTransactionRequest represents a request to create a deposit or
// withdrawal ledger entry.
type CreateTransactionRequest struct {
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	FeeType        string          `json:"fee_type"`
	ChargeAmount   decimal.Decimal `json:"charge_amount"`
	FromCurrencyID *string         `json:"from_currency_id,omitempty"`
	ToCurrencyID   *string         `json:"to_currency_id,omitempty"`
	FromNetworkID  *string         `json:"from_network_id,omitempty"`
	ToNetworkID    *string         `json:"to_network_id,omitempty"`
	Status         *string         `json:"status,omitempty"`
	Note           string          `json:"note"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	input := usecase.CreateTransactionInput{
		UserID:         r.UserID,
		Amount:         r.Amount,
		FeeType:        domain.FeeType(r.FeeType),
		ChargeAmount:   r.ChargeAmount,
		FromCurrencyID: r.FromCurrencyID,
		ToCurrencyID:   r.ToCurrencyID,
		FromNetworkID:  r.FromNetworkID,
		ToNetworkID:    r.ToNetworkID,
		Note:           r.Note,
	}

	if r.Status != nil {
		status := domain.TransactionStatus(*r.Status)
		input.Status = &status
	}

	return input
}

// UpdateStatusRequest represents a request to move a ledger entry to a new
// status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// RegisterUserRequest represents a request to register a user.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterUserRequest) ToUseCaseInput() usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents an authentication request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
