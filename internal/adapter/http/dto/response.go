package dto

import (
	"time"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

// TransactionResponse is the canonical transport form of a ledger entry.
// All decimals are rendered as fixed two-decimal strings and relations are
// reduced to display-safe subsets. Absent relations serialize as null, never
// as omitted fields.
type TransactionResponse struct {
	ID             string            `json:"id"`
	UID            string            `json:"uid"`
	TransactionID  string            `json:"transaction_id"`
	Type           string            `json:"transaction_type"`
	Status         string            `json:"status"`
	Amount         string            `json:"amount"`
	FeeAmount      string            `json:"fee_amount"`
	ChargeAmount   string            `json:"charge_amount"`
	AfterFeeAmount string            `json:"after_fee_amount"`
	AfterBalance   string            `json:"after_balance"`
	FromCurrency   *CurrencyResponse `json:"from_currency"`
	ToCurrency     *CurrencyResponse `json:"to_currency"`
	FromNetwork    *NetworkResponse  `json:"from_network"`
	ToNetwork      *NetworkResponse  `json:"to_network"`
	User           *UserSummary      `json:"user"`
	Note           string            `json:"note"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// UserSummary is the display-safe subset of a user embedded in responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CurrencyResponse is the display-safe subset of a currency.
type CurrencyResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// NetworkResponse is the display-safe subset of a network.
type NetworkResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// TransactionFromDomain converts a domain ledger entry to its transport form.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:             t.ID,
		UID:            t.UID,
		TransactionID:  t.TransactionID,
		Type:           string(t.Type),
		Status:         string(t.Status),
		Amount:         t.Amount.StringFixed(2),
		FeeAmount:      t.FeeAmount.StringFixed(2),
		ChargeAmount:   t.ChargeAmount.StringFixed(2),
		AfterFeeAmount: t.AfterFeeAmount.StringFixed(2),
		AfterBalance:   t.AfterBalance.StringFixed(2),
		Note:           t.Note,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}

	if t.User != nil {
		resp.User = &UserSummary{ID: t.User.ID, Name: t.User.Name, Email: t.User.Email}
	}

	if t.FromCurrency != nil {
		resp.FromCurrency = currencyFromDomain(t.FromCurrency)
	}

	if t.ToCurrency != nil {
		resp.ToCurrency = currencyFromDomain(t.ToCurrency)
	}

	if t.FromNetwork != nil {
		resp.FromNetwork = networkFromDomain(t.FromNetwork)
	}

	if t.ToNetwork != nil {
		resp.ToNetwork = networkFromDomain(t.ToNetwork)
	}

	return resp
}

// TransactionsFromDomain converts domain ledger entries to transport form.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// StatusUpdateResponse is the reduced entry returned from status updates.
type StatusUpdateResponse struct {
	ID        string       `json:"id"`
	Status    string       `json:"status"`
	UpdatedAt time.Time    `json:"updated_at"`
	User      *UserSummary `json:"user"`
}

// StatusUpdateFromDomain converts a domain ledger entry to the reduced
// status-update response.
func StatusUpdateFromDomain(t *domain.Transaction) *StatusUpdateResponse {
	resp := &StatusUpdateResponse{
		ID:        t.ID,
		Status:    string(t.Status),
		UpdatedAt: t.UpdatedAt,
	}

	if t.User != nil {
		resp.User = &UserSummary{ID: t.User.ID, Name: t.User.Name, Email: t.User.Email}
	}

	return resp
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Status:    string(u.Status),
		Balance:   u.Balance.StringFixed(2),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func currencyFromDomain(c *domain.Currency) *CurrencyResponse {
	return &CurrencyResponse{ID: c.ID, Code: c.Code, Name: c.Name}
}

func networkFromDomain(n *domain.Network) *NetworkResponse {
	return &NetworkResponse{ID: n.ID, Code: n.Code, Name: n.Name}
}
