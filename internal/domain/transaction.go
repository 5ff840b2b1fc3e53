package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one deposit or withdrawal ledger entry. Entries are
// append-only: status changes mutate Status/AfterBalance/UpdatedAt, nothing
// is ever deleted.
type Transaction struct {
	ID             string
	UID            string
	TransactionID  string
	Type           TransactionType
	Status         TransactionStatus
	Amount         decimal.Decimal
	FeeAmount      decimal.Decimal
	ChargeAmount   decimal.Decimal
	AfterFeeAmount decimal.Decimal
	AfterBalance   decimal.Decimal
	FromCurrencyID *string
	ToCurrencyID   *string
	FromNetworkID  *string
	ToNetworkID    *string
	UserID         string
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Resolved relations for transport formatting, nil when the reference
	// id is nil or the lookup fell back.
	User         *User
	FromCurrency *Currency
	ToCurrency   *Currency
	FromNetwork  *Network
	ToNetwork    *Network
}

// ComputeAmounts derives fee and net amounts from a gross amount. Fee is a
// percentage of the gross amount; both results are rounded to 2 decimal
// places, matching the precision of the stored columns.
func ComputeAmounts(amount, feePercent, chargeAmount decimal.Decimal) (feeAmount, afterFeeAmount decimal.Decimal) {
	feeAmount = amount.Mul(feePercent).Div(decimal.NewFromInt(100)).Round(2)
	afterFeeAmount = amount.Sub(feeAmount).Sub(chargeAmount).Round(2)

	return feeAmount, afterFeeAmount
}

// Validate checks the entry's internal consistency.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return &ValidationError{Field: "transaction_type", Message: "unknown transaction type"}
	}

	if !t.Status.IsValid() {
		return &ValidationError{Field: "status", Message: "unknown status"}
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "amount", Message: "amount must be positive"}
	}

	if t.ChargeAmount.IsNegative() {
		return &ValidationError{Field: "charge_amount", Message: "charge amount must not be negative"}
	}

	if t.AfterFeeAmount.IsNegative() {
		return &ValidationError{Field: "amount", Message: "fee and charge exceed amount"}
	}

	return nil
}
