package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType selects which fee schedule applies to a transaction.
type FeeType string

const (
	FeeTypeDeposit FeeType = "DEPOSIT"
	FeeTypeWire    FeeType = "WIRE"
	FeeTypeCrypto  FeeType = "CRYPTO"
)

// FeeSchedule is a percentage fee looked up by type at entry creation.
// Read-only from the ledger's point of view.
type FeeSchedule struct {
	ID        string
	FeeType   FeeType
	Fee       decimal.Decimal // percentage, e.g. 2 means 2%
	CreatedAt time.Time
	UpdatedAt time.Time
}
