package postgres

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

// ULIDGenerator generates ULID-based primary IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// TransactionReferenceGenerator generates caller-facing transaction
// references and UID correlation tokens.
type TransactionReferenceGenerator struct{}

// NewTransactionReferenceGenerator creates a new TransactionReferenceGenerator.
func NewTransactionReferenceGenerator() *TransactionReferenceGenerator {
	return &TransactionReferenceGenerator{}
}

const referenceSuffixDigits = 6

// NewReference builds a reference like DEP-20260901143501-482913. The caller
// re-checks uniqueness before insert; the unique index on transaction_id is
// the final guard.
func (g *TransactionReferenceGenerator) NewReference(txType domain.TransactionType) string {
	prefix := "TXN"

	switch txType {
	case domain.TransactionTypeDeposit:
		prefix = "DEP"
	case domain.TransactionTypeWithdraw:
		prefix = "WDL"
	}

	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102150405"), randomDigits(referenceSuffixDigits))
}

// NewUID returns an opaque correlation token.
func (g *TransactionReferenceGenerator) NewUID() string {
	return uuid.NewString()
}

func randomDigits(n int) string {
	var b strings.Builder

	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken; fall back to a time-derived digit.
			b.WriteByte(byte('0' + time.Now().UnixNano()%10))
			continue
		}

		b.WriteByte(byte('0' + d.Int64()))
	}

	return b.String()
}
