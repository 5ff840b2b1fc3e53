package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeAmounts(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		feePercent   string
		charge       string
		wantFee      string
		wantAfterFee string
	}{
		{"two percent fee", "100.00", "2", "0", "2.00", "98.00"},
		{"zero fee", "100.00", "0", "0", "0.00", "100.00"},
		{"fee with charge", "250.00", "1.5", "4.25", "3.75", "242.00"},
		{"rounding fee half up", "33.33", "2.5", "0", "0.83", "32.50"},
		{"full percent", "10.00", "100", "0", "10.00", "0.00"},
		{"charge only", "75.50", "0", "5.50", "0.00", "70.00"},
		{"charge exceeds amount goes negative", "10.00", "2", "15.00", "0.20", "-5.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, afterFee := domain.ComputeAmounts(dec(tt.amount), dec(tt.feePercent), dec(tt.charge))

			assert.Equal(t, tt.wantFee, fee.StringFixed(2))
			assert.Equal(t, tt.wantAfterFee, afterFee.StringFixed(2))
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := func() *domain.Transaction {
		return &domain.Transaction{
			Type:           domain.TransactionTypeDeposit,
			Status:         domain.StatusPending,
			Amount:         dec("100.00"),
			FeeAmount:      dec("2.00"),
			ChargeAmount:   decimal.Zero,
			AfterFeeAmount: dec("98.00"),
		}
	}

	t.Run("valid entry", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		txn := valid()
		txn.Type = "TRANSFER"

		var verr *domain.ValidationError
		assert.ErrorAs(t, txn.Validate(), &verr)
		assert.Equal(t, "transaction_type", verr.Field)
	})

	t.Run("unknown status", func(t *testing.T) {
		txn := valid()
		txn.Status = "ARCHIVED"

		var verr *domain.ValidationError
		assert.ErrorAs(t, txn.Validate(), &verr)
		assert.Equal(t, "status", verr.Field)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		txn := valid()
		txn.Amount = decimal.Zero

		assert.Error(t, txn.Validate())
	})

	t.Run("negative charge", func(t *testing.T) {
		txn := valid()
		txn.ChargeAmount = dec("-1.00")

		assert.Error(t, txn.Validate())
	})

	t.Run("fee and charge exceeding amount", func(t *testing.T) {
		txn := valid()
		txn.ChargeAmount = dec("99.00")
		txn.AfterFeeAmount = dec("-1.00")

		var verr *domain.ValidationError
		assert.ErrorAs(t, txn.Validate(), &verr)
		assert.Equal(t, "amount", verr.Field)
	})
}
