package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db querier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, uid, transaction_id, transaction_type, status, amount,
	fee_amount, charge_amount, after_fee_amount, after_balance,
	from_currency_id, to_currency_id, from_network_id, to_network_id,
	user_id, note, created_at, updated_at`

// Create inserts a ledger entry inside the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		txn.ID,
		txn.UID,
		txn.TransactionID,
		string(txn.Type),
		string(txn.Status),
		decimalToNumeric(txn.Amount),
		decimalToNumeric(txn.FeeAmount),
		decimalToNumeric(txn.ChargeAmount),
		decimalToNumeric(txn.AfterFeeAmount),
		decimalToNumeric(txn.AfterBalance),
		txn.FromCurrencyID,
		txn.ToCurrencyID,
		txn.FromNetworkID,
		txn.ToNetworkID,
		txn.UserID,
		txn.Note,
		timeToPgTimestamptz(txn.CreatedAt),
		timeToPgTimestamptz(txn.UpdatedAt),
	)
	if isReferenceCollision(err) {
		return domain.ErrDuplicateReference
	}

	return err
}

// isReferenceCollision reports whether an insert hit the unique constraint
// guarding transaction references, so the caller can regenerate and retry.
func isReferenceCollision(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgErrUniqueViolation &&
		pgErr.ConstraintName == "transactions_reference_unique"
}

// GetByID retrieves a ledger entry by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return scanTransaction(row)
}

// GetByIDForUpdate retrieves a ledger entry by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)

	return scanTransaction(row)
}

// UpdateStatus updates the status of a ledger entry.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions SET status = $2, updated_at = $3 WHERE id = $1`,
		id,
		string(status),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// UpdateStatusAndBalance updates the status and the after-balance snapshot of
// a ledger entry in one statement.
func (r *TransactionRepository) UpdateStatusAndBalance(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, afterBalance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions SET status = $2, after_balance = $3, updated_at = $4 WHERE id = $1`,
		id,
		string(status),
		decimalToNumeric(afterBalance),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// UpdateAfterBalance updates only the after-balance snapshot of a ledger entry.
func (r *TransactionRepository) UpdateAfterBalance(ctx context.Context, tx usecase.Transaction, id string, afterBalance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE transactions SET after_balance = $2, updated_at = $3 WHERE id = $1`,
		id,
		decimalToNumeric(afterBalance),
		timeToPgTimestamptz(updatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ExistsByReference reports whether a ledger entry with the given
// caller-facing transaction reference exists.
func (r *TransactionRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`,
		reference,
	).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ListByUser lists a user's ledger entries, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID,
		int32(limit),
		int32(offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn            domain.Transaction
		txType         string
		status         string
		amount         pgtype.Numeric
		feeAmount      pgtype.Numeric
		chargeAmount   pgtype.Numeric
		afterFeeAmount pgtype.Numeric
		afterBalance   pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.UID,
		&txn.TransactionID,
		&txType,
		&status,
		&amount,
		&feeAmount,
		&chargeAmount,
		&afterFeeAmount,
		&afterBalance,
		&txn.FromCurrencyID,
		&txn.ToCurrencyID,
		&txn.FromNetworkID,
		&txn.ToNetworkID,
		&txn.UserID,
		&txn.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Type = domain.TransactionType(txType)
	txn.Status = domain.TransactionStatus(status)
	txn.Amount = numericToDecimal(amount)
	txn.FeeAmount = numericToDecimal(feeAmount)
	txn.ChargeAmount = numericToDecimal(chargeAmount)
	txn.AfterFeeAmount = numericToDecimal(afterFeeAmount)
	txn.AfterBalance = numericToDecimal(afterBalance)
	txn.CreatedAt = createdAt.Time
	txn.UpdatedAt = updatedAt.Time

	return &txn, nil
}
