package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/metrics"
)

// TransactionUseCase is the only component with write authority over the
// ledger and user balances. Every balance mutation happens in the same
// database transaction as the ledger write that causes it.
type TransactionUseCase struct {
	txManager TransactionManager
	retrier   Retrier
	userRepo  UserRepository
	txnRepo   TransactionRepository
	refs      ReferenceStore
	idGen     IDGenerator
	refGen    ReferenceGenerator
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	baseCurrencyID string
	baseNetworkID  string
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	retrier Retrier,
	userRepo UserRepository,
	txnRepo TransactionRepository,
	refs ReferenceStore,
	idGen IDGenerator,
	refGen ReferenceGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
	baseCurrencyID, baseNetworkID string,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:      txManager,
		retrier:        retrier,
		userRepo:       userRepo,
		txnRepo:        txnRepo,
		refs:           refs,
		idGen:          idGen,
		refGen:         refGen,
		logger:         logger,
		metrics:        m,
		baseCurrencyID: baseCurrencyID,
		baseNetworkID:  baseNetworkID,
	}
}

// retry runs fn through the configured retrier when one is present.
func (uc *TransactionUseCase) retry(ctx context.Context, fn func() error) error {
	if uc.retrier == nil {
		return fn()
	}

	return uc.retrier.Retry(ctx, fn)
}

// CreateTransactionInput represents input for creating a deposit or
// withdrawal ledger entry.
type CreateTransactionInput struct {
	UserID         string
	Amount         decimal.Decimal
	FeeType        domain.FeeType
	ChargeAmount   decimal.Decimal
	FromCurrencyID *string
	ToCurrencyID   *string
	FromNetworkID  *string
	ToNetworkID    *string
	Status         *domain.TransactionStatus
	Note           string
}

// CreateDeposit records a deposit for a user.
func (uc *TransactionUseCase) CreateDeposit(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	return uc.create(ctx, domain.TransactionTypeDeposit, input, "create deposit")
}

// CreateWithdrawal records a withdrawal for a user.
func (uc *TransactionUseCase) CreateWithdrawal(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	return uc.create(ctx, domain.TransactionTypeWithdraw, input, "create withdrawal")
}

func (uc *TransactionUseCase) create(ctx context.Context, txType domain.TransactionType, input CreateTransactionInput, op string) (*domain.Transaction, error) {
	start := time.Now()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, uc.wrap(op, err)
	}

	if err := domain.ValidateChargeAmount(input.ChargeAmount); err != nil {
		return nil, uc.wrap(op, err)
	}

	if err := domain.ValidateNote(input.Note); err != nil {
		return nil, uc.wrap(op, err)
	}

	status := domain.StatusPending
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, uc.wrap(op, &domain.ValidationError{Field: "status", Message: "unknown status"})
		}

		status = *input.Status
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, uc.wrap(op, err)
	}

	if err := uc.checkAccountState(user, txType); err != nil {
		return nil, uc.wrap(op, err)
	}

	feePercent := uc.lookupFeePercent(ctx, input.FeeType)
	feeAmount, afterFeeAmount := domain.ComputeAmounts(input.Amount, feePercent, input.ChargeAmount)

	// Fee plus charge exceeding the gross amount would produce a negative
	// net credit; rejected here rather than silently recorded.
	if afterFeeAmount.IsNegative() {
		return nil, uc.wrap(op, &domain.ValidationError{Field: "amount", Message: "fee and charge exceed amount"})
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:             uc.idGen.Generate(),
		UID:            uc.refGen.NewUID(),
		Type:           txType,
		Status:         status,
		Amount:         input.Amount.Round(2),
		FeeAmount:      feeAmount,
		ChargeAmount:   input.ChargeAmount.Round(2),
		AfterFeeAmount: afterFeeAmount,
		AfterBalance:   user.Balance.Add(afterFeeAmount).Round(2),
		UserID:         user.ID,
		Note:           input.Note,
		CreatedAt:      now,
		UpdatedAt:      now,
		User:           user,
	}

	uc.resolveReferences(ctx, txn, input)

	if err := txn.Validate(); err != nil {
		return nil, uc.wrap(op, err)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	// Allocation pre-checks the reference, but two concurrent creates can
	// still collide at insert; the unique constraint rejects the loser and
	// the loop regenerates. Serialization aborts replay through the retrier.
	for attempt := 0; ; attempt++ {
		ref, err := uc.allocateReference(txCtx, txType)
		if err != nil {
			return nil, uc.wrap(op, err)
		}
		txn.TransactionID = ref

		err = uc.retry(txCtx, func() error {
			return uc.commitCreate(txCtx, txn, status, op)
		})
		if err == nil {
			break
		}

		if errors.Is(err, domain.ErrDuplicateReference) {
			if attempt+1 >= MaxReferenceAttempts {
				return nil, uc.wrap(op, domain.ErrDuplicateReference)
			}

			uc.logger.Warn().Str("reference", ref).Int("attempt", attempt+1).Msg("transaction reference collided at insert, regenerating")
			continue
		}

		return nil, err
	}

	if status == domain.StatusCompleted && uc.metrics != nil {
		uc.metrics.BalanceApplied.WithLabelValues(string(txType)).Inc()
	}

	uc.observeCreate(txType, input.Amount, start)

	return txn, nil
}

// commitCreate writes the ledger entry and, for entries created already
// completed, the balance change, in one database transaction. The user's
// real balance moves only when the entry is completed at creation.
func (uc *TransactionUseCase) commitCreate(ctx context.Context, txn *domain.Transaction, status domain.TransactionStatus, op string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return uc.persistence(op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		if errors.Is(err, domain.ErrDuplicateReference) {
			return err
		}

		return uc.persistence(op, err)
	}

	if status == domain.StatusCompleted {
		newBalance, err := uc.userRepo.IncrementBalance(ctx, tx, txn.UserID, txn.AfterFeeAmount, txn.CreatedAt)
		if err != nil {
			return uc.persistence(op, err)
		}

		if err := uc.txnRepo.UpdateAfterBalance(ctx, tx, txn.ID, newBalance, txn.CreatedAt); err != nil {
			return uc.persistence(op, err)
		}

		txn.AfterBalance = newBalance
		if txn.User != nil {
			txn.User.Balance = newBalance
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uc.persistence(op, err)
	}

	return nil
}

// UpdateDepositStatus moves a deposit entry to a new status.
func (uc *TransactionUseCase) UpdateDepositStatus(ctx context.Context, id string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	return uc.updateStatus(ctx, domain.TransactionTypeDeposit, id, newStatus, "update deposit status")
}

// UpdateWithdrawalStatus moves a withdrawal entry to a new status.
func (uc *TransactionUseCase) UpdateWithdrawalStatus(ctx context.Context, id string, newStatus domain.TransactionStatus) (*domain.Transaction, error) {
	return uc.updateStatus(ctx, domain.TransactionTypeWithdraw, id, newStatus, "update withdrawal status")
}

func (uc *TransactionUseCase) updateStatus(ctx context.Context, txType domain.TransactionType, id string, newStatus domain.TransactionStatus, op string) (*domain.Transaction, error) {
	start := time.Now()

	if !newStatus.IsValid() {
		return nil, uc.wrap(op, &domain.ValidationError{Field: "status", Message: "unknown status"})
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	var (
		txn *domain.Transaction
		now time.Time
	)

	// The whole locked read-check-write runs as one unit so a deadlock or
	// serialization abort replays it from a fresh snapshot.
	err := uc.retry(txCtx, func() error {
		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return uc.persistence(op, err)
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		txn, err = uc.txnRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return uc.wrap(op, err)
		}

		if txn.Type != txType {
			return uc.wrap(op, &domain.WrongTransactionTypeError{Requested: txType, Actual: txn.Type})
		}

		if !domain.IsTransitionAllowed(txn.Type, txn.Status, newStatus) {
			if uc.metrics != nil {
				uc.metrics.TransitionRejected.WithLabelValues(string(txn.Type), string(txn.Status), string(newStatus)).Inc()
			}

			return uc.wrap(op, domain.NewInvalidTransitionError(txn.Type, txn.Status, newStatus))
		}

		now = time.Now().UTC()

		switch {
		case newStatus == domain.StatusCompleted:
			// AfterBalance is recomputed against the balance at completion
			// time, not creation time. Drift between entries is expected.
			newBalance, err := uc.userRepo.IncrementBalance(txCtx, tx, txn.UserID, txn.AfterFeeAmount, now)
			if err != nil {
				return uc.persistence(op, err)
			}

			if err := uc.txnRepo.UpdateStatusAndBalance(txCtx, tx, id, newStatus, newBalance, now); err != nil {
				return uc.persistence(op, err)
			}

			txn.AfterBalance = newBalance

		default:
			// Includes COMPLETED -> REFUND, which deliberately does not
			// reverse the balance; refund accounting is reconciled elsewhere.
			if err := uc.txnRepo.UpdateStatus(txCtx, tx, id, newStatus, now); err != nil {
				return uc.persistence(op, err)
			}
		}

		if err := tx.Commit(txCtx); err != nil {
			return uc.persistence(op, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	fromStatus := txn.Status
	txn.Status = newStatus
	txn.UpdatedAt = now

	if user, err := uc.userRepo.GetByID(ctx, txn.UserID); err == nil {
		txn.User = user
	} else {
		uc.logger.Warn().Err(err).Str("user_id", txn.UserID).Msg("could not load user for status response")
	}

	if uc.metrics != nil {
		uc.metrics.StatusTransitions.WithLabelValues(string(txn.Type), string(fromStatus), string(newStatus)).Inc()
		uc.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if newStatus == domain.StatusCompleted {
			uc.metrics.BalanceApplied.WithLabelValues(string(txn.Type)).Inc()
		}
	}

	return txn, nil
}

// GetTransaction retrieves a ledger entry by id.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListUserTransactionsInput represents input for listing a user's history.
type ListUserTransactionsInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListUserTransactions lists the transaction history of a user.
func (uc *TransactionUseCase) ListUserTransactions(ctx context.Context, input ListUserTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.txnRepo.ListByUser(ctx, input.UserID, limit, offset)
}

func (uc *TransactionUseCase) checkAccountState(user *domain.User, txType domain.TransactionType) error {
	switch txType {
	case domain.TransactionTypeDeposit:
		if !user.CanDeposit() {
			return domain.ErrAccountFrozen
		}
	case domain.TransactionTypeWithdraw:
		if user.Status == domain.UserStatusFrozen {
			return domain.ErrAccountFrozen
		}
		if !user.CanWithdraw() {
			return domain.ErrAccountNotActive
		}
	}

	return nil
}

// lookupFeePercent returns the percentage for a fee type, defaulting to zero
// when no schedule exists. The fallback is an explicit policy, never an error.
func (uc *TransactionUseCase) lookupFeePercent(ctx context.Context, feeType domain.FeeType) decimal.Decimal {
	schedule, err := uc.refs.FindFeeByType(ctx, feeType)
	if err != nil {
		if !errors.Is(err, domain.ErrFeeScheduleNotFound) {
			uc.logger.Error().Err(err).Str("fee_type", string(feeType)).Msg("fee schedule lookup failed, defaulting fee to zero")
		} else {
			uc.logger.Warn().Str("fee_type", string(feeType)).Msg("fee schedule not found, defaulting fee to zero")
		}

		if uc.metrics != nil {
			uc.metrics.FeeScheduleFallbacks.Inc()
		}

		return decimal.Zero
	}

	return schedule.Fee
}

// resolveReferences fills the currency/network ids and resolved entities,
// falling back to the configured base currency/network when an id is absent
// or unknown. Fallbacks are logged, never silent.
func (uc *TransactionUseCase) resolveReferences(ctx context.Context, txn *domain.Transaction, input CreateTransactionInput) {
	txn.FromCurrency, txn.FromCurrencyID = uc.resolveCurrency(ctx, input.FromCurrencyID, "from_currency")
	txn.ToCurrency, txn.ToCurrencyID = uc.resolveCurrency(ctx, input.ToCurrencyID, "to_currency")
	txn.FromNetwork, txn.FromNetworkID = uc.resolveNetwork(ctx, input.FromNetworkID, "from_network")
	txn.ToNetwork, txn.ToNetworkID = uc.resolveNetwork(ctx, input.ToNetworkID, "to_network")
}

func (uc *TransactionUseCase) resolveCurrency(ctx context.Context, id *string, field string) (*domain.Currency, *string) {
	lookupID := uc.baseCurrencyID
	if id != nil {
		lookupID = *id
	}

	if lookupID == "" {
		return nil, nil
	}

	currency, err := uc.refs.FindCurrencyByID(ctx, lookupID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("field", field).Str("currency_id", lookupID).Msg("currency lookup failed, falling back to base currency")

		if lookupID == uc.baseCurrencyID || uc.baseCurrencyID == "" {
			return nil, nil
		}

		currency, err = uc.refs.FindCurrencyByID(ctx, uc.baseCurrencyID)
		if err != nil {
			return nil, nil
		}
	}

	return currency, &currency.ID
}

func (uc *TransactionUseCase) resolveNetwork(ctx context.Context, id *string, field string) (*domain.Network, *string) {
	lookupID := uc.baseNetworkID
	if id != nil {
		lookupID = *id
	}

	if lookupID == "" {
		return nil, nil
	}

	network, err := uc.refs.FindNetworkByID(ctx, lookupID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("field", field).Str("network_id", lookupID).Msg("network lookup failed, falling back to base network")

		if lookupID == uc.baseNetworkID || uc.baseNetworkID == "" {
			return nil, nil
		}

		network, err = uc.refs.FindNetworkByID(ctx, uc.baseNetworkID)
		if err != nil {
			return nil, nil
		}
	}

	return network, &network.ID
}

// allocateReference generates a transaction reference and re-checks
// uniqueness before insert, regenerating on collision. The transactions
// table carries a unique constraint as the final guard.
func (uc *TransactionUseCase) allocateReference(ctx context.Context, txType domain.TransactionType) (string, error) {
	for attempt := 0; attempt < MaxReferenceAttempts; attempt++ {
		ref := uc.refGen.NewReference(txType)

		exists, err := uc.txnRepo.ExistsByReference(ctx, ref)
		if err != nil {
			return "", err
		}

		if !exists {
			return ref, nil
		}

		uc.logger.Warn().Str("reference", ref).Int("attempt", attempt+1).Msg("transaction reference collision, regenerating")
	}

	return "", domain.ErrDuplicateReference
}

func (uc *TransactionUseCase) observeCreate(txType domain.TransactionType, amount decimal.Decimal, start time.Time) {
	if uc.metrics == nil {
		return
	}

	switch txType {
	case domain.TransactionTypeDeposit:
		uc.metrics.DepositsCreated.Inc()
	case domain.TransactionTypeWithdraw:
		uc.metrics.WithdrawalsCreated.Inc()
	}

	amt, _ := amount.Float64()
	uc.metrics.TransactionAmount.WithLabelValues(string(txType)).Observe(amt)
	uc.metrics.OperationDuration.WithLabelValues("create_" + string(txType)).Observe(time.Since(start).Seconds())
}

func (uc *TransactionUseCase) wrap(op string, err error) error {
	return fmt.Errorf("failed to %s: %w", op, err)
}

func (uc *TransactionUseCase) persistence(op string, err error) error {
	if uc.metrics != nil {
		uc.metrics.DBErrors.WithLabelValues(op).Inc()
	}

	return &domain.PersistenceError{Op: op, Err: err}
}
