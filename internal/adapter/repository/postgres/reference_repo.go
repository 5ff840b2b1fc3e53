package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
)

// ReferenceRepository implements usecase.ReferenceStore over the fee_schedules,
// currencies and networks tables. All three are read-only from this core.
type ReferenceRepository struct {
	db querier
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return newReferenceRepository(pool)
}

func newReferenceRepository(db querier) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// FindFeeByType retrieves the fee schedule for a fee type.
func (r *ReferenceRepository) FindFeeByType(ctx context.Context, feeType domain.FeeType) (*domain.FeeSchedule, error) {
	var (
		schedule  domain.FeeSchedule
		ft        string
		fee       pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, fee_type, fee, created_at, updated_at
		FROM fee_schedules WHERE fee_type = $1`,
		string(feeType),
	).Scan(&schedule.ID, &ft, &fee, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeeScheduleNotFound
		}

		return nil, err
	}

	schedule.FeeType = domain.FeeType(ft)
	schedule.Fee = numericToDecimal(fee)
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// FindCurrencyByID retrieves a currency by ID.
func (r *ReferenceRepository) FindCurrencyByID(ctx context.Context, id string) (*domain.Currency, error) {
	var (
		currency  domain.Currency
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, code, name, created_at, updated_at
		FROM currencies WHERE id = $1`,
		id,
	).Scan(&currency.ID, &currency.Code, &currency.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCurrencyNotFound
		}

		return nil, err
	}

	currency.CreatedAt = createdAt.Time
	currency.UpdatedAt = updatedAt.Time

	return &currency, nil
}

// FindNetworkByID retrieves a network by ID.
func (r *ReferenceRepository) FindNetworkByID(ctx context.Context, id string) (*domain.Network, error) {
	var (
		network   domain.Network
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, `
		SELECT id, code, name, created_at, updated_at
		FROM networks WHERE id = $1`,
		id,
	).Scan(&network.ID, &network.Code, &network.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNetworkNotFound
		}

		return nil, err
	}

	network.CreatedAt = createdAt.Time
	network.UpdatedAt = updatedAt.Time

	return &network, nil
}
