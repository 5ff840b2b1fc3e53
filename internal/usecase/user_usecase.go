package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/infrastructure/metrics"
)

// UserUseCase handles account management operations
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
	metrics  *metrics.Metrics
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, m *metrics.Metrics) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
		metrics:  m,
	}
}

// RegisterUserInput represents input for registering a user
type RegisterUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// RegisterUser creates a new account with a zero balance. The account starts
// PENDING until identity verification, which happens outside this core,
// flips it to ACTIVE.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	if !role.IsValid() {
		return nil, &domain.ValidationError{Field: "role", Message: "unknown role"}
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, &domain.ValidationError{Field: "email", Message: "email already registered"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          email,
		Name:           strings.TrimSpace(input.Name),
		HashedPassword: string(hashed),
		Role:           role,
		Status:         domain.UserStatusPending,
		Balance:        decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.UsersRegistered.Inc()
	}

	return user, nil
}

// Authenticate verifies an email/password pair.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// ActivateUser marks an account as verified.
func (uc *UserUseCase) ActivateUser(ctx context.Context, id string) error {
	return uc.setStatus(ctx, id, domain.UserStatusActive)
}

// FreezeUser blocks an account from transacting.
func (uc *UserUseCase) FreezeUser(ctx context.Context, id string) error {
	return uc.setStatus(ctx, id, domain.UserStatusFrozen)
}

func (uc *UserUseCase) setStatus(ctx context.Context, id string, status domain.UserStatus) error {
	// Confirm the user exists so a missing id surfaces as not-found
	// rather than a silent no-op update.
	if _, err := uc.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.userRepo.UpdateStatus(ctx, id, status, time.Now().UTC())
}

// ListUsersInput represents input for listing users.
type ListUsersInput struct {
	Limit  int
	Offset int
}

// ListUsers lists users with pagination.
func (uc *UserUseCase) ListUsers(ctx context.Context, input ListUsersInput) ([]*domain.User, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.userRepo.List(ctx, limit, offset)
}
