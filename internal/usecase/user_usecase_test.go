package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase"
	"github.com/arfin-foysal/crypto-sub001/internal/usecase/mocks"
)

func newUserUseCase() (*usecase.UserUseCase, *mocks.MockUserRepository) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator(), nil)

	return uc, userRepo
}

func TestRegisterUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, _ := newUserUseCase()

		user, err := uc.RegisterUser(context.Background(), usecase.RegisterUserInput{
			Email:    "  Alice@Example.COM ",
			Name:     "Alice",
			Password: "Sup3rSecret",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, domain.RoleCustomer, user.Role)
		assert.Equal(t, domain.UserStatusPending, user.Status)
		assert.True(t, user.Balance.IsZero())
		assert.NotEqual(t, "Sup3rSecret", user.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("Sup3rSecret")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		uc, _ := newUserUseCase()

		input := usecase.RegisterUserInput{
			Email:    "bob@example.com",
			Name:     "Bob",
			Password: "Sup3rSecret",
		}
		_, err := uc.RegisterUser(context.Background(), input)
		require.NoError(t, err)

		_, err = uc.RegisterUser(context.Background(), input)
		require.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		uc, _ := newUserUseCase()

		_, err := uc.RegisterUser(context.Background(), usecase.RegisterUserInput{
			Email:    "not-an-email",
			Name:     "Bob",
			Password: "Sup3rSecret",
		})

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("weak password", func(t *testing.T) {
		uc, _ := newUserUseCase()

		_, err := uc.RegisterUser(context.Background(), usecase.RegisterUserInput{
			Email:    "bob@example.com",
			Name:     "Bob",
			Password: "password",
		})

		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestAuthenticate(t *testing.T) {
	uc, _ := newUserUseCase()

	_, err := uc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Email:    "carol@example.com",
		Name:     "Carol",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), "Carol@Example.com", "Sup3rSecret")
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "carol@example.com", "Wr0ngSecret")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), "nobody@example.com", "Sup3rSecret")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestUserStatusLifecycle(t *testing.T) {
	uc, userRepo := newUserUseCase()

	user, err := uc.RegisterUser(context.Background(), usecase.RegisterUserInput{
		Email:    "dave@example.com",
		Name:     "Dave",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	require.Equal(t, domain.UserStatusPending, user.Status)

	require.NoError(t, uc.ActivateUser(context.Background(), user.ID))

	got, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, got.Status)
	assert.True(t, got.CanWithdraw())

	require.NoError(t, uc.FreezeUser(context.Background(), user.ID))

	got, err = userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusFrozen, got.Status)
	assert.False(t, got.CanDeposit())
	assert.False(t, got.CanWithdraw())

	assert.ErrorIs(t, uc.ActivateUser(context.Background(), "missing"), domain.ErrUserNotFound)
}
