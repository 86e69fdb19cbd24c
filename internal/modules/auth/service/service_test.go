package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	authDto "github.com/kickstarthq/talent-backend/internal/modules/auth/dto"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	if _, ok := f.accounts[account.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	stored := *account
	f.accounts[account.Email] = &stored
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	for _, account := range f.accounts {
		if account.ID.String() == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	stored := *account
	f.accounts[account.Email] = &stored
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	for email, account := range f.accounts {
		if account.ID.String() == id {
			delete(f.accounts, email)
		}
	}
	return nil
}

func (f *fakeAccountRepo) CountByRole(ctx context.Context, role entity.AccountRole) (int64, error) {
	var count int64
	for _, account := range f.accounts {
		if account.Role == role {
			count++
		}
	}
	return count, nil
}

func signUpInput() authDto.SignUpInput {
	return authDto.SignUpInput{
		Email:    "ada@example.com",
		Password: "correct horse",
		FullName: "Ada Lovelace",
		Role:     "student",
	}
}

func TestSignUp(t *testing.T) {
	t.Run("creates account and issues token", func(t *testing.T) {
		svc := NewAuthService(newFakeAccountRepo())

		resp, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "/onboarding", resp.Redirect)
		assert.Empty(t, resp.Account.PasswordHash)
	})

	t.Run("admin role is rejected", func(t *testing.T) {
		svc := NewAuthService(newFakeAccountRepo())

		input := signUpInput()
		input.Role = "admin"
		_, err := svc.SignUp(context.Background(), input)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		svc := NewAuthService(newFakeAccountRepo())

		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		_, err = svc.SignUp(context.Background(), signUpInput())
		assert.ErrorIs(t, err, apperror.ErrEmailTaken)
		assert.Equal(t, http.StatusConflict, apperror.MapErrorToStatus(err))
	})
}

func TestLogin(t *testing.T) {
	t.Run("wrong password maps to 401", func(t *testing.T) {
		svc := NewAuthService(newFakeAccountRepo())
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), authDto.LoginInput{
			Email:    "ada@example.com",
			Password: "wrong horse",
		})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, apperror.MapErrorToStatus(err))
	})

	t.Run("unknown email fails the same way as a wrong password", func(t *testing.T) {
		svc := NewAuthService(newFakeAccountRepo())

		_, err := svc.Login(context.Background(), authDto.LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc := NewAuthService(newFakeAccountRepo())
		_, err := svc.SignUp(context.Background(), signUpInput())
		require.NoError(t, err)

		resp, err := svc.Login(context.Background(), authDto.LoginInput{
			Email:    "ada@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, entity.RoleStudent, resp.Account.Role)
	})
}
