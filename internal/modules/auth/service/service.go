package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"github.com/kickstarthq/talent-backend/internal/middleware"
	"github.com/kickstarthq/talent-backend/internal/modules/auth/dto"
	"github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	CurrentAccount(ctx context.Context, actor entity.Actor) (*entity.Account, error)
}

type authService struct {
	repo     repository.AccountRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.AccountRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpInput) (*dto.AuthResponse, error) {
	role := entity.AccountRole(input.Role)
	if role != entity.RoleStudent && role != entity.RoleStartup {
		return nil, apperror.ErrInvalidInput
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &entity.Account{
		Role:         role,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrEmailTaken
		}
		return nil, err
	}

	return s.buildAuthResponse(account)
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	account, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown email and wrong password are indistinguishable.
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.buildAuthResponse(account)
}

func (s *authService) CurrentAccount(ctx context.Context, actor entity.Actor) (*entity.Account, error) {
	account, err := s.repo.FindByID(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

func (s *authService) buildAuthResponse(account *entity.Account) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.generateToken(account)
	if err != nil {
		return nil, err
	}

	account.PasswordHash = ""

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresAt,
		Account:     account,
		Redirect:    redirectFor(account),
	}, nil
}

func (s *authService) generateToken(account *entity.Account) (string, int64, error) {
	expiresAt := time.Now().Add(s.tokenTTL)

	claims := middleware.Claims{
		Role: string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", 0, err
	}

	return signed, expiresAt.Unix(), nil
}

func redirectFor(account *entity.Account) string {
	if !account.OnboardingCompleted && account.Role != entity.RoleAdmin {
		return "/onboarding"
	}
	switch account.Role {
	case entity.RoleStudent:
		return "/student/dashboard"
	case entity.RoleStartup:
		return "/startup/dashboard"
	case entity.RoleAdmin:
		return "/admin"
	}
	return "/"
}
