package service

import (
	"context"
	"errors"

	"github.com/kickstarthq/talent-backend/internal/entity"
	authRepo "github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
	profileDto "github.com/kickstarthq/talent-backend/internal/modules/profile/dto"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
	"github.com/kickstarthq/talent-backend/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfileService interface {
	UpdateAccount(ctx context.Context, actor entity.Actor, input profileDto.UpdateAccountInput) (*entity.Account, error)
	ChangePassword(ctx context.Context, actor entity.Actor, input profileDto.ChangePasswordInput) error
	UploadAvatar(ctx context.Context, actor entity.Actor, file *commonDto.UploadFile) (string, error)
}

type profileService struct {
	accountRepo authRepo.AccountRepository
	fileStorage storage.FileStorage
}

func NewProfileService(accountRepo authRepo.AccountRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{accountRepo: accountRepo, fileStorage: fileStorage}
}

func (s *profileService) UpdateAccount(ctx context.Context, actor entity.Actor, input profileDto.UpdateAccountInput) (*entity.Account, error) {
	account, err := s.load(ctx, actor)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		account.FullName = *input.FullName
	}
	if input.Phone != nil {
		account.Phone = input.Phone
	}
	if input.Location != nil {
		account.Location = input.Location
	}
	if input.LinkedinURL != nil {
		account.LinkedinURL = input.LinkedinURL
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *profileService) ChangePassword(ctx context.Context, actor entity.Actor, input profileDto.ChangePasswordInput) error {
	account, err := s.load(ctx, actor)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperror.ErrUnauthorized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account.PasswordHash = string(hashed)
	return s.accountRepo.Update(ctx, account)
}

func (s *profileService) UploadAvatar(ctx context.Context, actor entity.Actor, file *commonDto.UploadFile) (string, error) {
	if file == nil || file.Reader == nil || s.fileStorage == nil {
		return "", apperror.ErrBadRequest
	}

	account, err := s.load(ctx, actor)
	if err != nil {
		return "", err
	}

	url, err := s.fileStorage.UploadFile(ctx, file.Reader, "avatars", file.FileName)
	if err != nil {
		return "", err
	}

	if account.AvatarURL != nil && *account.AvatarURL != "" {
		_ = s.fileStorage.DeleteFile(ctx, *account.AvatarURL)
	}

	account.AvatarURL = &url
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return "", err
	}

	return url, nil
}

func (s *profileService) load(ctx context.Context, actor entity.Actor) (*entity.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	account.Student = nil
	account.Startup = nil
	return account, nil
}
