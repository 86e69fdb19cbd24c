package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	search "github.com/kickstarthq/talent-backend/internal/modules/search/service"
	startupDto "github.com/kickstarthq/talent-backend/internal/modules/startup/dto"
	startupRepo "github.com/kickstarthq/talent-backend/internal/modules/startup/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
	"github.com/kickstarthq/talent-backend/pkg/storage"
	"gorm.io/gorm"
)

type StartupService interface {
	GetStartup(ctx context.Context, actor entity.Actor, startupID uuid.UUID) (*entity.Startup, error)
	GetMyStartup(ctx context.Context, actor entity.Actor) (*entity.Startup, error)
	UpdateStartupProfile(ctx context.Context, actor entity.Actor, input startupDto.UpdateStartupInput) (*entity.Startup, error)
	UploadLogo(ctx context.Context, actor entity.Actor, file *commonDto.UploadFile) (string, error)
	Directory(ctx context.Context, filter startupDto.StartupFilter) (*startupDto.PaginatedStartupResponse, error)
}

type startupService struct {
	repo        startupRepo.StartupRepository
	search      search.SearchService
	fileStorage storage.FileStorage
}

func NewStartupService(repo startupRepo.StartupRepository, searchSvc search.SearchService, fileStorage storage.FileStorage) StartupService {
	return &startupService{repo: repo, search: searchSvc, fileStorage: fileStorage}
}

// GetStartup returns the public view of a startup with its active roles.
// Unverified startups are visible only to their owner and admins.
func (s *startupService) GetStartup(ctx context.Context, actor entity.Actor, startupID uuid.UUID) (*entity.Startup, error) {
	owned := actor.CanModify(startupID)

	startup, err := s.repo.FindByIDWithRoles(ctx, startupID, !owned)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !owned && !startup.IsVerified {
		return nil, apperror.ErrNotFound
	}

	return startup, nil
}

func (s *startupService) GetMyStartup(ctx context.Context, actor entity.Actor) (*entity.Startup, error) {
	if actor.Role != entity.RoleStartup {
		return nil, apperror.ErrForbidden
	}
	return s.GetStartup(ctx, actor, actor.ID)
}

func (s *startupService) UpdateStartupProfile(ctx context.Context, actor entity.Actor, input startupDto.UpdateStartupInput) (*entity.Startup, error) {
	if actor.Role != entity.RoleStartup {
		return nil, apperror.ErrForbidden
	}

	startup, err := s.findOrInit(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	ApplyProfileUpdate(startup, input)
	if startup.CompanyName == "" {
		return nil, apperror.ErrInvalidInput
	}

	if err := s.repo.Upsert(ctx, startup); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, actor.ID)
}

func (s *startupService) UploadLogo(ctx context.Context, actor entity.Actor, file *commonDto.UploadFile) (string, error) {
	if actor.Role != entity.RoleStartup {
		return "", apperror.ErrForbidden
	}
	if file == nil || file.Reader == nil || s.fileStorage == nil {
		return "", apperror.ErrBadRequest
	}

	url, err := s.fileStorage.UploadFile(ctx, file.Reader, "logos", file.FileName)
	if err != nil {
		return "", err
	}

	startup, err := s.findOrInit(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if startup.CompanyName == "" {
		// Logo before profile: keep a placeholder so the row satisfies NOT NULL.
		startup.CompanyName = "Unnamed Startup"
	}
	startup.LogoURL = &url
	if err := s.repo.Upsert(ctx, startup); err != nil {
		return "", err
	}

	if _, err := s.reloadAndIndex(ctx, actor.ID); err != nil {
		return "", err
	}

	return url, nil
}

// Directory lists verified startups only. Students browse this without
// seeing anything awaiting admin review.
func (s *startupService) Directory(ctx context.Context, filter startupDto.StartupFilter) (*startupDto.PaginatedStartupResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	verified := true
	startups, total, err := s.repo.Directory(ctx, filter, &verified)
	if err != nil {
		return nil, err
	}

	return &startupDto.PaginatedStartupResponse{
		Data: startups,
		Meta: commonDto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

func (s *startupService) findOrInit(ctx context.Context, accountID uuid.UUID) (*entity.Startup, error) {
	startup, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.Startup{AccountID: accountID}, nil
		}
		return nil, err
	}
	startup.Account = nil
	startup.Roles = nil
	return startup, nil
}

func (s *startupService) reloadAndIndex(ctx context.Context, accountID uuid.UUID) (*entity.Startup, error) {
	startup, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		_ = s.search.IndexStartup(startup)
	}

	return startup, nil
}

// ApplyProfileUpdate copies the non-nil fields of a partial update onto
// the entity. Shared with the onboarding flow.
func ApplyProfileUpdate(startup *entity.Startup, input startupDto.UpdateStartupInput) {
	if input.CompanyName != nil {
		startup.CompanyName = *input.CompanyName
	}
	if input.Tagline != nil {
		startup.Tagline = input.Tagline
	}
	if input.Description != nil {
		startup.Description = input.Description
	}
	if input.Website != nil {
		startup.Website = input.Website
	}
	if input.Stage != nil {
		startup.Stage = input.Stage
	}
	if input.Industry != nil {
		startup.Industry = input.Industry
	}
	if input.TeamSize != nil {
		startup.TeamSize = input.TeamSize
	}
	if input.FoundedYear != nil {
		startup.FoundedYear = input.FoundedYear
	}
	if input.Location != nil {
		startup.Location = input.Location
	}
	if input.TwitterURL != nil {
		startup.TwitterURL = input.TwitterURL
	}
	if input.LinkedinURL != nil {
		startup.LinkedinURL = input.LinkedinURL
	}
}
