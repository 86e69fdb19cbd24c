package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	adminDto "github.com/kickstarthq/talent-backend/internal/modules/admin/dto"
	applicationRepo "github.com/kickstarthq/talent-backend/internal/modules/application/repository"
	authRepo "github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
	notification "github.com/kickstarthq/talent-backend/internal/modules/notification/service"
	roleRepo "github.com/kickstarthq/talent-backend/internal/modules/role/repository"
	search "github.com/kickstarthq/talent-backend/internal/modules/search/service"
	startupDto "github.com/kickstarthq/talent-backend/internal/modules/startup/dto"
	startupRepo "github.com/kickstarthq/talent-backend/internal/modules/startup/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
	"gorm.io/gorm"
)

type AdminService interface {
	SetVerified(ctx context.Context, actor entity.Actor, startupID uuid.UUID, verified bool) (*entity.Startup, error)
	DeclineStartup(ctx context.Context, actor entity.Actor, startupID uuid.UUID) error
	ListStartups(ctx context.Context, actor entity.Actor, filter startupDto.StartupFilter, verified *bool) (*startupDto.PaginatedStartupResponse, error)
	Metrics(ctx context.Context, actor entity.Actor) (*adminDto.MetricsResponse, error)
}

type adminService struct {
	accountRepo     authRepo.AccountRepository
	startupRepo     startupRepo.StartupRepository
	roleRepo        roleRepo.RoleRepository
	applicationRepo applicationRepo.ApplicationRepository
	notifier        notification.NotificationService
	search          search.SearchService
}

func NewAdminService(
	accountRepo authRepo.AccountRepository,
	startupRepository startupRepo.StartupRepository,
	roleRepository roleRepo.RoleRepository,
	applicationRepository applicationRepo.ApplicationRepository,
	notifier notification.NotificationService,
	searchSvc search.SearchService,
) AdminService {
	return &adminService{
		accountRepo:     accountRepo,
		startupRepo:     startupRepository,
		roleRepo:        roleRepository,
		applicationRepo: applicationRepository,
		notifier:        notifier,
		search:          searchSvc,
	}
}

// SetVerified flips a startup's verification flag. Verifying makes the
// startup and its active roles discoverable; unverifying pulls them out.
func (s *adminService) SetVerified(ctx context.Context, actor entity.Actor, startupID uuid.UUID, verified bool) (*entity.Startup, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	rows, err := s.startupRepo.SetVerified(ctx, startupID, verified)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperror.ErrNotFound
	}

	startup, err := s.startupRepo.FindByID(ctx, startupID)
	if err != nil {
		return nil, err
	}

	s.reindexStartup(ctx, startup)

	message := fmt.Sprintf("%s has been verified and is now visible to students", startup.CompanyName)
	if !verified {
		message = fmt.Sprintf("%s has been unverified and is no longer visible to students", startup.CompanyName)
	}
	s.notifyAsync(&entity.Notification{
		AccountID:  startup.AccountID,
		ActorID:    actor.ID,
		EntityID:   startup.AccountID,
		EntityType: "startup",
		Type:       entity.NotificationTypeVerification,
		Message:    message,
	})

	return startup, nil
}

// DeclineStartup removes a startup account that failed review. The account
// row cascades to the startup profile, its roles and their applications.
func (s *adminService) DeclineStartup(ctx context.Context, actor entity.Actor, startupID uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperror.ErrForbidden
	}

	account, err := s.accountRepo.FindByID(ctx, startupID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if account.Role != entity.RoleStartup {
		return apperror.ErrNotFound
	}

	if s.search != nil {
		roles, err := s.roleRepo.FindByStartup(ctx, startupID)
		if err == nil {
			for i := range roles {
				_ = s.search.DeleteRole(roles[i].ID)
			}
		}
		_ = s.search.DeleteStartup(startupID)
	}

	return s.accountRepo.Delete(ctx, startupID.String())
}

func (s *adminService) ListStartups(ctx context.Context, actor entity.Actor, filter startupDto.StartupFilter, verified *bool) (*startupDto.PaginatedStartupResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	startups, total, err := s.startupRepo.Directory(ctx, filter, verified)
	if err != nil {
		return nil, err
	}

	return &startupDto.PaginatedStartupResponse{
		Data: startups,
		Meta: commonDto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

func (s *adminService) Metrics(ctx context.Context, actor entity.Actor) (*adminDto.MetricsResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	metrics := &adminDto.MetricsResponse{}
	var err error

	if metrics.Students, err = s.accountRepo.CountByRole(ctx, entity.RoleStudent); err != nil {
		return nil, err
	}
	if metrics.Startups, err = s.startupRepo.Count(ctx); err != nil {
		return nil, err
	}
	if metrics.VerifiedStartups, err = s.startupRepo.CountVerified(ctx); err != nil {
		return nil, err
	}
	if metrics.Roles, err = s.roleRepo.Count(ctx); err != nil {
		return nil, err
	}
	if metrics.Applications, err = s.applicationRepo.Count(ctx); err != nil {
		return nil, err
	}
	if metrics.Placements, err = s.applicationRepo.CountByStatus(ctx, entity.StatusAccepted); err != nil {
		return nil, err
	}

	return metrics, nil
}

func (s *adminService) reindexStartup(ctx context.Context, startup *entity.Startup) {
	if s.search == nil {
		return
	}

	_ = s.search.IndexStartup(startup)

	roles, err := s.roleRepo.FindByStartup(ctx, startup.AccountID)
	if err != nil {
		log.Printf("[Admin] reindex roles for %s: %v", startup.AccountID, err)
		return
	}
	for i := range roles {
		_ = s.search.IndexRole(&roles[i], startup)
	}
}

func (s *adminService) notifyAsync(notification *entity.Notification) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.CreateNotification(context.Background(), notification); err != nil {
			log.Printf("[Admin] notify: %v", err)
		}
	}()
}
