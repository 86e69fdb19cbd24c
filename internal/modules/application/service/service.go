package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	appDto "github.com/kickstarthq/talent-backend/internal/modules/application/dto"
	appRepo "github.com/kickstarthq/talent-backend/internal/modules/application/repository"
	notifService "github.com/kickstarthq/talent-backend/internal/modules/notification/service"
	roleRepo "github.com/kickstarthq/talent-backend/internal/modules/role/repository"
	"github.com/kickstarthq/talent-backend/internal/ratelimit"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(ctx context.Context, actor entity.Actor, input appDto.ApplyInput) (*entity.Application, error)
	Withdraw(ctx context.Context, actor entity.Actor, applicationID uuid.UUID) (*entity.Application, error)
	AdvanceStatus(ctx context.Context, actor entity.Actor, applicationID uuid.UUID, input appDto.AdvanceStatusInput) (*entity.Application, error)
	ListMyApplications(ctx context.Context, actor entity.Actor) ([]entity.Application, error)
	ListRoleApplications(ctx context.Context, actor entity.Actor, roleID uuid.UUID) ([]entity.Application, error)
}

type applicationService struct {
	repo         appRepo.ApplicationRepository
	roleRepo     roleRepo.RoleRepository
	notification notifService.NotificationService
	limiter      ratelimit.Limiter
	applyLimit   time.Duration
	sanitizer    *bluemonday.Policy
}

func NewApplicationService(
	repo appRepo.ApplicationRepository,
	roleRepository roleRepo.RoleRepository,
	notification notifService.NotificationService,
	limiter ratelimit.Limiter,
	applyLimit time.Duration,
) ApplicationService {
	return &applicationService{
		repo:         repo,
		roleRepo:     roleRepository,
		notification: notification,
		limiter:      limiter,
		applyLimit:   applyLimit,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *applicationService) Apply(ctx context.Context, actor entity.Actor, input appDto.ApplyInput) (*entity.Application, error) {
	if actor.Role != entity.RoleStudent {
		return nil, apperror.ErrForbidden
	}

	role, err := s.roleRepo.FindByID(ctx, input.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	// An inactive or unverified-startup role is invisible to students, so
	// applying to it reads as not found rather than forbidden.
	if !role.IsActive || role.Startup == nil || !role.Startup.IsVerified {
		return nil, apperror.ErrNotFound
	}

	// Friendly pre-check; the unique (role_id, student_id) index is the
	// real guard against a raced double-apply.
	if _, err := s.repo.FindByRoleAndStudent(ctx, input.RoleID, actor.ID); err == nil {
		return nil, apperror.ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Take the cooldown slot only once the apply can actually go through,
	// so a typo'd role id does not burn the window.
	if s.limiter != nil {
		allowed, err := s.limiter.Acquire(ctx, actor.ID, "apply", s.applyLimit)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, apperror.ErrRateLimitExceeded
		}
	}

	application := &entity.Application{
		RoleID:      input.RoleID,
		StudentID:   actor.ID,
		Status:      entity.StatusApplied,
		CoverLetter: s.sanitizeOptional(input.CoverLetter),
	}

	if err := s.repo.Create(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrAlreadyApplied
		}
		return nil, err
	}

	s.notifyAsync(&entity.Notification{
		AccountID:  role.StartupID,
		ActorID:    actor.ID,
		EntityID:   application.ID,
		EntityType: "application",
		Type:       entity.NotificationTypeNewApplication,
		Message:    fmt.Sprintf("New application for %s", role.Title),
	})

	return application, nil
}

func (s *applicationService) Withdraw(ctx context.Context, actor entity.Actor, applicationID uuid.UUID) (*entity.Application, error) {
	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if actor.Role != entity.RoleStudent || !actor.Owns(application.StudentID) {
		return nil, apperror.ErrForbidden
	}

	if !application.Status.CanWithdraw() {
		return nil, apperror.ErrIllegalTransition
	}

	rows, err := s.repo.TransitionStatus(ctx, applicationID, application.Status, entity.StatusWithdrawn, nil)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost a race against a concurrent transition.
		return nil, apperror.ErrIllegalTransition
	}

	application.Status = entity.StatusWithdrawn
	return application, nil
}

func (s *applicationService) AdvanceStatus(ctx context.Context, actor entity.Actor, applicationID uuid.UUID, input appDto.AdvanceStatusInput) (*entity.Application, error) {
	// Unknown strings are malformed input; real statuses that are never a
	// legal target, like applied or withdrawn, fall out of CanAdvanceTo
	// below as illegal transitions.
	target := entity.ApplicationStatus(input.Status)
	if !target.Valid() {
		return nil, apperror.ErrInvalidInput
	}

	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	// Only the startup owning the role may advance the pipeline.
	if actor.Role != entity.RoleStartup || application.Role == nil || !actor.Owns(application.Role.StartupID) {
		return nil, apperror.ErrForbidden
	}

	if !application.Status.CanAdvanceTo(target) {
		return nil, apperror.ErrIllegalTransition
	}

	rows, err := s.repo.TransitionStatus(ctx, applicationID, application.Status, target, s.sanitizeOptional(input.Notes))
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Status moved underneath us; re-read to distinguish a vanished
		// row from a lost transition race.
		if _, err := s.repo.FindByID(ctx, applicationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.ErrNotFound
			}
			return nil, err
		}
		return nil, apperror.ErrIllegalTransition
	}

	roleTitle := ""
	if application.Role != nil {
		roleTitle = application.Role.Title
	}
	s.notifyAsync(&entity.Notification{
		AccountID:  application.StudentID,
		ActorID:    actor.ID,
		EntityID:   application.ID,
		EntityType: "application",
		Type:       entity.NotificationTypeStatusChange,
		Message:    fmt.Sprintf("Your application for %s is now %s", roleTitle, target),
	})

	application.Status = target
	if input.Notes != nil {
		application.Notes = s.sanitizeOptional(input.Notes)
	}
	return application, nil
}

func (s *applicationService) ListMyApplications(ctx context.Context, actor entity.Actor) ([]entity.Application, error) {
	if actor.Role != entity.RoleStudent {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListByStudent(ctx, actor.ID)
}

func (s *applicationService) ListRoleApplications(ctx context.Context, actor entity.Actor, roleID uuid.UUID) ([]entity.Application, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !actor.CanModify(role.StartupID) {
		return nil, apperror.ErrForbidden
	}

	return s.repo.ListByRole(ctx, roleID)
}

func (s *applicationService) sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := s.sanitizer.Sanitize(*value)
	return &cleaned
}

func (s *applicationService) notifyAsync(notification *entity.Notification) {
	if s.notification == nil {
		return
	}
	go func() {
		_ = s.notification.CreateNotification(context.Background(), notification)
	}()
}
