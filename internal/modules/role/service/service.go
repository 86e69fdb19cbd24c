package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	roleDto "github.com/kickstarthq/talent-backend/internal/modules/role/dto"
	roleRepo "github.com/kickstarthq/talent-backend/internal/modules/role/repository"
	search "github.com/kickstarthq/talent-backend/internal/modules/search/service"
	skill "github.com/kickstarthq/talent-backend/internal/modules/skill/service"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
	"gorm.io/gorm"
)

type RoleService interface {
	CreateRole(ctx context.Context, actor entity.Actor, input roleDto.RoleInput) (*entity.RolePosting, error)
	UpdateRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID, input roleDto.RoleInput) (*entity.RolePosting, error)
	DeleteRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) error
	GetRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) (*entity.RolePosting, error)
	ListMyRoles(ctx context.Context, actor entity.Actor) ([]entity.RolePosting, error)
	Discover(ctx context.Context, filter roleDto.RoleFilter) (*roleDto.PaginatedRoleResponse, error)
}

type roleService struct {
	repo     roleRepo.RoleRepository
	skillSvc skill.SkillService
	search   search.SearchService
}

func NewRoleService(repo roleRepo.RoleRepository, skillSvc skill.SkillService, searchSvc search.SearchService) RoleService {
	return &roleService{
		repo:     repo,
		skillSvc: skillSvc,
		search:   searchSvc,
	}
}

func (s *roleService) CreateRole(ctx context.Context, actor entity.Actor, input roleDto.RoleInput) (*entity.RolePosting, error) {
	if actor.Role != entity.RoleStartup {
		return nil, apperror.ErrForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.ErrInvalidInput
	}

	role := &entity.RolePosting{
		StartupID:    actor.ID,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Requirements: input.Requirements,
		RoleType:     input.RoleType,
		JobFunction:  input.JobFunction,
		Paid:         input.Paid,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Equity:       input.Equity,
		EquityRange:  input.EquityRange,
		Duration:     input.Duration,
		LocationType: input.LocationType,
		Location:     input.Location,
		IsActive:     true,
	}
	if input.IsActive != nil {
		role.IsActive = *input.IsActive
	}

	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}

	if err := s.replaceSkills(ctx, role.ID, input); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, role.ID)
}

func (s *roleService) UpdateRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID, input roleDto.RoleInput) (*entity.RolePosting, error) {
	role, err := s.findOwned(ctx, actor, roleID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.ErrInvalidInput
	}

	role.Title = strings.TrimSpace(input.Title)
	role.Description = input.Description
	role.Requirements = input.Requirements
	role.RoleType = input.RoleType
	role.JobFunction = input.JobFunction
	role.Paid = input.Paid
	role.SalaryMin = input.SalaryMin
	role.SalaryMax = input.SalaryMax
	role.Equity = input.Equity
	role.EquityRange = input.EquityRange
	role.Duration = input.Duration
	role.LocationType = input.LocationType
	role.Location = input.Location
	if input.IsActive != nil {
		role.IsActive = *input.IsActive
	}

	// Save without associations so preloaded skills don't get re-created.
	role.Skills = nil
	role.Startup = nil
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}

	if err := s.replaceSkills(ctx, role.ID, input); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, role.ID)
}

func (s *roleService) DeleteRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) error {
	if _, err := s.findOwned(ctx, actor, roleID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, roleID); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteRole(roleID); err != nil {
			// Index cleanup failure must not fail the delete.
			return nil
		}
	}
	return nil
}

func (s *roleService) GetRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) (*entity.RolePosting, error) {
	role, err := s.repo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if actor.CanModify(role.StartupID) {
		return role, nil
	}

	// Non-owners only see active roles of verified startups.
	if !role.IsActive || role.Startup == nil || !role.Startup.IsVerified {
		return nil, apperror.ErrNotFound
	}

	return role, nil
}

func (s *roleService) ListMyRoles(ctx context.Context, actor entity.Actor) ([]entity.RolePosting, error) {
	if actor.Role != entity.RoleStartup {
		return nil, apperror.ErrForbidden
	}
	return s.repo.FindByStartup(ctx, actor.ID)
}

func (s *roleService) Discover(ctx context.Context, filter roleDto.RoleFilter) (*roleDto.PaginatedRoleResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	roles, total, err := s.repo.Discover(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &roleDto.PaginatedRoleResponse{
		Data: roles,
		Meta: commonDto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

func (s *roleService) findOwned(ctx context.Context, actor entity.Actor, roleID uuid.UUID) (*entity.RolePosting, error) {
	role, err := s.repo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !actor.CanModify(role.StartupID) {
		return nil, apperror.ErrForbidden
	}

	return role, nil
}

func (s *roleService) replaceSkills(ctx context.Context, roleID uuid.UUID, input roleDto.RoleInput) error {
	if input.SkillIDs == nil && len(input.CustomSkills) == 0 {
		return nil
	}

	skillIDs, err := s.skillSvc.ResolveSkillIDs(ctx, input.SkillIDs, input.CustomSkills)
	if err != nil {
		return err
	}

	return s.repo.ReplaceSkills(ctx, roleID, skillIDs)
}

func (s *roleService) reloadAndIndex(ctx context.Context, roleID uuid.UUID) (*entity.RolePosting, error) {
	role, err := s.repo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		_ = s.search.IndexRole(role, role.Startup)
	}

	return role, nil
}
