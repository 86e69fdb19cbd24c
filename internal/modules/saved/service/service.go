package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	roleRepo "github.com/kickstarthq/talent-backend/internal/modules/role/repository"
	savedRepo "github.com/kickstarthq/talent-backend/internal/modules/saved/repository"
	studentRepo "github.com/kickstarthq/talent-backend/internal/modules/student/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"gorm.io/gorm"
)

type SavedService interface {
	SaveRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) error
	UnsaveRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) error
	ListSavedRoles(ctx context.Context, actor entity.Actor) ([]entity.SavedRole, error)

	SaveStudent(ctx context.Context, actor entity.Actor, studentID uuid.UUID) error
	UnsaveStudent(ctx context.Context, actor entity.Actor, studentID uuid.UUID) error
	ListSavedStudents(ctx context.Context, actor entity.Actor) ([]entity.SavedStudent, error)
}

type savedService struct {
	repo        savedRepo.SavedRepository
	roleRepo    roleRepo.RoleRepository
	studentRepo studentRepo.StudentRepository
}

func NewSavedService(repo savedRepo.SavedRepository, roleRepository roleRepo.RoleRepository, studentRepository studentRepo.StudentRepository) SavedService {
	return &savedService{repo: repo, roleRepo: roleRepository, studentRepo: studentRepository}
}

func (s *savedService) SaveRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) error {
	if actor.Role != entity.RoleStudent {
		return apperror.ErrForbidden
	}

	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if !role.IsActive || role.Startup == nil || !role.Startup.IsVerified {
		return apperror.ErrNotFound
	}

	err = s.repo.CreateSavedRole(ctx, &entity.SavedRole{
		StudentID: actor.ID,
		RoleID:    roleID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrAlreadySaved
	}
	return err
}

func (s *savedService) UnsaveRole(ctx context.Context, actor entity.Actor, roleID uuid.UUID) error {
	if actor.Role != entity.RoleStudent {
		return apperror.ErrForbidden
	}

	rows, err := s.repo.DeleteSavedRole(ctx, actor.ID, roleID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *savedService) ListSavedRoles(ctx context.Context, actor entity.Actor) ([]entity.SavedRole, error) {
	if actor.Role != entity.RoleStudent {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListSavedRoles(ctx, actor.ID)
}

func (s *savedService) SaveStudent(ctx context.Context, actor entity.Actor, studentID uuid.UUID) error {
	if actor.Role != entity.RoleStartup {
		return apperror.ErrForbidden
	}

	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if !student.IsPublic {
		return apperror.ErrNotFound
	}

	err = s.repo.CreateSavedStudent(ctx, &entity.SavedStudent{
		StartupID: actor.ID,
		StudentID: studentID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrAlreadySaved
	}
	return err
}

func (s *savedService) UnsaveStudent(ctx context.Context, actor entity.Actor, studentID uuid.UUID) error {
	if actor.Role != entity.RoleStartup {
		return apperror.ErrForbidden
	}

	rows, err := s.repo.DeleteSavedStudent(ctx, actor.ID, studentID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *savedService) ListSavedStudents(ctx context.Context, actor entity.Actor) ([]entity.SavedStudent, error) {
	if actor.Role != entity.RoleStartup {
		return nil, apperror.ErrForbidden
	}
	return s.repo.ListSavedStudents(ctx, actor.ID)
}
