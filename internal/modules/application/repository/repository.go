package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	FindByRoleAndStudent(ctx context.Context, roleID, studentID uuid.UUID) (*entity.Application, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Application, error)
	ListByRole(ctx context.Context, roleID uuid.UUID) ([]entity.Application, error)
	// TransitionStatus is a compare-and-set on the status column. It
	// returns the number of rows updated; zero means the application was
	// no longer in the expected state (or never existed), so a raced
	// concurrent transition loses cleanly instead of overwriting.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ApplicationStatus, notes *string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.ApplicationStatus) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	var application entity.Application
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Role.Startup").
		Where("id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationRepository) FindByRoleAndStudent(ctx context.Context, roleID, studentID uuid.UUID) (*entity.Application, error) {
	var application entity.Application
	if err := r.db.WithContext(ctx).
		Where("role_id = ? AND student_id = ?", roleID, studentID).
		First(&application).Error; err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.Application, error) {
	var applications []entity.Application
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Role.Startup").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) ListByRole(ctx context.Context, roleID uuid.UUID) ([]entity.Application, error) {
	var applications []entity.Application
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Account").
		Where("role_id = ?", roleID).
		Order("created_at asc").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.ApplicationStatus, notes *string) (int64, error) {
	updates := map[string]any{"status": to}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)

	return result.RowsAffected, result.Error
}

func (r *applicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Application{}).Count(&count).Error
	return count, err
}

func (r *applicationRepository) CountByStatus(ctx context.Context, status entity.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
