package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"gorm.io/gorm"
)

type SavedRepository interface {
	CreateSavedRole(ctx context.Context, saved *entity.SavedRole) error
	DeleteSavedRole(ctx context.Context, studentID, roleID uuid.UUID) (int64, error)
	ListSavedRoles(ctx context.Context, studentID uuid.UUID) ([]entity.SavedRole, error)

	CreateSavedStudent(ctx context.Context, saved *entity.SavedStudent) error
	DeleteSavedStudent(ctx context.Context, startupID, studentID uuid.UUID) (int64, error)
	ListSavedStudents(ctx context.Context, startupID uuid.UUID) ([]entity.SavedStudent, error)
}

type savedRepository struct {
	db *gorm.DB
}

func NewSavedRepository(db *gorm.DB) SavedRepository {
	return &savedRepository{db: db}
}

func (r *savedRepository) CreateSavedRole(ctx context.Context, saved *entity.SavedRole) error {
	return r.db.WithContext(ctx).Create(saved).Error
}

func (r *savedRepository) DeleteSavedRole(ctx context.Context, studentID, roleID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND role_id = ?", studentID, roleID).
		Delete(&entity.SavedRole{})
	return result.RowsAffected, result.Error
}

func (r *savedRepository) ListSavedRoles(ctx context.Context, studentID uuid.UUID) ([]entity.SavedRole, error) {
	var saved []entity.SavedRole
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Role.Startup").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}

func (r *savedRepository) CreateSavedStudent(ctx context.Context, saved *entity.SavedStudent) error {
	return r.db.WithContext(ctx).Create(saved).Error
}

func (r *savedRepository) DeleteSavedStudent(ctx context.Context, startupID, studentID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("startup_id = ? AND student_id = ?", startupID, studentID).
		Delete(&entity.SavedStudent{})
	return result.RowsAffected, result.Error
}

func (r *savedRepository) ListSavedStudents(ctx context.Context, startupID uuid.UUID) ([]entity.SavedStudent, error) {
	var saved []entity.SavedStudent
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.Skills").
		Where("startup_id = ?", startupID).
		Order("created_at DESC").
		Find(&saved).Error
	return saved, err
}
