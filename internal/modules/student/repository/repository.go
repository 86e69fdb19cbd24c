package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	studentDto "github.com/kickstarthq/talent-backend/internal/modules/student/dto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentRepository interface {
	Upsert(ctx context.Context, student *entity.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	ReplaceSkills(ctx context.Context, studentID uuid.UUID, skillIDs []uuid.UUID) error
	CreateExperience(ctx context.Context, experience *entity.Experience) error
	CreateExperiences(ctx context.Context, experiences []entity.Experience) error
	DeleteExperience(ctx context.Context, id, studentID uuid.UUID) (int64, error)
	// Directory lists public students with completed onboarding.
	Directory(ctx context.Context, filter studentDto.StudentFilter) ([]entity.Student, int64, error)
	Count(ctx context.Context) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Upsert(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			UpdateAll: true,
		}).
		Omit("Skills", "Experiences", "Account").
		Create(student).Error
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	if err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Skills").
		Preload("Experiences", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date desc")
		}).
		Where("account_id = ?", id).
		First(&student).Error; err != nil {
		return nil, err
	}

	return &student, nil
}

func (r *studentRepository) ReplaceSkills(ctx context.Context, studentID uuid.UUID, skillIDs []uuid.UUID) error {
	// Wholesale replacement: delete-all-then-insert-selected.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).Delete(&entity.StudentSkill{}).Error; err != nil {
			return err
		}

		if len(skillIDs) == 0 {
			return nil
		}

		rows := make([]entity.StudentSkill, 0, len(skillIDs))
		for _, skillID := range skillIDs {
			rows = append(rows, entity.StudentSkill{StudentID: studentID, SkillID: skillID})
		}
		return tx.Create(&rows).Error
	})
}

func (r *studentRepository) CreateExperience(ctx context.Context, experience *entity.Experience) error {
	return r.db.WithContext(ctx).Create(experience).Error
}

func (r *studentRepository) CreateExperiences(ctx context.Context, experiences []entity.Experience) error {
	if len(experiences) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&experiences).Error
}

func (r *studentRepository) DeleteExperience(ctx context.Context, id, studentID uuid.UUID) (int64, error) {
	// Ownership is part of the predicate so a foreign experience id is a no-op.
	result := r.db.WithContext(ctx).
		Where("id = ? AND student_id = ?", id, studentID).
		Delete(&entity.Experience{})
	return result.RowsAffected, result.Error
}

func (r *studentRepository) Directory(ctx context.Context, filter studentDto.StudentFilter) ([]entity.Student, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Student{}).
		Joins("JOIN accounts ON accounts.id = students.account_id").
		Where("students.is_public = ?", true).
		Where("accounts.onboarding_completed = ?", true)

	if filter.University != "" {
		query = query.Where("students.university = ?", filter.University)
	}
	if filter.AvailableOnly {
		query = query.Where("students.is_available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []entity.Student
	err := query.
		Preload("Account").
		Preload("Skills").
		Order("students.updated_at desc").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&students).Error

	return students, total, err
}

func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Student{}).Count(&count).Error
	return count, err
}
