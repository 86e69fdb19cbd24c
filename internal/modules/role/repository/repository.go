package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	roleDto "github.com/kickstarthq/talent-backend/internal/modules/role/dto"
	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, role *entity.RolePosting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RolePosting, error)
	FindByStartup(ctx context.Context, startupID uuid.UUID) ([]entity.RolePosting, error)
	Update(ctx context.Context, role *entity.RolePosting) error
	Delete(ctx context.Context, id uuid.UUID) error
	ReplaceSkills(ctx context.Context, roleID uuid.UUID, skillIDs []uuid.UUID) error
	// Discover lists active roles of verified startups only.
	Discover(ctx context.Context, filter roleDto.RoleFilter) ([]entity.RolePosting, int64, error)
	Count(ctx context.Context) (int64, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *entity.RolePosting) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RolePosting, error) {
	var role entity.RolePosting
	if err := r.db.WithContext(ctx).
		Preload("Startup").
		Preload("Skills").
		Where("id = ?", id).
		First(&role).Error; err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *roleRepository) FindByStartup(ctx context.Context, startupID uuid.UUID) ([]entity.RolePosting, error) {
	var roles []entity.RolePosting
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Where("startup_id = ?", startupID).
		Order("created_at desc").
		Find(&roles).Error
	return roles, err
}

func (r *roleRepository) Update(ctx context.Context, role *entity.RolePosting) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.RolePosting{}, "id = ?", id).Error
}

func (r *roleRepository) ReplaceSkills(ctx context.Context, roleID uuid.UUID, skillIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&entity.RoleSkill{}).Error; err != nil {
			return err
		}

		if len(skillIDs) == 0 {
			return nil
		}

		rows := make([]entity.RoleSkill, 0, len(skillIDs))
		for _, skillID := range skillIDs {
			rows = append(rows, entity.RoleSkill{RoleID: roleID, SkillID: skillID})
		}
		return tx.Create(&rows).Error
	})
}

func (r *roleRepository) Discover(ctx context.Context, filter roleDto.RoleFilter) ([]entity.RolePosting, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.RolePosting{}).
		Joins("JOIN startups ON startups.account_id = role_postings.startup_id").
		Where("role_postings.is_active = ?", true).
		Where("startups.is_verified = ?", true)

	if filter.RoleType != "" {
		query = query.Where("role_postings.role_type = ?", filter.RoleType)
	}
	if filter.JobFunction != "" {
		query = query.Where("role_postings.job_function = ?", filter.JobFunction)
	}
	if filter.LocationType != "" {
		query = query.Where("role_postings.location_type = ?", filter.LocationType)
	}
	if filter.PaidOnly {
		query = query.Where("role_postings.paid = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var roles []entity.RolePosting
	err := query.
		Preload("Startup").
		Preload("Skills").
		Order("role_postings.created_at desc").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&roles).Error

	return roles, total, err
}

func (r *roleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.RolePosting{}).Count(&count).Error
	return count, err
}
