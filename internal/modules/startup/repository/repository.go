package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	startupDto "github.com/kickstarthq/talent-backend/internal/modules/startup/dto"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StartupRepository interface {
	Upsert(ctx context.Context, startup *entity.Startup) error
	FindByID(ctx context.Context, accountID uuid.UUID) (*entity.Startup, error)
	FindByIDWithRoles(ctx context.Context, accountID uuid.UUID, activeOnly bool) (*entity.Startup, error)
	// Directory lists startups, optionally constrained by verification
	// state. A nil verified filter returns everything.
	Directory(ctx context.Context, filter startupDto.StartupFilter, verified *bool) ([]entity.Startup, int64, error)
	SetVerified(ctx context.Context, accountID uuid.UUID, verified bool) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountVerified(ctx context.Context) (int64, error)
}

type startupRepository struct {
	db *gorm.DB
}

func NewStartupRepository(db *gorm.DB) StartupRepository {
	return &startupRepository{db: db}
}

func (r *startupRepository) Upsert(ctx context.Context, startup *entity.Startup) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			UpdateAll: true,
		}).
		Create(startup).Error
}

func (r *startupRepository) FindByID(ctx context.Context, accountID uuid.UUID) (*entity.Startup, error) {
	var startup entity.Startup
	err := r.db.WithContext(ctx).
		Preload("Account").
		First(&startup, "account_id = ?", accountID).Error
	if err != nil {
		return nil, err
	}
	return &startup, nil
}

func (r *startupRepository) FindByIDWithRoles(ctx context.Context, accountID uuid.UUID, activeOnly bool) (*entity.Startup, error) {
	var startup entity.Startup
	query := r.db.WithContext(ctx).Preload("Account")
	if activeOnly {
		query = query.Preload("Roles", "is_active = ?", true).Preload("Roles.Skills")
	} else {
		query = query.Preload("Roles").Preload("Roles.Skills")
	}
	if err := query.First(&startup, "account_id = ?", accountID).Error; err != nil {
		return nil, err
	}
	return &startup, nil
}

func (r *startupRepository) Directory(ctx context.Context, filter startupDto.StartupFilter, verified *bool) ([]entity.Startup, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Startup{})

	if verified != nil {
		query = query.Where("is_verified = ?", *verified)
	}
	if filter.Industry != "" {
		query = query.Where("industry = ?", filter.Industry)
	}
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var startups []entity.Startup
	err := query.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&startups).Error
	if err != nil {
		return nil, 0, err
	}

	return startups, total, nil
}

func (r *startupRepository) SetVerified(ctx context.Context, accountID uuid.UUID, verified bool) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Startup{}).
		Where("account_id = ?", accountID).
		Update("is_verified", verified)
	return result.RowsAffected, result.Error
}

func (r *startupRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Startup{}).Count(&count).Error
	return count, err
}

func (r *startupRepository) CountVerified(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Startup{}).
		Where("is_verified = ?", true).
		Count(&count).Error
	return count, err
}
