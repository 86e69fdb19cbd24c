package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepository interface {
	FindAll(ctx context.Context) ([]entity.Skill, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Skill, error)
	// Upsert inserts the skill unless its name key already exists, then
	// returns the canonical row. First writer wins on a name collision.
	Upsert(ctx context.Context, skill *entity.Skill) (*entity.Skill, error)
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) FindAll(ctx context.Context) ([]entity.Skill, error) {
	var skills []entity.Skill
	err := r.db.WithContext(ctx).Order("name asc").Find(&skills).Error
	return skills, err
}

func (r *skillRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Skill, error) {
	var skills []entity.Skill
	if len(ids) == 0 {
		return skills, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}

func (r *skillRepository) Upsert(ctx context.Context, skill *entity.Skill) (*entity.Skill, error) {
	// Single round trip against the unique name_key index removes the
	// read-then-insert race of a lookup-or-create sequence.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_key"}},
			DoNothing: true,
		}).
		Create(skill).Error; err != nil {
		return nil, err
	}

	var canonical entity.Skill
	if err := r.db.WithContext(ctx).
		Where("name_key = ?", entity.NormalizeSkillName(skill.Name)).
		First(&canonical).Error; err != nil {
		return nil, err
	}

	return &canonical, nil
}
