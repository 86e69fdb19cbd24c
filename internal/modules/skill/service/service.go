package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"github.com/kickstarthq/talent-backend/internal/modules/skill/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
)

type SkillService interface {
	ListSkills(ctx context.Context) ([]entity.Skill, error)
	// ResolveSkillIDs maps a mix of existing skill ids and custom skill
	// names onto canonical skill ids, creating vocabulary entries for
	// unknown names. The vocabulary is global: entries created here are
	// visible to all future actors.
	ResolveSkillIDs(ctx context.Context, skillIDs []uuid.UUID, customNames []string) ([]uuid.UUID, error)
}

type skillService struct {
	repo repository.SkillRepository
}

func NewSkillService(repo repository.SkillRepository) SkillService {
	return &skillService{repo: repo}
}

func (s *skillService) ListSkills(ctx context.Context) ([]entity.Skill, error) {
	return s.repo.FindAll(ctx)
}

func (s *skillService) ResolveSkillIDs(ctx context.Context, skillIDs []uuid.UUID, customNames []string) ([]uuid.UUID, error) {
	known, err := s.repo.FindByIDs(ctx, skillIDs)
	if err != nil {
		return nil, err
	}

	resolved := make([]uuid.UUID, 0, len(known)+len(customNames))
	seen := make(map[uuid.UUID]struct{}, len(known)+len(customNames))
	for _, skill := range known {
		if _, dup := seen[skill.ID]; dup {
			continue
		}
		seen[skill.ID] = struct{}{}
		resolved = append(resolved, skill.ID)
	}

	category := "custom"
	for _, name := range customNames {
		if strings.TrimSpace(name) == "" {
			return nil, apperror.ErrInvalidInput
		}

		canonical, err := s.repo.Upsert(ctx, &entity.Skill{
			Name:     name,
			Category: &category,
		})
		if err != nil {
			return nil, err
		}

		if _, dup := seen[canonical.ID]; dup {
			continue
		}
		seen[canonical.ID] = struct{}{}
		resolved = append(resolved, canonical.ID)
	}

	return resolved, nil
}
