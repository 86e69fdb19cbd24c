package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkillRepo struct {
	byKey map[string]*entity.Skill
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{byKey: make(map[string]*entity.Skill)}
}

func (f *fakeSkillRepo) FindAll(ctx context.Context) ([]entity.Skill, error) {
	var out []entity.Skill
	for _, skill := range f.byKey {
		out = append(out, *skill)
	}
	return out, nil
}

func (f *fakeSkillRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Skill, error) {
	var out []entity.Skill
	for _, skill := range f.byKey {
		for _, id := range ids {
			if skill.ID == id {
				out = append(out, *skill)
			}
		}
	}
	return out, nil
}

func (f *fakeSkillRepo) Upsert(ctx context.Context, skill *entity.Skill) (*entity.Skill, error) {
	key := entity.NormalizeSkillName(skill.Name)
	if existing, ok := f.byKey[key]; ok {
		return existing, nil
	}
	stored := *skill
	stored.ID = uuid.New()
	stored.NameKey = key
	f.byKey[key] = &stored
	return &stored, nil
}

func TestResolveSkillIDs(t *testing.T) {
	t.Run("creates vocabulary entries for unknown names", func(t *testing.T) {
		repo := newFakeSkillRepo()
		svc := NewSkillService(repo)

		ids, err := svc.ResolveSkillIDs(context.Background(), nil, []string{"Go", "Rust"})
		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.Len(t, repo.byKey, 2)
	})

	t.Run("custom names resolve case-insensitively to one entry", func(t *testing.T) {
		repo := newFakeSkillRepo()
		svc := NewSkillService(repo)

		first, err := svc.ResolveSkillIDs(context.Background(), nil, []string{"Go"})
		require.NoError(t, err)

		second, err := svc.ResolveSkillIDs(context.Background(), nil, []string{"  go "})
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Len(t, repo.byKey, 1)
	})

	t.Run("merges existing ids with custom names without duplicates", func(t *testing.T) {
		repo := newFakeSkillRepo()
		svc := NewSkillService(repo)

		existing, err := repo.Upsert(context.Background(), &entity.Skill{Name: "Python"})
		require.NoError(t, err)

		ids, err := svc.ResolveSkillIDs(context.Background(), []uuid.UUID{existing.ID, existing.ID}, []string{"python"})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{existing.ID}, ids)
	})

	t.Run("unknown ids are dropped silently", func(t *testing.T) {
		repo := newFakeSkillRepo()
		svc := NewSkillService(repo)

		ids, err := svc.ResolveSkillIDs(context.Background(), []uuid.UUID{uuid.New()}, nil)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("blank custom names are invalid", func(t *testing.T) {
		repo := newFakeSkillRepo()
		svc := NewSkillService(repo)

		_, err := svc.ResolveSkillIDs(context.Background(), nil, []string{"   "})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestNormalizeSkillName(t *testing.T) {
	assert.Equal(t, "go", entity.NormalizeSkillName("  Go "))
	assert.Equal(t, "machine learning", entity.NormalizeSkillName("Machine Learning"))
}
