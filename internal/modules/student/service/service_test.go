package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	studentDto "github.com/kickstarthq/talent-backend/internal/modules/student/dto"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStudentRepo struct {
	students    map[uuid.UUID]*entity.Student
	experiences map[uuid.UUID]*entity.Experience
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		students:    make(map[uuid.UUID]*entity.Student),
		experiences: make(map[uuid.UUID]*entity.Experience),
	}
}

func (f *fakeStudentRepo) Upsert(ctx context.Context, student *entity.Student) error {
	stored := *student
	f.students[student.AccountID] = &stored
	return nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *student
	return &copied, nil
}

func (f *fakeStudentRepo) ReplaceSkills(ctx context.Context, studentID uuid.UUID, skillIDs []uuid.UUID) error {
	return nil
}

func (f *fakeStudentRepo) CreateExperience(ctx context.Context, experience *entity.Experience) error {
	if experience.ID == uuid.Nil {
		experience.ID = uuid.New()
	}
	stored := *experience
	f.experiences[experience.ID] = &stored
	return nil
}

func (f *fakeStudentRepo) CreateExperiences(ctx context.Context, experiences []entity.Experience) error {
	for i := range experiences {
		if err := f.CreateExperience(ctx, &experiences[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStudentRepo) DeleteExperience(ctx context.Context, id, studentID uuid.UUID) (int64, error) {
	experience, ok := f.experiences[id]
	if !ok || experience.StudentID != studentID {
		return 0, nil
	}
	delete(f.experiences, id)
	return 1, nil
}

func (f *fakeStudentRepo) Directory(ctx context.Context, filter studentDto.StudentFilter) ([]entity.Student, int64, error) {
	var out []entity.Student
	for _, student := range f.students {
		if student.IsPublic {
			out = append(out, *student)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeStudentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.students)), nil
}

func newTestService(repo *fakeStudentRepo) StudentService {
	return NewStudentService(repo, nil, nil, nil, nil)
}

func TestGetStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := newTestService(repo)

	studentID := uuid.New()
	repo.students[studentID] = &entity.Student{AccountID: studentID, IsPublic: true}

	t.Run("owner sees own profile", func(t *testing.T) {
		owner := entity.Actor{ID: studentID, Role: entity.RoleStudent}
		found, err := svc.GetStudent(context.Background(), owner, studentID)
		require.NoError(t, err)
		assert.Equal(t, studentID, found.AccountID)
	})

	t.Run("startup sees public profile", func(t *testing.T) {
		startup := entity.Actor{ID: uuid.New(), Role: entity.RoleStartup}
		_, err := svc.GetStudent(context.Background(), startup, studentID)
		assert.NoError(t, err)
	})

	t.Run("private profile hidden from startups", func(t *testing.T) {
		privateID := uuid.New()
		repo.students[privateID] = &entity.Student{AccountID: privateID, IsPublic: false}

		startup := entity.Actor{ID: uuid.New(), Role: entity.RoleStartup}
		_, err := svc.GetStudent(context.Background(), startup, privateID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		owner := entity.Actor{ID: privateID, Role: entity.RoleStudent}
		_, err = svc.GetStudent(context.Background(), owner, privateID)
		assert.NoError(t, err)
	})

	t.Run("students cannot browse each other", func(t *testing.T) {
		other := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		_, err := svc.GetStudent(context.Background(), other, studentID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("admin sees any profile", func(t *testing.T) {
		admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
		_, err := svc.GetStudent(context.Background(), admin, studentID)
		assert.NoError(t, err)
	})
}

func TestUpdateStudentProfile(t *testing.T) {
	t.Run("non-students are forbidden", func(t *testing.T) {
		svc := newTestService(newFakeStudentRepo())

		startup := entity.Actor{ID: uuid.New(), Role: entity.RoleStartup}
		_, err := svc.UpdateStudentProfile(context.Background(), startup, studentDto.UpdateStudentInput{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("nil fields leave existing values untouched", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := newTestService(repo)

		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		university := "MIT"
		headline := "builder"
		repo.students[actor.ID] = &entity.Student{
			AccountID:  actor.ID,
			University: university,
			Headline:   &headline,
		}

		newUniversity := "Stanford"
		updated, err := svc.UpdateStudentProfile(context.Background(), actor, studentDto.UpdateStudentInput{
			University: &newUniversity,
		})
		require.NoError(t, err)
		assert.Equal(t, "Stanford", updated.University)
		require.NotNil(t, updated.Headline)
		assert.Equal(t, "builder", *updated.Headline)
	})
}

func TestToggleAvailability(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := newTestService(repo)

	actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
	repo.students[actor.ID] = &entity.Student{AccountID: actor.ID, IsAvailable: true}

	updated, err := svc.ToggleAvailability(context.Background(), actor)
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	updated, err = svc.ToggleAvailability(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, updated.IsAvailable)
}

func TestExperiences(t *testing.T) {
	t.Run("add parses month dates", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := newTestService(repo)

		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		start := "2024-06"
		created, err := svc.AddExperience(context.Background(), actor, studentDto.ExperienceInput{
			CompanyName: "Acme",
			Title:       "Intern",
			StartDate:   &start,
			IsCurrent:   true,
		})
		require.NoError(t, err)
		require.NotNil(t, created.StartDate)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *created.StartDate)
		assert.Nil(t, created.EndDate)
	})

	t.Run("current position drops the end date", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := newTestService(repo)

		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		end := "2025-01"
		created, err := svc.AddExperience(context.Background(), actor, studentDto.ExperienceInput{
			CompanyName: "Acme",
			Title:       "Intern",
			EndDate:     &end,
			IsCurrent:   true,
		})
		require.NoError(t, err)
		assert.Nil(t, created.EndDate)
	})

	t.Run("bad date is invalid input", func(t *testing.T) {
		svc := newTestService(newFakeStudentRepo())

		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		start := "June 2024"
		_, err := svc.AddExperience(context.Background(), actor, studentDto.ExperienceInput{
			CompanyName: "Acme",
			Title:       "Intern",
			StartDate:   &start,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("delete requires ownership", func(t *testing.T) {
		repo := newFakeStudentRepo()
		svc := newTestService(repo)

		owner := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		created, err := svc.AddExperience(context.Background(), owner, studentDto.ExperienceInput{
			CompanyName: "Acme",
			Title:       "Intern",
		})
		require.NoError(t, err)

		other := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		err = svc.DeleteExperience(context.Background(), other, created.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		require.NoError(t, svc.DeleteExperience(context.Background(), owner, created.ID))
	})
}

func TestParseFlexibleDate(t *testing.T) {
	t.Run("nil and empty pass through", func(t *testing.T) {
		parsed, err := ParseFlexibleDate(nil)
		require.NoError(t, err)
		assert.Nil(t, parsed)

		empty := ""
		parsed, err = ParseFlexibleDate(&empty)
		require.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("full dates parse as-is", func(t *testing.T) {
		raw := "2024-06-15"
		parsed, err := ParseFlexibleDate(&raw)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *parsed)
	})
}

func TestDirectory(t *testing.T) {
	repo := newFakeStudentRepo()
	svc := newTestService(repo)

	id := uuid.New()
	repo.students[id] = &entity.Student{AccountID: id, IsPublic: true}

	t.Run("students cannot browse the directory", func(t *testing.T) {
		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
		_, err := svc.Directory(context.Background(), actor, studentDto.StudentFilter{})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("startups browse public profiles", func(t *testing.T) {
		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleStartup}
		resp, err := svc.Directory(context.Background(), actor, studentDto.StudentFilter{})
		require.NoError(t, err)
		assert.Len(t, resp.Data, 1)
	})
}
