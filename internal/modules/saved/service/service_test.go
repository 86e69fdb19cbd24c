package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	roleDto "github.com/kickstarthq/talent-backend/internal/modules/role/dto"
	studentDto "github.com/kickstarthq/talent-backend/internal/modules/student/dto"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type savedKey struct {
	a, b uuid.UUID
}

type fakeSavedRepo struct {
	savedRoles    map[savedKey]entity.SavedRole
	savedStudents map[savedKey]entity.SavedStudent
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{
		savedRoles:    make(map[savedKey]entity.SavedRole),
		savedStudents: make(map[savedKey]entity.SavedStudent),
	}
}

func (f *fakeSavedRepo) CreateSavedRole(ctx context.Context, saved *entity.SavedRole) error {
	key := savedKey{saved.StudentID, saved.RoleID}
	if _, exists := f.savedRoles[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.savedRoles[key] = *saved
	return nil
}

func (f *fakeSavedRepo) DeleteSavedRole(ctx context.Context, studentID, roleID uuid.UUID) (int64, error) {
	key := savedKey{studentID, roleID}
	if _, exists := f.savedRoles[key]; !exists {
		return 0, nil
	}
	delete(f.savedRoles, key)
	return 1, nil
}

func (f *fakeSavedRepo) ListSavedRoles(ctx context.Context, studentID uuid.UUID) ([]entity.SavedRole, error) {
	var out []entity.SavedRole
	for key, saved := range f.savedRoles {
		if key.a == studentID {
			out = append(out, saved)
		}
	}
	return out, nil
}

func (f *fakeSavedRepo) CreateSavedStudent(ctx context.Context, saved *entity.SavedStudent) error {
	key := savedKey{saved.StartupID, saved.StudentID}
	if _, exists := f.savedStudents[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.savedStudents[key] = *saved
	return nil
}

func (f *fakeSavedRepo) DeleteSavedStudent(ctx context.Context, startupID, studentID uuid.UUID) (int64, error) {
	key := savedKey{startupID, studentID}
	if _, exists := f.savedStudents[key]; !exists {
		return 0, nil
	}
	delete(f.savedStudents, key)
	return 1, nil
}

func (f *fakeSavedRepo) ListSavedStudents(ctx context.Context, startupID uuid.UUID) ([]entity.SavedStudent, error) {
	var out []entity.SavedStudent
	for key, saved := range f.savedStudents {
		if key.a == startupID {
			out = append(out, saved)
		}
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles map[uuid.UUID]*entity.RolePosting
}

func (f *fakeRoleRepo) Create(ctx context.Context, role *entity.RolePosting) error { return nil }
func (f *fakeRoleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.RolePosting, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}
func (f *fakeRoleRepo) FindByStartup(ctx context.Context, startupID uuid.UUID) ([]entity.RolePosting, error) {
	return nil, nil
}
func (f *fakeRoleRepo) Update(ctx context.Context, role *entity.RolePosting) error { return nil }
func (f *fakeRoleRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }
func (f *fakeRoleRepo) ReplaceSkills(ctx context.Context, roleID uuid.UUID, skillIDs []uuid.UUID) error {
	return nil
}
func (f *fakeRoleRepo) Discover(ctx context.Context, filter roleDto.RoleFilter) ([]entity.RolePosting, int64, error) {
	return nil, 0, nil
}
func (f *fakeRoleRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeStudentRepo struct {
	students map[uuid.UUID]*entity.Student
}

func (f *fakeStudentRepo) Upsert(ctx context.Context, student *entity.Student) error { return nil }
func (f *fakeStudentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return student, nil
}
func (f *fakeStudentRepo) ReplaceSkills(ctx context.Context, studentID uuid.UUID, skillIDs []uuid.UUID) error {
	return nil
}
func (f *fakeStudentRepo) CreateExperience(ctx context.Context, experience *entity.Experience) error {
	return nil
}
func (f *fakeStudentRepo) CreateExperiences(ctx context.Context, experiences []entity.Experience) error {
	return nil
}
func (f *fakeStudentRepo) DeleteExperience(ctx context.Context, id, studentID uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakeStudentRepo) Directory(ctx context.Context, filter studentDto.StudentFilter) ([]entity.Student, int64, error) {
	return nil, 0, nil
}
func (f *fakeStudentRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fixture struct {
	svc     SavedService
	student entity.Actor
	startup entity.Actor
	role    *entity.RolePosting
	profile *entity.Student
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	studentID := uuid.New()
	startupID := uuid.New()

	role := &entity.RolePosting{
		ID:        uuid.New(),
		StartupID: startupID,
		Title:     "Founding Engineer",
		IsActive:  true,
		Startup:   &entity.Startup{AccountID: startupID, IsVerified: true},
	}
	profile := &entity.Student{AccountID: studentID, IsPublic: true}

	svc := NewSavedService(
		newFakeSavedRepo(),
		&fakeRoleRepo{roles: map[uuid.UUID]*entity.RolePosting{role.ID: role}},
		&fakeStudentRepo{students: map[uuid.UUID]*entity.Student{studentID: profile}},
	)

	return &fixture{
		svc:     svc,
		student: entity.Actor{ID: studentID, Role: entity.RoleStudent},
		startup: entity.Actor{ID: startupID, Role: entity.RoleStartup},
		role:    role,
		profile: profile,
	}
}

func TestSaveRole(t *testing.T) {
	t.Run("student saves and lists a role", func(t *testing.T) {
		fx := newFixture(t)

		require.NoError(t, fx.svc.SaveRole(context.Background(), fx.student, fx.role.ID))

		list, err := fx.svc.ListSavedRoles(context.Background(), fx.student)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("saving twice returns already saved", func(t *testing.T) {
		fx := newFixture(t)

		require.NoError(t, fx.svc.SaveRole(context.Background(), fx.student, fx.role.ID))
		err := fx.svc.SaveRole(context.Background(), fx.student, fx.role.ID)
		assert.ErrorIs(t, err, apperror.ErrAlreadySaved)
	})

	t.Run("only students save roles", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.svc.SaveRole(context.Background(), fx.startup, fx.role.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("inactive role reads as not found", func(t *testing.T) {
		fx := newFixture(t)
		fx.role.IsActive = false

		err := fx.svc.SaveRole(context.Background(), fx.student, fx.role.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("unsaving an unsaved role returns not found", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.svc.UnsaveRole(context.Background(), fx.student, fx.role.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("unsave removes the bookmark", func(t *testing.T) {
		fx := newFixture(t)

		require.NoError(t, fx.svc.SaveRole(context.Background(), fx.student, fx.role.ID))
		require.NoError(t, fx.svc.UnsaveRole(context.Background(), fx.student, fx.role.ID))

		list, err := fx.svc.ListSavedRoles(context.Background(), fx.student)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestSaveStudent(t *testing.T) {
	t.Run("startup saves and lists a student", func(t *testing.T) {
		fx := newFixture(t)

		require.NoError(t, fx.svc.SaveStudent(context.Background(), fx.startup, fx.student.ID))

		list, err := fx.svc.ListSavedStudents(context.Background(), fx.startup)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("saving twice returns already saved", func(t *testing.T) {
		fx := newFixture(t)

		require.NoError(t, fx.svc.SaveStudent(context.Background(), fx.startup, fx.student.ID))
		err := fx.svc.SaveStudent(context.Background(), fx.startup, fx.student.ID)
		assert.ErrorIs(t, err, apperror.ErrAlreadySaved)
	})

	t.Run("only startups save students", func(t *testing.T) {
		fx := newFixture(t)

		err := fx.svc.SaveStudent(context.Background(), fx.student, fx.student.ID)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("private profile reads as not found", func(t *testing.T) {
		fx := newFixture(t)
		fx.profile.IsPublic = false

		err := fx.svc.SaveStudent(context.Background(), fx.startup, fx.student.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
