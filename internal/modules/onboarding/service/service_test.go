package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	onboardingDto "github.com/kickstarthq/talent-backend/internal/modules/onboarding/dto"
	startupDto "github.com/kickstarthq/talent-backend/internal/modules/startup/dto"
	studentDto "github.com/kickstarthq/talent-backend/internal/modules/student/dto"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error {
	f.accounts[account.ID.String()] = account
	return nil
}

func (f *fakeAccountRepo) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	f.accounts[account.ID.String()] = account
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id string) error {
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) CountByRole(ctx context.Context, role entity.AccountRole) (int64, error) {
	return 0, nil
}

type fakeStudentRepo struct {
	students    map[uuid.UUID]*entity.Student
	skills      map[uuid.UUID][]uuid.UUID
	experiences []entity.Experience
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
	f.skills[studentID] = skillIDs
	return nil
}

func (f *fakeStudentRepo) CreateExperience(ctx context.Context, experience *entity.Experience) error {
	f.experiences = append(f.experiences, *experience)
	return nil
}

func (f *fakeStudentRepo) CreateExperiences(ctx context.Context, experiences []entity.Experience) error {
	f.experiences = append(f.experiences, experiences...)
	return nil
}

func (f *fakeStudentRepo) DeleteExperience(ctx context.Context, id, studentID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeStudentRepo) Directory(ctx context.Context, filter studentDto.StudentFilter) ([]entity.Student, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudentRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

type fakeStartupRepo struct {
	startups map[uuid.UUID]*entity.Startup
}

func (f *fakeStartupRepo) Upsert(ctx context.Context, startup *entity.Startup) error {
	stored := *startup
	f.startups[startup.AccountID] = &stored
	return nil
}

func (f *fakeStartupRepo) FindByID(ctx context.Context, accountID uuid.UUID) (*entity.Startup, error) {
	startup, ok := f.startups[accountID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *startup
	return &copied, nil
}

func (f *fakeStartupRepo) FindByIDWithRoles(ctx context.Context, accountID uuid.UUID, activeOnly bool) (*entity.Startup, error) {
	return f.FindByID(ctx, accountID)
}

func (f *fakeStartupRepo) Directory(ctx context.Context, filter startupDto.StartupFilter, verified *bool) ([]entity.Startup, int64, error) {
	return nil, 0, nil
}

func (f *fakeStartupRepo) SetVerified(ctx context.Context, accountID uuid.UUID, verified bool) (int64, error) {
	return 0, nil
}

func (f *fakeStartupRepo) Count(ctx context.Context) (int64, error)         { return 0, nil }
func (f *fakeStartupRepo) CountVerified(ctx context.Context) (int64, error) { return 0, nil }

type fakeSkillService struct{}

func (f *fakeSkillService) ListSkills(ctx context.Context) ([]entity.Skill, error) {
	return nil, nil
}

func (f *fakeSkillService) ResolveSkillIDs(ctx context.Context, skillIDs []uuid.UUID, customNames []string) ([]uuid.UUID, error) {
	resolved := append([]uuid.UUID{}, skillIDs...)
	for range customNames {
		resolved = append(resolved, uuid.New())
	}
	return resolved, nil
}

type fixture struct {
	svc      OnboardingService
	accounts *fakeAccountRepo
	students *fakeStudentRepo
	startups *fakeStartupRepo
}

func newFixture(t *testing.T, role entity.AccountRole) (*fixture, entity.Actor) {
	t.Helper()

	accounts := &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
	students := &fakeStudentRepo{
		students: make(map[uuid.UUID]*entity.Student),
		skills:   make(map[uuid.UUID][]uuid.UUID),
	}
	startups := &fakeStartupRepo{startups: make(map[uuid.UUID]*entity.Startup)}

	actor := entity.Actor{ID: uuid.New(), Role: role}
	accounts.accounts[actor.ID.String()] = &entity.Account{
		ID:    actor.ID,
		Role:  role,
		Email: "someone@example.com",
	}

	return &fixture{
		svc:      NewOnboardingService(accounts, students, startups, &fakeSkillService{}, nil),
		accounts: accounts,
		students: students,
		startups: startups,
	}, actor
}

func TestCompleteStudentOnboarding(t *testing.T) {
	fx, actor := newFixture(t, entity.RoleStudent)

	university := "MIT"
	start := "2024-06"
	resp, err := fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{
		FullName: "Ada Lovelace",
		Student: &onboardingDto.StudentOnboardingInput{
			Profile: studentDto.UpdateStudentInput{University: &university},
			Skills:  studentDto.UpdateSkillsInput{CustomSkills: []string{"Go"}},
			Experiences: []studentDto.ExperienceInput{
				{CompanyName: "Acme", Title: "Intern", StartDate: &start, IsCurrent: true},
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.OnboardingCompleted)
	assert.Equal(t, "/student/dashboard", resp.Redirect)

	account, err := fx.accounts.FindByID(context.Background(), actor.ID.String())
	require.NoError(t, err)
	assert.True(t, account.OnboardingCompleted)
	assert.Equal(t, "Ada Lovelace", account.FullName)

	student, err := fx.students.FindByID(context.Background(), actor.ID)
	require.NoError(t, err)
	assert.Equal(t, "MIT", student.University)
	assert.Len(t, fx.students.skills[actor.ID], 1)
	assert.Len(t, fx.students.experiences, 1)
}

func TestCompleteStartupOnboarding(t *testing.T) {
	fx, actor := newFixture(t, entity.RoleStartup)

	company := "Acme"
	resp, err := fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{
		FullName: "Grace Hopper",
		Startup: &onboardingDto.StartupOnboardingInput{
			Profile: startupDto.UpdateStartupInput{CompanyName: &company},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/startup/dashboard", resp.Redirect)

	startup, err := fx.startups.FindByID(context.Background(), actor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", startup.CompanyName)
	// New startups always start unverified.
	assert.False(t, startup.IsVerified)
}

func TestCompleteOnboardingValidation(t *testing.T) {
	t.Run("student payload required for students", func(t *testing.T) {
		fx, actor := newFixture(t, entity.RoleStudent)

		_, err := fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{FullName: "Ada"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("startup needs a company name", func(t *testing.T) {
		fx, actor := newFixture(t, entity.RoleStartup)

		_, err := fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{
			FullName: "Grace",
			Startup:  &onboardingDto.StartupOnboardingInput{},
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("admins have no onboarding", func(t *testing.T) {
		fx, actor := newFixture(t, entity.RoleAdmin)

		_, err := fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{FullName: "Root"})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("re-running refreshes the profile", func(t *testing.T) {
		fx, actor := newFixture(t, entity.RoleStartup)

		company := "Acme"
		_, err := fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{
			FullName: "Grace",
			Startup:  &onboardingDto.StartupOnboardingInput{Profile: startupDto.UpdateStartupInput{CompanyName: &company}},
		})
		require.NoError(t, err)

		renamed := "Acme Labs"
		_, err = fx.svc.Complete(context.Background(), actor, onboardingDto.CompleteOnboardingInput{
			FullName: "Grace",
			Startup:  &onboardingDto.StartupOnboardingInput{Profile: startupDto.UpdateStartupInput{CompanyName: &renamed}},
		})
		require.NoError(t, err)

		startup, err := fx.startups.FindByID(context.Background(), actor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Labs", startup.CompanyName)
	})
}
