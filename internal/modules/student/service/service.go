package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	authRepo "github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
	search "github.com/kickstarthq/talent-backend/internal/modules/search/service"
	skill "github.com/kickstarthq/talent-backend/internal/modules/skill/service"
	studentDto "github.com/kickstarthq/talent-backend/internal/modules/student/dto"
	studentRepo "github.com/kickstarthq/talent-backend/internal/modules/student/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
	"github.com/kickstarthq/talent-backend/pkg/storage"
	"gorm.io/gorm"
)

type StudentService interface {
	GetStudent(ctx context.Context, actor entity.Actor, studentID uuid.UUID) (*entity.Student, error)
	UpdateStudentProfile(ctx context.Context, actor entity.Actor, input studentDto.UpdateStudentInput) (*entity.Student, error)
	ToggleAvailability(ctx context.Context, actor entity.Actor) (*entity.Student, error)
	UpdateSkills(ctx context.Context, actor entity.Actor, input studentDto.UpdateSkillsInput) error
	AddExperience(ctx context.Context, actor entity.Actor, input studentDto.ExperienceInput) (*entity.Experience, error)
	DeleteExperience(ctx context.Context, actor entity.Actor, experienceID uuid.UUID) error
	UploadResume(ctx context.Context, actor entity.Actor, file *commonDto.UploadFile) (string, error)
	Directory(ctx context.Context, actor entity.Actor, filter studentDto.StudentFilter) (*studentDto.PaginatedStudentResponse, error)
}

type studentService struct {
	repo        studentRepo.StudentRepository
	accountRepo authRepo.AccountRepository
	skillSvc    skill.SkillService
	search      search.SearchService
	fileStorage storage.FileStorage
}

func NewStudentService(
	repo studentRepo.StudentRepository,
	accountRepo authRepo.AccountRepository,
	skillSvc skill.SkillService,
	searchSvc search.SearchService,
	fileStorage storage.FileStorage,
) StudentService {
	return &studentService{
		repo:        repo,
		accountRepo: accountRepo,
		skillSvc:    skillSvc,
		search:      searchSvc,
		fileStorage: fileStorage,
	}
}

func (s *studentService) GetStudent(ctx context.Context, actor entity.Actor, studentID uuid.UUID) (*entity.Student, error) {
	student, err := s.repo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if actor.CanModify(studentID) {
		return student, nil
	}

	// Startups only see public, onboarded profiles.
	if actor.Role != entity.RoleStartup || !student.IsPublic ||
		(student.Account != nil && !student.Account.OnboardingCompleted) {
		return nil, apperror.ErrNotFound
	}

	return student, nil
}

func (s *studentService) UpdateStudentProfile(ctx context.Context, actor entity.Actor, input studentDto.UpdateStudentInput) (*entity.Student, error) {
	if actor.Role != entity.RoleStudent {
		return nil, apperror.ErrForbidden
	}

	student, err := s.findOrInit(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	ApplyProfileUpdate(student, input)

	if err := s.repo.Upsert(ctx, student); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, actor.ID)
}

func (s *studentService) ToggleAvailability(ctx context.Context, actor entity.Actor) (*entity.Student, error) {
	if actor.Role != entity.RoleStudent {
		return nil, apperror.ErrForbidden
	}

	student, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	student.IsAvailable = !student.IsAvailable
	student.Skills = nil
	student.Experiences = nil
	student.Account = nil
	if err := s.repo.Upsert(ctx, student); err != nil {
		return nil, err
	}

	return s.reloadAndIndex(ctx, actor.ID)
}

func (s *studentService) UpdateSkills(ctx context.Context, actor entity.Actor, input studentDto.UpdateSkillsInput) error {
	if actor.Role != entity.RoleStudent {
		return apperror.ErrForbidden
	}

	skillIDs, err := s.skillSvc.ResolveSkillIDs(ctx, input.SkillIDs, input.CustomSkills)
	if err != nil {
		return err
	}

	return s.repo.ReplaceSkills(ctx, actor.ID, skillIDs)
}

func (s *studentService) AddExperience(ctx context.Context, actor entity.Actor, input studentDto.ExperienceInput) (*entity.Experience, error) {
	if actor.Role != entity.RoleStudent {
		return nil, apperror.ErrForbidden
	}

	experience, err := BuildExperience(actor.ID, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExperience(ctx, experience); err != nil {
		return nil, err
	}

	return experience, nil
}

func (s *studentService) DeleteExperience(ctx context.Context, actor entity.Actor, experienceID uuid.UUID) error {
	if actor.Role != entity.RoleStudent {
		return apperror.ErrForbidden
	}

	rows, err := s.repo.DeleteExperience(ctx, experienceID, actor.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *studentService) UploadResume(ctx context.Context, actor entity.Actor, file *commonDto.UploadFile) (string, error) {
	if actor.Role != entity.RoleStudent {
		return "", apperror.ErrForbidden
	}
	if file == nil || file.Reader == nil || s.fileStorage == nil {
		return "", apperror.ErrBadRequest
	}

	url, err := s.fileStorage.UploadFile(ctx, file.Reader, "resumes", file.FileName)
	if err != nil {
		return "", err
	}

	student, err := s.findOrInit(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	student.ResumeURL = &url
	if err := s.repo.Upsert(ctx, student); err != nil {
		return "", err
	}

	return url, nil
}

func (s *studentService) Directory(ctx context.Context, actor entity.Actor, filter studentDto.StudentFilter) (*studentDto.PaginatedStudentResponse, error) {
	if actor.Role != entity.RoleStartup && actor.Role != entity.RoleAdmin {
		return nil, apperror.ErrForbidden
	}

	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	students, total, err := s.repo.Directory(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &studentDto.PaginatedStudentResponse{
		Data: students,
		Meta: commonDto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

func (s *studentService) findOrInit(ctx context.Context, accountID uuid.UUID) (*entity.Student, error) {
	student, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.Student{AccountID: accountID}, nil
		}
		return nil, err
	}
	student.Skills = nil
	student.Experiences = nil
	student.Account = nil
	return student, nil
}

func (s *studentService) reloadAndIndex(ctx context.Context, accountID uuid.UUID) (*entity.Student, error) {
	student, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		_ = s.search.IndexStudent(student, student.Account)
	}

	return student, nil
}

// ApplyProfileUpdate copies the non-nil fields of a partial update onto
// the entity. Shared with the onboarding flow.
func ApplyProfileUpdate(student *entity.Student, input studentDto.UpdateStudentInput) {
	if input.Headline != nil {
		student.Headline = input.Headline
	}
	if input.Bio != nil {
		student.Bio = input.Bio
	}
	if input.University != nil {
		student.University = *input.University
	}
	if input.Major != nil {
		student.Major = input.Major
	}
	if input.GraduationYear != nil {
		student.GraduationYear = input.GraduationYear
	}
	if input.Availability != nil {
		student.Availability = *input.Availability
	}
	if input.CompensationPreference != nil {
		student.CompensationPreference = input.CompensationPreference
	}
	if input.WillingToRelocate != nil {
		student.WillingToRelocate = *input.WillingToRelocate
	}
	if input.RequiresSponsorship != nil {
		student.RequiresSponsorship = *input.RequiresSponsorship
	}
	if input.PreferredCompanySizes != nil {
		student.PreferredCompanySizes = *input.PreferredCompanySizes
	}
	if input.JobFunctions != nil {
		student.JobFunctions = *input.JobFunctions
	}
	if input.InterestedRoles != nil {
		student.InterestedRoles = *input.InterestedRoles
	}
	if input.GithubURL != nil {
		student.GithubURL = input.GithubURL
	}
	if input.PortfolioURL != nil {
		student.PortfolioURL = input.PortfolioURL
	}
	if input.LookingFor != nil {
		student.LookingFor = input.LookingFor
	}
	if input.ProudProject != nil {
		student.ProudProject = input.ProudProject
	}
	if input.IsPublic != nil {
		student.IsPublic = *input.IsPublic
	}
}

var monthOnly = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParseFlexibleDate accepts "YYYY-MM-DD" or the "YYYY-MM" shape month
// inputs produce, normalizing the latter to the first of the month.
func ParseFlexibleDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	raw := *value
	if monthOnly.MatchString(raw) {
		raw += "-01"
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}
	return &parsed, nil
}

// BuildExperience maps an experience form onto the entity, dropping the
// end date for a current position.
func BuildExperience(studentID uuid.UUID, input studentDto.ExperienceInput) (*entity.Experience, error) {
	startDate, err := ParseFlexibleDate(input.StartDate)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	if !input.IsCurrent {
		endDate, err = ParseFlexibleDate(input.EndDate)
		if err != nil {
			return nil, err
		}
	}

	return &entity.Experience{
		StudentID:   studentID,
		CompanyName: input.CompanyName,
		Title:       input.Title,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		IsCurrent:   input.IsCurrent,
	}, nil
}
