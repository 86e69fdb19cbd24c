package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	authRepo "github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
	onboardingDto "github.com/kickstarthq/talent-backend/internal/modules/onboarding/dto"
	search "github.com/kickstarthq/talent-backend/internal/modules/search/service"
	skill "github.com/kickstarthq/talent-backend/internal/modules/skill/service"
	startupRepo "github.com/kickstarthq/talent-backend/internal/modules/startup/repository"
	startupSvc "github.com/kickstarthq/talent-backend/internal/modules/startup/service"
	studentRepo "github.com/kickstarthq/talent-backend/internal/modules/student/repository"
	studentSvc "github.com/kickstarthq/talent-backend/internal/modules/student/service"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"gorm.io/gorm"
)

type OnboardingService interface {
	Complete(ctx context.Context, actor entity.Actor, input onboardingDto.CompleteOnboardingInput) (*onboardingDto.OnboardingResponse, error)
}

type onboardingService struct {
	accountRepo authRepo.AccountRepository
	studentRepo studentRepo.StudentRepository
	startupRepo startupRepo.StartupRepository
	skillSvc    skill.SkillService
	search      search.SearchService
}

func NewOnboardingService(
	accountRepo authRepo.AccountRepository,
	studentRepository studentRepo.StudentRepository,
	startupRepository startupRepo.StartupRepository,
	skillSvc skill.SkillService,
	searchSvc search.SearchService,
) OnboardingService {
	return &onboardingService{
		accountRepo: accountRepo,
		studentRepo: studentRepository,
		startupRepo: startupRepository,
		skillSvc:    skillSvc,
		search:      searchSvc,
	}
}

// Complete finalizes onboarding for the caller's role. Re-running it is
// allowed and simply re-applies the submitted profile.
func (s *onboardingService) Complete(ctx context.Context, actor entity.Actor, input onboardingDto.CompleteOnboardingInput) (*onboardingDto.OnboardingResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	var redirect string
	switch actor.Role {
	case entity.RoleStudent:
		if input.Student == nil {
			return nil, apperror.ErrInvalidInput
		}
		if err := s.completeStudent(ctx, actor.ID, *input.Student); err != nil {
			return nil, err
		}
		redirect = "/student/dashboard"
	case entity.RoleStartup:
		if input.Startup == nil {
			return nil, apperror.ErrInvalidInput
		}
		if err := s.completeStartup(ctx, actor.ID, *input.Startup); err != nil {
			return nil, err
		}
		redirect = "/startup/dashboard"
	default:
		return nil, apperror.ErrForbidden
	}

	account.FullName = input.FullName
	if input.Phone != nil {
		account.Phone = input.Phone
	}
	if input.Location != nil {
		account.Location = input.Location
	}
	if input.LinkedinURL != nil {
		account.LinkedinURL = input.LinkedinURL
	}
	account.OnboardingCompleted = true
	account.Student = nil
	account.Startup = nil
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.index(ctx, actor)

	return &onboardingDto.OnboardingResponse{
		OnboardingCompleted: true,
		Redirect:            redirect,
	}, nil
}

func (s *onboardingService) completeStudent(ctx context.Context, accountID uuid.UUID, input onboardingDto.StudentOnboardingInput) error {
	student, err := s.studentRepo.FindByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		student = &entity.Student{AccountID: accountID}
	} else {
		student.Account = nil
		student.Skills = nil
		student.Experiences = nil
	}

	studentSvc.ApplyProfileUpdate(student, input.Profile)
	if err := s.studentRepo.Upsert(ctx, student); err != nil {
		return err
	}

	skillIDs, err := s.skillSvc.ResolveSkillIDs(ctx, input.Skills.SkillIDs, input.Skills.CustomSkills)
	if err != nil {
		return err
	}
	if err := s.studentRepo.ReplaceSkills(ctx, accountID, skillIDs); err != nil {
		return err
	}

	if len(input.Experiences) > 0 {
		experiences := make([]entity.Experience, 0, len(input.Experiences))
		for _, exp := range input.Experiences {
			built, err := studentSvc.BuildExperience(accountID, exp)
			if err != nil {
				return err
			}
			experiences = append(experiences, *built)
		}
		if err := s.studentRepo.CreateExperiences(ctx, experiences); err != nil {
			return err
		}
	}

	return nil
}

func (s *onboardingService) completeStartup(ctx context.Context, accountID uuid.UUID, input onboardingDto.StartupOnboardingInput) error {
	startup, err := s.startupRepo.FindByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		startup = &entity.Startup{AccountID: accountID}
	} else {
		startup.Account = nil
		startup.Roles = nil
	}

	startupSvc.ApplyProfileUpdate(startup, input.Profile)
	if startup.CompanyName == "" {
		return apperror.ErrInvalidInput
	}

	return s.startupRepo.Upsert(ctx, startup)
}

func (s *onboardingService) index(ctx context.Context, actor entity.Actor) {
	if s.search == nil {
		return
	}

	switch actor.Role {
	case entity.RoleStudent:
		student, err := s.studentRepo.FindByID(ctx, actor.ID)
		if err == nil {
			_ = s.search.IndexStudent(student, student.Account)
		}
	case entity.RoleStartup:
		startup, err := s.startupRepo.FindByID(ctx, actor.ID)
		if err == nil {
			_ = s.search.IndexStartup(startup)
		}
	}
}
