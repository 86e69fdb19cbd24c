package dto

import (
	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
)

// UpdateStudentInput is a partial update: nil fields are left untouched so
// a settings form can't wipe onboarding-only fields.
type UpdateStudentInput struct {
	Headline               *string   `json:"headline"`
	Bio                    *string   `json:"bio"`
	University             *string   `json:"university"`
	Major                  *string   `json:"major"`
	GraduationYear         *int      `json:"graduation_year"`
	Availability           *[]string `json:"availability"`
	CompensationPreference *string   `json:"compensation_preference"`
	WillingToRelocate      *bool     `json:"willing_to_relocate"`
	RequiresSponsorship    *bool     `json:"requires_sponsorship"`
	PreferredCompanySizes  *[]string `json:"preferred_company_sizes"`
	JobFunctions           *[]string `json:"job_functions"`
	InterestedRoles        *[]string `json:"interested_roles"`
	GithubURL              *string   `json:"github_url"`
	PortfolioURL           *string   `json:"portfolio_url"`
	LookingFor             *string   `json:"looking_for"`
	ProudProject           *string   `json:"proud_project"`
	IsPublic               *bool     `json:"is_public"`
}

type UpdateSkillsInput struct {
	SkillIDs     []uuid.UUID `json:"skill_ids"`
	CustomSkills []string    `json:"custom_skills"`
}

type ExperienceInput struct {
	CompanyName string  `json:"company_name" binding:"required,max=150"`
	Title       string  `json:"title" binding:"required,max=150"`
	Description *string `json:"description"`
	// Month inputs: "YYYY-MM" or "YYYY-MM-DD".
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsCurrent bool    `json:"is_current"`
}

type StudentFilter struct {
	University    string `form:"university"`
	AvailableOnly bool   `form:"available_only"`
	commonDto.PageQuery
}

type PaginatedStudentResponse struct {
	Data []entity.Student         `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
