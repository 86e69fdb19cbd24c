package dto

import (
	startupDto "github.com/kickstarthq/talent-backend/internal/modules/startup/dto"
	studentDto "github.com/kickstarthq/talent-backend/internal/modules/student/dto"
)

// StudentOnboardingInput carries the student profile plus the initial
// skill set and experience history captured by the onboarding flow.
type StudentOnboardingInput struct {
	Profile     studentDto.UpdateStudentInput `json:"profile"`
	Skills      studentDto.UpdateSkillsInput  `json:"skills"`
	Experiences []studentDto.ExperienceInput  `json:"experiences" binding:"omitempty,dive"`
}

type StartupOnboardingInput struct {
	Profile startupDto.UpdateStartupInput `json:"profile"`
}

// CompleteOnboardingInput is role-shaped: exactly one of Student or
// Startup must match the caller's role.
type CompleteOnboardingInput struct {
	FullName    string  `json:"full_name" binding:"required,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Location    *string `json:"location" binding:"omitempty,max=100"`
	LinkedinURL *string `json:"linkedin_url"`

	Student *StudentOnboardingInput `json:"student"`
	Startup *StartupOnboardingInput `json:"startup"`
}

type OnboardingResponse struct {
	OnboardingCompleted bool   `json:"onboarding_completed"`
	Redirect            string `json:"redirect"`
}
