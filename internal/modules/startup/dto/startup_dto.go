package dto

import (
	"github.com/kickstarthq/talent-backend/internal/entity"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
)

// UpdateStartupInput is a partial update: nil fields are left untouched.
// CompanyName is required on first save but optional afterwards.
type UpdateStartupInput struct {
	CompanyName *string `json:"company_name" binding:"omitempty,max=150"`
	Tagline     *string `json:"tagline" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Stage       *string `json:"stage" binding:"omitempty,max=50"`
	Industry    *string `json:"industry" binding:"omitempty,max=100"`
	TeamSize    *string `json:"team_size" binding:"omitempty,max=50"`
	FoundedYear *int    `json:"founded_year"`
	Location    *string `json:"location" binding:"omitempty,max=100"`
	TwitterURL  *string `json:"twitter_url"`
	LinkedinURL *string `json:"linkedin_url"`
}

type StartupFilter struct {
	Industry string `form:"industry"`
	Stage    string `form:"stage"`
	commonDto.PageQuery
}

type PaginatedStartupResponse struct {
	Data []entity.Startup         `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
