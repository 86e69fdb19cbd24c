package dto

import (
	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	commonDto "github.com/kickstarthq/talent-backend/pkg/dto"
)

type RoleInput struct {
	Title        string      `json:"title" binding:"required,max=150"`
	Description  *string     `json:"description"`
	Requirements *string     `json:"requirements"`
	RoleType     *string     `json:"role_type"`
	JobFunction  *string     `json:"job_function"`
	Paid         bool        `json:"paid"`
	SalaryMin    *int        `json:"salary_min"`
	SalaryMax    *int        `json:"salary_max"`
	Equity       bool        `json:"equity"`
	EquityRange  *string     `json:"equity_range"`
	Duration     *string     `json:"duration"`
	LocationType *string     `json:"location_type"`
	Location     *string     `json:"location"`
	IsActive     *bool       `json:"is_active"`
	SkillIDs     []uuid.UUID `json:"skill_ids"`
	CustomSkills []string    `json:"custom_skills"`
}

type RoleFilter struct {
	RoleType     string `form:"role_type"`
	JobFunction  string `form:"job_function"`
	LocationType string `form:"location_type"`
	PaidOnly     bool   `form:"paid_only"`
	commonDto.PageQuery
}

type PaginatedRoleResponse struct {
	Data []entity.RolePosting     `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
