package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RolePosting is a position posted by a startup. Distinct from AccountRole,
// which tags the actor.
type RolePosting struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StartupID    uuid.UUID `gorm:"type:uuid;not null;index" json:"startup_id"`
	Title        string    `gorm:"size:150;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	Requirements *string   `gorm:"type:text" json:"requirements,omitempty"`
	RoleType     *string   `gorm:"size:50" json:"role_type,omitempty"`
	JobFunction  *string   `gorm:"size:100" json:"job_function,omitempty"`
	Paid         bool      `gorm:"default:false" json:"paid"`
	SalaryMin    *int      `json:"salary_min,omitempty"`
	SalaryMax    *int      `json:"salary_max,omitempty"`
	Equity       bool      `gorm:"default:false" json:"equity"`
	EquityRange  *string   `gorm:"size:50" json:"equity_range,omitempty"`
	Duration     *string   `gorm:"size:50" json:"duration,omitempty"`
	LocationType *string   `gorm:"size:50" json:"location_type,omitempty"`
	Location     *string   `gorm:"size:100" json:"location,omitempty"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Startup *Startup `gorm:"foreignKey:StartupID;references:AccountID" json:"startup,omitempty"`
	Skills  []Skill  `gorm:"many2many:role_skills;joinForeignKey:RoleID;joinReferences:SkillID" json:"skills,omitempty"`
}

func (r *RolePosting) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
