package entity

import (
	"time"

	"github.com/google/uuid"
)

// Startup holds the startup-specific half of an account. IsVerified is
// admin-controlled and gates visibility of the startup and its postings
// to students.
type Startup struct {
	AccountID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string    `gorm:"size:150;not null" json:"company_name"`
	Tagline     *string   `gorm:"size:200" json:"tagline,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Website     *string   `gorm:"type:text" json:"website,omitempty"`
	LogoURL     *string   `gorm:"type:text" json:"logo_url,omitempty"`
	Stage       *string   `gorm:"size:50" json:"stage,omitempty"`
	Industry    *string   `gorm:"size:100" json:"industry,omitempty"`
	TeamSize    *string   `gorm:"size:50" json:"team_size,omitempty"`
	FoundedYear *int      `json:"founded_year,omitempty"`
	Location    *string   `gorm:"size:100" json:"location,omitempty"`
	TwitterURL  *string   `gorm:"type:text" json:"twitter_url,omitempty"`
	LinkedinURL *string   `gorm:"type:text" json:"linkedin_url,omitempty"`
	IsVerified  bool      `gorm:"default:false;index" json:"is_verified"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Account *Account      `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Roles   []RolePosting `gorm:"foreignKey:StartupID;references:AccountID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
}
