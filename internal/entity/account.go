package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRole string

const (
	RoleStudent AccountRole = "student"
	RoleStartup AccountRole = "startup"
	RoleAdmin   AccountRole = "admin"
)

func (r AccountRole) Valid() bool {
	switch r {
	case RoleStudent, RoleStartup, RoleAdmin:
		return true
	}
	return false
}

// Account is the identity record. Role-specific data lives in Student or
// Startup keyed by the same id.
type Account struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Role                AccountRole `gorm:"size:20;not null;index" json:"role"`
	Email               string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash        string      `gorm:"size:255;not null" json:"-"`
	FullName            string      `gorm:"size:100" json:"full_name"`
	Phone               *string     `gorm:"size:30" json:"phone,omitempty"`
	LinkedinURL         *string     `gorm:"type:text" json:"linkedin_url,omitempty"`
	Location            *string     `gorm:"size:100" json:"location,omitempty"`
	AvatarURL           *string     `gorm:"type:text" json:"avatar_url,omitempty"`
	OnboardingCompleted bool        `gorm:"default:false" json:"onboarding_completed"`
	CreatedAt           time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Student *Student `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Startup *Startup `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"startup,omitempty"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
