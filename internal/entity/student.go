package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student holds the student-specific half of an account. Preference arrays
// are opaque tags, stored as jsonb and never interpreted server-side.
type Student struct {
	AccountID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Headline               *string   `gorm:"size:150" json:"headline,omitempty"`
	Bio                    *string   `gorm:"type:text" json:"bio,omitempty"`
	University             string    `gorm:"size:150" json:"university"`
	Major                  *string   `gorm:"size:150" json:"major,omitempty"`
	GraduationYear         *int      `json:"graduation_year,omitempty"`
	Availability           []string  `gorm:"serializer:json;type:jsonb" json:"availability"`
	CompensationPreference *string   `gorm:"size:50" json:"compensation_preference,omitempty"`
	WillingToRelocate      bool      `gorm:"default:false" json:"willing_to_relocate"`
	RequiresSponsorship    bool      `gorm:"default:false" json:"requires_sponsorship"`
	PreferredCompanySizes  []string  `gorm:"serializer:json;type:jsonb" json:"preferred_company_sizes"`
	JobFunctions           []string  `gorm:"serializer:json;type:jsonb" json:"job_functions"`
	InterestedRoles        []string  `gorm:"serializer:json;type:jsonb" json:"interested_roles"`
	GithubURL              *string   `gorm:"type:text" json:"github_url,omitempty"`
	PortfolioURL           *string   `gorm:"type:text" json:"portfolio_url,omitempty"`
	ResumeURL              *string   `gorm:"type:text" json:"resume_url,omitempty"`
	LookingFor             *string   `gorm:"type:text" json:"looking_for,omitempty"`
	ProudProject           *string   `gorm:"type:text" json:"proud_project,omitempty"`
	IsAvailable            bool      `gorm:"default:true" json:"is_available"`
	IsPublic               bool      `gorm:"default:true" json:"is_public"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Account     *Account     `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Skills      []Skill      `gorm:"many2many:student_skills;joinForeignKey:StudentID;joinReferences:SkillID" json:"skills,omitempty"`
	Experiences []Experience `gorm:"foreignKey:StudentID;references:AccountID;constraint:OnDelete:CASCADE" json:"experiences,omitempty"`
}

type Experience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	CompanyName string     `gorm:"size:150;not null" json:"company_name"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsCurrent   bool       `gorm:"default:false" json:"is_current"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
