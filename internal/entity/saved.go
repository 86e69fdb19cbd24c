package entity

import (
	"time"

	"github.com/google/uuid"
)

// SavedRole marks a role bookmarked by a student. The composite primary
// key enforces one save per pair.
type SavedRole struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"student_id"`
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"role_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Role *RolePosting `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"role,omitempty"`
}

// SavedStudent marks a student bookmarked by a startup.
type SavedStudent struct {
	StartupID uuid.UUID `gorm:"type:uuid;primaryKey" json:"startup_id"`
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"student_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Student *Student `gorm:"foreignKey:StudentID;references:AccountID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}
