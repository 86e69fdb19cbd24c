package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusViewed    ApplicationStatus = "viewed"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// AllStatuses lists every application status in pipeline order.
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusViewed,
	StatusInterview,
	StatusOffer,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

// transitions is the legal pipeline for the role-owning startup.
// Withdrawal is a student-only transition handled by CanWithdraw.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:   {StatusViewed, StatusRejected},
	StatusViewed:    {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	StatusOffer:     {StatusAccepted, StatusRejected},
}

func (s ApplicationStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// CanAdvanceTo reports whether the startup may move an application from s
// to target.
func (s ApplicationStatus) CanAdvanceTo(target ApplicationStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// CanWithdraw reports whether the owning student may withdraw from s.
func (s ApplicationStatus) CanWithdraw() bool {
	return !s.Terminal()
}

// Application is a student's request to be considered for a role posting.
// The (role_id, student_id) pair is unique at the storage layer so a raced
// double-apply surfaces as a duplicate-key error rather than a second row.
type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_role_student" json:"role_id"`
	StudentID   uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_applications_role_student" json:"student_id"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:applied" json:"status"`
	CoverLetter *string           `gorm:"type:text" json:"cover_letter,omitempty"`
	Notes       *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	Role    *RolePosting `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"role,omitempty"`
	Student *Student     `gorm:"foreignKey:StudentID;references:AccountID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusApplied
	}
	return nil
}
