package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeNewApplication = "new_application"
	NotificationTypeStatusChange   = "status_change"
	NotificationTypeVerification   = "verification"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID  uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"` // recipient
	ActorID    uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`         // who triggered it
	EntityID   uuid.UUID `gorm:"type:uuid;not null" json:"entity_id"`        // application or startup id
	EntityType string    `gorm:"size:50;not null" json:"entity_type"`        // 'application' or 'startup'
	Type       string    `gorm:"size:50;not null" json:"type"`
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Actor *Account `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
