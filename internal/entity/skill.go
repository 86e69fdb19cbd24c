package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is an entry in the shared global vocabulary. NameKey is the
// lowercased name under a unique index, so lookup-or-create is a single
// upsert with no read-then-insert race; the first writer wins on a name
// collision and the entry is visible to all actors afterwards.
type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	NameKey   string    `gorm:"size:100;uniqueIndex;not null" json:"-"`
	Category  *string   `gorm:"size:50" json:"category,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Skill) BeforeSave(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Name = strings.TrimSpace(s.Name)
	s.NameKey = NormalizeSkillName(s.Name)
	return nil
}

func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type StudentSkill struct {
	StudentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"student_id"`
	SkillID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"skill_id"`
}

type RoleSkill struct {
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"role_id"`
	SkillID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"skill_id"`
	IsRequired bool      `gorm:"default:false" json:"is_required"`
}
