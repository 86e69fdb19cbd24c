package bootstrap

import (
	"log"
	"os"

	"github.com/kickstarthq/talent-backend/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Account{},
		&entity.Student{},
		&entity.Startup{},
		&entity.Experience{},
		&entity.Skill{},
		&entity.StudentSkill{},
		&entity.RolePosting{},
		&entity.RoleSkill{},
		&entity.Application{},
		&entity.SavedRole{},
		&entity.SavedStudent{},
		&entity.Notification{},
	)
}

// SeedSkills inserts the curated skill vocabulary. Existing names are
// left alone so custom skills added at runtime survive restarts.
func SeedSkills(db *gorm.DB) error {
	defaults := map[string][]string{
		"engineering": {"Go", "Python", "TypeScript", "React", "Node.js", "PostgreSQL", "Docker", "Kubernetes", "Machine Learning"},
		"design":      {"Figma", "UI Design", "UX Research", "Prototyping"},
		"business":    {"Sales", "Marketing", "Product Management", "Fundraising", "Operations"},
	}

	for category, names := range defaults {
		category := category
		for _, name := range names {
			skill := entity.Skill{Name: name, Category: &category}

			var count int64
			if err := db.Model(&entity.Skill{}).
				Where("name_key = ?", entity.NormalizeSkillName(name)).
				Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				if err := db.Create(&skill).Error; err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func SeedAdminAccount(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@kickstart.dev"
	}

	var count int64
	if err := db.Model(&entity.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin account already exists, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Account{
		Role:                entity.RoleAdmin,
		Email:               email,
		PasswordHash:        string(hashedPasswordBytes),
		FullName:            "Administrator",
		OnboardingCompleted: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin account seeded successfully")
	log.Printf("   Email: %s", email)

	return nil
}
