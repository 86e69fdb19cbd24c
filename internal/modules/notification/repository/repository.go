package repository

import (
	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) error
	GetByAccountID(accountID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(accountID, id uuid.UUID) (int64, error)
	MarkAllAsRead(accountID uuid.UUID) error
	CountUnread(accountID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *entity.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) GetByAccountID(accountID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Preload("Actor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "avatar_url")
		}).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(accountID, id uuid.UUID) (int64, error) {
	result := r.db.Model(&entity.Notification{}).
		Where("id = ? AND account_id = ?", id, accountID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllAsRead(accountID uuid.UUID) error {
	return r.db.Model(&entity.Notification{}).Where("account_id = ? AND is_read = ?", accountID, false).Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Notification{}).Where("account_id = ? AND is_read = ?", accountID, false).Count(&count).Error
	return count, err
}
