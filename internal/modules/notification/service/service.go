package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	notifRepo "github.com/kickstarthq/talent-backend/internal/modules/notification/repository"
	"github.com/kickstarthq/talent-backend/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
	GetNotifications(accountID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(accountID, id uuid.UUID) error
	MarkAllAsRead(accountID uuid.UUID) error
	UnreadCount(accountID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// ChannelFor is the redis pub/sub channel carrying an account's
// notifications to its websocket sessions.
func ChannelFor(accountID string) string {
	return fmt.Sprintf("account_notifications:%s", accountID)
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(notification); err != nil {
		return err
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, ChannelFor(notification.AccountID.String()), payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(accountID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByAccountID(accountID, limit, offset)
}

// MarkAsRead only touches the caller's own notification. Someone else's
// id reads as not found.
func (s *notificationService) MarkAsRead(accountID, id uuid.UUID) error {
	rows, err := s.repo.MarkAsRead(accountID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(accountID uuid.UUID) error {
	return s.repo.MarkAllAsRead(accountID)
}

func (s *notificationService) UnreadCount(accountID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(accountID)
}
