package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/ameliazsabrina/journalshe-sub000/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotifications(userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	MarkAsRead(id uuid.UUID) error
	MarkAllAsRead(userID uuid.UUID) error
	UnreadCount(userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        repository.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// NotificationChannel is the Redis pub/sub channel for a user's live feed.
func NotificationChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", userID.String())
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *model.Notification) error {
	if err := s.repo.Create(notification); err != nil {
		return err
	}

	// Fan out to the websocket bridge when Redis is available.
	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, NotificationChannel(notification.UserID), payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.GetByUserID(userID, limit, offset)
}

func (s *notificationService) MarkAsRead(id uuid.UUID) error {
	return s.repo.MarkAsRead(id)
}

func (s *notificationService) MarkAllAsRead(userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(userID)
}

func (s *notificationService) UnreadCount(userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(userID)
}
