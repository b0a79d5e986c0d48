package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gear-system/internal/entities"
	"gear-system/internal/repositories"
	"gear-system/pkg/utils"
)

const unreadCountTTL = 5 * time.Minute

type NotificationServiceInterface interface {
	GetNotifications(ctx context.Context, params utils.QueryParams) ([]entities.Notification, uint64, error)
	UnreadCount(ctx context.Context) (uint64, error)
	MarkRead(ctx context.Context, id uint64, isRead bool) error
	MarkAllRead(ctx context.Context) error
	Notify(ctx context.Context, n entities.Notification) (uint64, error)
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	cache            repositories.CacheRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo, cache: cache, logger: logger}
}

func (s *NotificationService) GetNotifications(ctx context.Context, params utils.QueryParams) ([]entities.Notification, uint64, error) {
	recipientID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.notificationRepo.GetByRecipient(ctx, recipientID, params)
}

// UnreadCount serves the badge counter, which every page poll hits, from
// Redis. The cache is dropped on any write to the user's notifications.
func (s *NotificationService) UnreadCount(ctx context.Context) (uint64, error) {
	recipientID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	key := unreadCountKey(recipientID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		if count, err := strconv.ParseUint(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Set(ctx, key, count, unreadCountTTL); err != nil {
		s.logger.Warn("failed to cache unread count", zap.Uint64("recipientID", recipientID), zap.Error(err))
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint64, isRead bool) error {
	recipientID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.MarkRead(ctx, id, recipientID, isRead); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	recipientID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, recipientID)
	return nil
}

// Notify persists a notification on behalf of listeners and background jobs.
func (s *NotificationService) Notify(ctx context.Context, n entities.Notification) (uint64, error) {
	id, err := s.notificationRepo.Create(ctx, n)
	if err != nil {
		return 0, err
	}
	s.invalidateUnreadCount(ctx, n.RecipientID)
	return id, nil
}

func (s *NotificationService) invalidateUnreadCount(ctx context.Context, recipientID uint64) {
	if err := s.cache.Del(ctx, unreadCountKey(recipientID)); err != nil {
		s.logger.Warn("failed to invalidate unread count cache",
			zap.Uint64("recipientID", recipientID), zap.Error(err))
	}
}

func unreadCountKey(recipientID uint64) string {
	return fmt.Sprintf("notifications:unread:%d", recipientID)
}
