// Package mysql 提供通知服务仓储接口的 MySQL 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/freshmall/internal/notification/domain"
	"github.com/wyfcoding/pkg/logging"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储实例
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	if err := r.db.WithContext(ctx).Save(notification).Error; err != nil {
		logging.Error(ctx, "failed to save notification",
			"notification_id", notification.NotificationID, "error", err)
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return &notification, nil
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*domain.Notification, int64, error) {
	var (
		notifications []*domain.Notification
		total         int64
	)
	query := r.db.WithContext(ctx).Model(&domain.Notification{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}
