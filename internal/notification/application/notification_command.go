// Package application 实现通知服务的应用层逻辑。
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/freshmall/internal/notification/domain"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"
)

// NotificationService 通知应用服务，负责渲染并投递邮件。
type NotificationService struct {
	repo      domain.NotificationRepository
	sender    domain.Sender
	directory domain.RecipientDirectory
}

// NewNotificationService 创建通知应用服务实例
func NewNotificationService(repo domain.NotificationRepository, sender domain.Sender, directory domain.RecipientDirectory) *NotificationService {
	return &NotificationService{repo: repo, sender: sender, directory: directory}
}

// NotifyOrderCreated 渲染并发送下单确认邮件
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, payload domain.OrderCreatedPayload) error {
	target, err := s.directory.Lookup(ctx, payload.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}

	subject := fmt.Sprintf("订单 %s 已提交", payload.OrderID)
	content := fmt.Sprintf(
		"您的订单 %s 已提交成功。\n共 %d 件商品，应付金额 %s 元，支付方式：%s。\n下单时间：%s",
		payload.OrderID, payload.TotalCount, payload.TotalPrice, payload.PayMethod,
		payload.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	return s.deliver(ctx, payload.UserID, target, subject, content)
}

// NotifyUserRegistered 渲染并发送账户激活邮件
func (s *NotificationService) NotifyUserRegistered(ctx context.Context, payload domain.UserRegisteredPayload) error {
	target := payload.Email
	if target == "" {
		resolved, err := s.directory.Lookup(ctx, payload.UserID)
		if err != nil {
			return fmt.Errorf("failed to resolve recipient: %w", err)
		}
		target = resolved
	}

	subject := "欢迎注册天天生鲜"
	content := fmt.Sprintf(
		"%s，欢迎您成为天天生鲜注册会员。\n请点击以下链接激活您的账户：\nhttp://freshmall.local/user/active/%s",
		payload.Username, payload.ActivateToken,
	)
	return s.deliver(ctx, payload.UserID, target, subject, content)
}

// deliver 持久化通知记录并投递，失败留痕。
func (s *NotificationService) deliver(ctx context.Context, userID uint64, target, subject, content string) error {
	notification := &domain.Notification{
		NotificationID: fmt.Sprintf("%d", idgen.GenID()),
		UserID:         userID,
		Type:           domain.NotificationTypeEmail,
		Subject:        subject,
		Content:        content,
		Target:         target,
		Status:         domain.NotificationStatusPending,
	}
	if err := s.repo.Save(ctx, notification); err != nil {
		return err
	}

	if err := s.sender.Send(ctx, target, subject, content); err != nil {
		notification.Status = domain.NotificationStatusFailed
		notification.ErrorMessage = err.Error()
		if saveErr := s.repo.Save(ctx, notification); saveErr != nil {
			logging.Error(ctx, "failed to record notification failure",
				"notification_id", notification.NotificationID, "error", saveErr)
		}
		return fmt.Errorf("failed to send notification: %w", err)
	}

	now := time.Now()
	notification.Status = domain.NotificationStatusSent
	notification.SentAt = &now
	return s.repo.Save(ctx, notification)
}

// ListNotifications 分页获取用户的通知记录
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint64, limit, offset int) ([]*domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUserID(ctx, userID, limit, offset)
}
