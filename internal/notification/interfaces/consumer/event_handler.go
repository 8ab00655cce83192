// Package consumer 提供通知服务的 Kafka 消费接口层。
package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/freshmall/internal/notification/application"
	"github.com/wyfcoding/freshmall/internal/notification/domain"
)

// EventHandler 将订阅到的领域事件分发给通知应用服务。
type EventHandler struct {
	app    *application.NotificationService
	logger *slog.Logger
}

// NewEventHandler 创建事件处理器实例
func NewEventHandler(app *application.NotificationService, logger *slog.Logger) *EventHandler {
	return &EventHandler{app: app, logger: logger}
}

// Handle 按主题分发消息
func (h *EventHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case domain.OrderCreatedTopic:
		var payload domain.OrderCreatedPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order created event", "error", err)
			return err
		}
		return h.app.NotifyOrderCreated(ctx, payload)
	case domain.UserRegisteredTopic:
		var payload domain.UserRegisteredPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal user registered event", "error", err)
			return err
		}
		return h.app.NotifyUserRegistered(ctx, payload)
	default:
		h.logger.WarnContext(ctx, "unknown event topic", "topic", msg.Topic)
		return nil
	}
}
