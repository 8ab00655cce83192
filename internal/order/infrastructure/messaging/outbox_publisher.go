// Package messaging 提供基于 Outbox 模式的订单事件发布实现。
package messaging

import (
	"context"

	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"gorm.io/gorm"
)

// outboxPublisher 将事件随业务事务写入 outbox 表，由中继异步投递到消息队列。
type outboxPublisher struct {
	manager *outbox.Manager
}

// NewOutboxPublisher 创建一个新的 OutboxPublisher 实例
func NewOutboxPublisher(manager *outbox.Manager) domain.EventPublisher {
	return &outboxPublisher{manager: manager}
}

// PublishOrderCreated 在结算事务内发布订单创建事件
// 事务回滚时 outbox 记录一并回滚，不会发出幽灵事件。
func (p *outboxPublisher) PublishOrderCreated(ctx context.Context, event domain.OrderCreatedEvent) error {
	tx, ok := contextx.GetTx(ctx).(*gorm.DB)
	if !ok {
		tx = p.manager.DB()
	}
	return p.manager.PublishInTx(ctx, tx, domain.OrderCreatedTopic, event.OrderID, event)
}
