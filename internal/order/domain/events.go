package domain

import "time"

// 事件主题
const (
	OrderCreatedTopic = "order.created"
)

// OrderCreatedEvent 订单创建事件，随结算事务经 Outbox 发出
type OrderCreatedEvent struct {
	OrderID    string    `json:"order_id"`
	UserID     uint64    `json:"user_id"`
	PayMethod  string    `json:"pay_method"`
	TotalCount int       `json:"total_count"`
	TotalPrice string    `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
