package domain

import "time"

// 订阅的事件主题
const (
	// OrderCreatedTopic 订单创建事件，由订单服务通过 outbox 发出
	OrderCreatedTopic = "order.created"
	// UserRegisteredTopic 用户注册事件，由认证网关发出
	UserRegisteredTopic = "user.registered"
)

// OrderCreatedPayload 订单创建事件载荷
type OrderCreatedPayload struct {
	OrderID    string    `json:"order_id"`
	UserID     uint64    `json:"user_id"`
	PayMethod  string    `json:"pay_method"`
	TotalCount int       `json:"total_count"`
	TotalPrice string    `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserRegisteredPayload 用户注册事件载荷
type UserRegisteredPayload struct {
	UserID        uint64 `json:"user_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	ActivateToken string `json:"activate_token"`
}
