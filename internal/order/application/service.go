package application

import (
	"context"
)

// OrderService 订单服务门面，整合命令和查询服务
type OrderService struct {
	Command *CheckoutCommandService
	Query   *OrderQueryService
}

// NewOrderService 构造函数
func NewOrderService(command *CheckoutCommandService, query *OrderQueryService) *OrderService {
	return &OrderService{Command: command, Query: query}
}

// CommitOrder 提交订单
func (s *OrderService) CommitOrder(ctx context.Context, cmd CommitOrderCommand) (*OrderDTO, error) {
	return s.Command.CommitOrder(ctx, cmd)
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*OrderDetailDTO, error) {
	return s.Query.GetOrder(ctx, orderID)
}

// ListOrders 列出买家订单
func (s *OrderService) ListOrders(ctx context.Context, userID uint64, limit, offset int) ([]*OrderDTO, int64, error) {
	return s.Query.ListOrders(ctx, userID, limit, offset)
}
