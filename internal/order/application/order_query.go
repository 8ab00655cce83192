package application

import (
	"context"

	"github.com/wyfcoding/freshmall/internal/order/domain"
)

// OrderQueryService 处理订单相关的查询操作
type OrderQueryService struct {
	repo domain.OrderRepository
}

// NewOrderQueryService 创建订单查询服务实例
func NewOrderQueryService(repo domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{repo: repo}
}

// GetOrder 获取订单详情，商品行带派生小计
func (s *OrderQueryService) GetOrder(ctx context.Context, orderID string) (*OrderDetailDTO, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	goods, err := s.repo.ListGoods(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetailDTO{OrderDTO: *toOrderDTO(order)}
	detail.Lines = make([]OrderLineView, 0, len(goods))
	for _, g := range goods {
		detail.Lines = append(detail.Lines, OrderLineView{
			SKUID:  g.SKUID,
			Count:  g.Count,
			Price:  g.Price.String(),
			Amount: g.Amount().String(),
		})
	}
	return detail, nil
}

// ListOrders 分页列出买家订单
func (s *OrderQueryService) ListOrders(ctx context.Context, userID uint64, limit, offset int) ([]*OrderDTO, int64, error) {
	orders, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	return dtos, total, nil
}
