// Package application 实现购物车服务的应用层逻辑。
package application

import (
	"context"

	cartdomain "github.com/wyfcoding/freshmall/internal/cart/domain"
	goodsdomain "github.com/wyfcoding/freshmall/internal/goods/domain"
)

// CartService 购物车应用服务门面，聚合命令与查询两侧。
type CartService struct {
	Command *CartCommandService
	Query   *CartQueryService
}

// NewCartService 创建购物车应用服务实例
func NewCartService(repo cartdomain.CartRepository, skus goodsdomain.SKURepository) *CartService {
	return &CartService{
		Command: NewCartCommandService(repo, skus),
		Query:   NewCartQueryService(repo, skus),
	}
}

// AddLine 添加商品到购物车
func (s *CartService) AddLine(ctx context.Context, cmd AddLineCommand) error {
	return s.Command.AddLine(ctx, cmd)
}

// UpdateLine 修改购物车商品数量
func (s *CartService) UpdateLine(ctx context.Context, cmd UpdateLineCommand) error {
	return s.Command.UpdateLine(ctx, cmd)
}

// DeleteLines 删除购物车商品
func (s *CartService) DeleteLines(ctx context.Context, cmd DeleteLinesCommand) error {
	return s.Command.DeleteLines(ctx, cmd)
}

// GetCart 返回购物车页视图
func (s *CartService) GetCart(ctx context.Context, userID uint64) (*CartView, error) {
	return s.Query.GetCart(ctx, userID)
}

// Count 返回购物车内的商品种类数
func (s *CartService) Count(ctx context.Context, userID uint64) (int64, error) {
	return s.Query.Count(ctx, userID)
}
