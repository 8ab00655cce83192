package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/freshmall/internal/cart/domain"
	goodsdomain "github.com/wyfcoding/freshmall/internal/goods/domain"
)

// AddLineCommand 添加商品到购物车命令
type AddLineCommand struct {
	UserID   uint64
	SKUID    uint64
	Quantity int
}

// UpdateLineCommand 修改购物车商品数量命令
type UpdateLineCommand struct {
	UserID   uint64
	SKUID    uint64
	Quantity int
}

// DeleteLinesCommand 删除购物车商品命令
type DeleteLinesCommand struct {
	UserID uint64
	SKUIDs []uint64
}

// CartCommandService 购物车命令服务
type CartCommandService struct {
	repo domain.CartRepository
	skus goodsdomain.SKURepository
}

// NewCartCommandService 创建购物车命令服务实例
func NewCartCommandService(repo domain.CartRepository, skus goodsdomain.SKURepository) *CartCommandService {
	return &CartCommandService{repo: repo, skus: skus}
}

// AddLine 添加商品，已存在时数量累加
// 仅做下单前的软校验：累加后的数量不得超过当前库存，硬约束由结算时的扣减保证。
func (s *CartCommandService) AddLine(ctx context.Context, cmd AddLineCommand) error {
	if cmd.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	sku, err := s.skus.Get(ctx, cmd.SKUID)
	if err != nil {
		return err
	}
	if sku == nil {
		return fmt.Errorf("sku %d not found", cmd.SKUID)
	}

	current, _, err := s.repo.GetQuantity(ctx, cmd.UserID, cmd.SKUID)
	if err != nil {
		return err
	}
	if current+cmd.Quantity > sku.Stock {
		return fmt.Errorf("quantity %d exceeds stock %d", current+cmd.Quantity, sku.Stock)
	}

	_, err = s.repo.IncrQuantity(ctx, cmd.UserID, cmd.SKUID, cmd.Quantity)
	return err
}

// UpdateLine 将商品数量设置为指定值
func (s *CartCommandService) UpdateLine(ctx context.Context, cmd UpdateLineCommand) error {
	if cmd.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	sku, err := s.skus.Get(ctx, cmd.SKUID)
	if err != nil {
		return err
	}
	if sku == nil {
		return fmt.Errorf("sku %d not found", cmd.SKUID)
	}
	if cmd.Quantity > sku.Stock {
		return fmt.Errorf("quantity %d exceeds stock %d", cmd.Quantity, sku.Stock)
	}

	return s.repo.SetQuantity(ctx, cmd.UserID, cmd.SKUID, cmd.Quantity)
}

// DeleteLines 删除指定商品
func (s *CartCommandService) DeleteLines(ctx context.Context, cmd DeleteLinesCommand) error {
	if len(cmd.SKUIDs) == 0 {
		return fmt.Errorf("sku ids are required")
	}
	return s.repo.Remove(ctx, cmd.UserID, cmd.SKUIDs)
}
