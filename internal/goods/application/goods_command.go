package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/goods/domain"
)

// CreateSKUCommand 创建商品命令
type CreateSKUCommand struct {
	CategoryID uint64
	Name       string
	Desc       string
	Unit       string
	Price      string
	Image      string
	Stock      int
}

// GoodsCommandService 处理商品相关的命令操作
type GoodsCommandService struct {
	repo  domain.SKURepository
	cache SKUCache
}

// NewGoodsCommandService 创建商品命令服务实例；cache 可为 nil
func NewGoodsCommandService(repo domain.SKURepository, cache SKUCache) *GoodsCommandService {
	return &GoodsCommandService{repo: repo, cache: cache}
}

// CreateSKU 创建商品
func (s *GoodsCommandService) CreateSKU(ctx context.Context, cmd CreateSKUCommand) (uint64, error) {
	if cmd.Name == "" {
		return 0, fmt.Errorf("sku name is required")
	}
	price, err := decimal.NewFromString(cmd.Price)
	if err != nil || price.IsNegative() {
		return 0, fmt.Errorf("invalid sku price %q", cmd.Price)
	}
	if cmd.Stock < 0 {
		return 0, fmt.Errorf("initial stock must not be negative")
	}

	sku := &domain.GoodsSKU{
		CategoryID: cmd.CategoryID,
		Name:       cmd.Name,
		Desc:       cmd.Desc,
		Unit:       cmd.Unit,
		Price:      price,
		Image:      cmd.Image,
		Stock:      cmd.Stock,
		Status:     domain.SKUStatusOnline,
	}
	if err := s.repo.Save(ctx, sku); err != nil {
		return 0, err
	}
	return uint64(sku.ID), nil
}

// Restock 补货，只增不减
func (s *GoodsCommandService) Restock(ctx context.Context, skuID uint64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("restock quantity must be positive")
	}
	sku, err := s.repo.Get(ctx, skuID)
	if err != nil {
		return err
	}
	if sku == nil {
		return fmt.Errorf("sku %d not found", skuID)
	}
	if err := s.repo.AddStock(ctx, skuID, qty); err != nil {
		return err
	}
	if s.cache != nil {
		// 缓存里的库存已经过期
		_ = s.cache.Invalidate(ctx, skuID)
	}
	return nil
}
