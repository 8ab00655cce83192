package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/freshmall/internal/goods/domain"
)

// SKUCache 商品详情读缓存端口，由 Redis 实现
type SKUCache interface {
	Get(ctx context.Context, skuID uint64) (*domain.GoodsSKU, error)
	Save(ctx context.Context, sku *domain.GoodsSKU) error
	Invalidate(ctx context.Context, skuID uint64) error
}

// GoodsQueryService 处理商品相关的查询操作
type GoodsQueryService struct {
	repo  domain.SKURepository
	cache SKUCache
}

// NewGoodsQueryService 创建商品查询服务实例；cache 可为 nil
func NewGoodsQueryService(repo domain.SKURepository, cache SKUCache) *GoodsQueryService {
	return &GoodsQueryService{repo: repo, cache: cache}
}

// GetSKU 获取商品详情，缓存优先，未命中回源并回填
func (s *GoodsQueryService) GetSKU(ctx context.Context, skuID uint64) (*SKUDTO, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, skuID)
		if err != nil {
			// 缓存故障只降级回源
			slog.WarnContext(ctx, "sku cache read failed", "sku_id", skuID, "error", err)
		} else if cached != nil {
			return toSKUDTO(cached), nil
		}
	}

	sku, err := s.repo.Get(ctx, skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, sku); err != nil {
			slog.WarnContext(ctx, "sku cache backfill failed", "sku_id", skuID, "error", err)
		}
	}
	return toSKUDTO(sku), nil
}

// ListSKUs 分页列出上架商品
func (s *GoodsQueryService) ListSKUs(ctx context.Context, categoryID uint64, limit, offset int) ([]*SKUDTO, int64, error) {
	skus, total, err := s.repo.List(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*SKUDTO, len(skus))
	for i, sku := range skus {
		dtos[i] = toSKUDTO(sku)
	}
	return dtos, total, nil
}

// ListCategories 列出全部分类
func (s *GoodsQueryService) ListCategories(ctx context.Context) ([]*CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = &CategoryDTO{ID: uint64(c.ID), Name: c.Name, Logo: c.Logo, Image: c.Image}
	}
	return dtos, nil
}
