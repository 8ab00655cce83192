// Package mysql 提供商品仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/freshmall/internal/goods/domain"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/logging"
	"gorm.io/gorm"
)

// skuRepository 是 domain.SKURepository 接口的 GORM 实现。
type skuRepository struct {
	db *gorm.DB
}

// NewSKURepository 创建商品仓储实例
func NewSKURepository(db *gorm.DB) domain.SKURepository {
	return &skuRepository{db: db}
}

func (r *skuRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save 实现 domain.SKURepository.Save
func (r *skuRepository) Save(ctx context.Context, sku *domain.GoodsSKU) error {
	if err := r.getDB(ctx).Save(sku).Error; err != nil {
		logging.Error(ctx, "sku_repository.save failed", "sku_id", sku.ID, "error", err)
		return fmt.Errorf("failed to save sku: %w", err)
	}
	return nil
}

// Get 实现 domain.SKURepository.Get
func (r *skuRepository) Get(ctx context.Context, skuID uint64) (*domain.GoodsSKU, error) {
	var sku domain.GoodsSKU
	if err := r.getDB(ctx).Where("id = ?", skuID).First(&sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logging.Error(ctx, "sku_repository.get failed", "sku_id", skuID, "error", err)
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}
	return &sku, nil
}

// List 实现 domain.SKURepository.List
func (r *skuRepository) List(ctx context.Context, categoryID uint64, limit, offset int) ([]*domain.GoodsSKU, int64, error) {
	var skus []*domain.GoodsSKU
	var total int64
	db := r.getDB(ctx).Model(&domain.GoodsSKU{}).Where("status = ?", domain.SKUStatusOnline)
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&skus).Error; err != nil {
		logging.Error(ctx, "sku_repository.list failed", "category_id", categoryID, "error", err)
		return nil, 0, fmt.Errorf("failed to list skus: %w", err)
	}
	return skus, total, nil
}

// AddStock 实现 domain.SKURepository.AddStock
func (r *skuRepository) AddStock(ctx context.Context, skuID uint64, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("restock quantity must be positive, got %d", qty)
	}
	err := r.getDB(ctx).Model(&domain.GoodsSKU{}).Where("id = ?", skuID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
	if err != nil {
		logging.Error(ctx, "sku_repository.add_stock failed", "sku_id", skuID, "error", err)
		return fmt.Errorf("failed to add stock: %w", err)
	}
	return nil
}

// ListCategories 实现 domain.SKURepository.ListCategories
func (r *skuRepository) ListCategories(ctx context.Context) ([]*domain.GoodsCategory, error) {
	var categories []*domain.GoodsCategory
	if err := r.getDB(ctx).Order("id asc").Find(&categories).Error; err != nil {
		logging.Error(ctx, "sku_repository.list_categories failed", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
