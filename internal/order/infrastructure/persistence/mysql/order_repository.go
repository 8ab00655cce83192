// Package mysql 提供订单仓储及结算端口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/logging"
	"gorm.io/gorm"
)

// orderRepository 是 domain.OrderRepository 接口的 GORM 实现。
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create 实现 domain.OrderRepository.Create
func (r *orderRepository) Create(ctx context.Context, order *domain.OrderInfo) error {
	if err := r.getDB(ctx).Create(order).Error; err != nil {
		logging.Error(ctx, "order_repository.create failed", "order_id", order.OrderID, "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// CreateGoods 实现 domain.OrderRepository.CreateGoods
func (r *orderRepository) CreateGoods(ctx context.Context, goods *domain.OrderGoods) error {
	if err := r.getDB(ctx).Create(goods).Error; err != nil {
		logging.Error(ctx, "order_repository.create_goods failed", "order_id", goods.OrderID, "sku_id", goods.SKUID, "error", err)
		return fmt.Errorf("failed to create order goods: %w", err)
	}
	return nil
}

// UpdateTotals 实现 domain.OrderRepository.UpdateTotals
func (r *orderRepository) UpdateTotals(ctx context.Context, orderID string, totalCount int, totalPrice decimal.Decimal) error {
	err := r.getDB(ctx).Model(&domain.OrderInfo{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{"total_count": totalCount, "total_price": totalPrice}).Error
	if err != nil {
		logging.Error(ctx, "order_repository.update_totals failed", "order_id", orderID, "error", err)
		return fmt.Errorf("failed to update order totals: %w", err)
	}
	return nil
}

// Get 实现 domain.OrderRepository.Get
func (r *orderRepository) Get(ctx context.Context, orderID string) (*domain.OrderInfo, error) {
	var order domain.OrderInfo
	if err := r.getDB(ctx).Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logging.Error(ctx, "order_repository.get failed", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// ListGoods 实现 domain.OrderRepository.ListGoods
func (r *orderRepository) ListGoods(ctx context.Context, orderID string) ([]*domain.OrderGoods, error) {
	var goods []*domain.OrderGoods
	if err := r.getDB(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&goods).Error; err != nil {
		logging.Error(ctx, "order_repository.list_goods failed", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to list order goods: %w", err)
	}
	return goods, nil
}

// ListByUser 实现 domain.OrderRepository.ListByUser
func (r *orderRepository) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*domain.OrderInfo, int64, error) {
	var orders []*domain.OrderInfo
	var total int64
	db := r.getDB(ctx).Model(&domain.OrderInfo{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		logging.Error(ctx, "order_repository.list_by_user failed", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}
