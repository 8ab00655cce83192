// Package mysql 提供用户服务仓储接口的 MySQL 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/freshmall/internal/user/domain"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/logging"
	"gorm.io/gorm"
)

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储实例
func NewAddressRepository(db *gorm.DB) domain.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := contextx.GetTx(ctx); tx != nil {
		if gormTx, ok := tx.(*gorm.DB); ok {
			return gormTx
		}
	}
	return r.db.WithContext(ctx)
}

func (r *addressRepository) Save(ctx context.Context, addr *domain.Address) error {
	if err := r.getDB(ctx).Save(addr).Error; err != nil {
		logging.Error(ctx, "failed to save address", "user_id", addr.UserID, "error", err)
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}

func (r *addressRepository) Get(ctx context.Context, id uint64) (*domain.Address, error) {
	var addr domain.Address
	err := r.getDB(ctx).Where("id = ?", id).First(&addr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &addr, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uint64) ([]*domain.Address, error) {
	var addrs []*domain.Address
	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&addrs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addrs, nil
}

func (r *addressRepository) Default(ctx context.Context, userID uint64) (*domain.Address, error) {
	var addr domain.Address
	err := r.getDB(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&addr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get default address: %w", err)
	}
	return &addr, nil
}

func (r *addressRepository) HasAny(ctx context.Context, userID uint64) (bool, error) {
	var count int64
	err := r.getDB(ctx).
		Model(&domain.Address{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count addresses: %w", err)
	}
	return count > 0, nil
}
