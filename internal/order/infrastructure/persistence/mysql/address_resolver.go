package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/pkg/logging"
	"gorm.io/gorm"
)

// addressRow 只读映射到用户服务的 addresses 表
type addressRow struct {
	ID       uint64 `gorm:"column:id;primaryKey"`
	UserID   uint64 `gorm:"column:user_id"`
	Receiver string `gorm:"column:receiver"`
	Addr     string `gorm:"column:addr"`
}

func (addressRow) TableName() string { return "addresses" }

// addressResolver 是 domain.AddressResolver 接口的 GORM 实现。
type addressResolver struct {
	db *gorm.DB
}

// NewAddressResolver 创建地址目录实例
func NewAddressResolver(db *gorm.DB) domain.AddressResolver {
	return &addressResolver{db: db}
}

// Resolve 查找属于该买家的地址，不存在或归属不符时返回 (nil, nil)
func (r *addressResolver) Resolve(ctx context.Context, addrID, userID uint64) (*domain.Address, error) {
	var row addressRow
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", addrID, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logging.Error(ctx, "address_resolver.resolve failed", "addr_id", addrID, "error", err)
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}
	return &domain.Address{
		ID:       row.ID,
		UserID:   row.UserID,
		Receiver: row.Receiver,
		Addr:     row.Addr,
	}, nil
}
