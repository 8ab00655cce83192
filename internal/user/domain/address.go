// Package domain 包含用户服务的领域模型
package domain

import (
	"context"

	"gorm.io/gorm"
)

// Address 收货地址实体
type Address struct {
	gorm.Model
	UserID    uint64 `gorm:"not null;index;comment:用户ID" json:"user_id"`
	Receiver  string `gorm:"type:varchar(64);not null;comment:收件人" json:"receiver"`
	Addr      string `gorm:"type:varchar(256);not null;comment:收件地址" json:"addr"`
	ZipCode   string `gorm:"type:varchar(16);comment:邮政编码" json:"zip_code"`
	Phone     string `gorm:"type:varchar(32);not null;comment:联系电话" json:"phone"`
	IsDefault bool   `gorm:"not null;default:false;comment:是否默认地址" json:"is_default"`
}

// TableName 指定数据库表名
func (Address) TableName() string {
	return "addresses"
}

// AddressRepository 地址仓储接口
type AddressRepository interface {
	// Save 持久化地址
	Save(ctx context.Context, addr *Address) error
	// Get 按主键查找地址，未找到返回 nil
	Get(ctx context.Context, id uint64) (*Address, error)
	// ListByUser 列出用户的全部地址，默认地址排在最前
	ListByUser(ctx context.Context, userID uint64) ([]*Address, error)
	// Default 返回用户的默认地址，没有则返回 nil
	Default(ctx context.Context, userID uint64) (*Address, error)
	// HasAny 用户是否已有地址
	HasAny(ctx context.Context, userID uint64) (bool, error)
}
