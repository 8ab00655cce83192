// Package domain 包含商品服务的领域模型
package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SKUStatus 商品上下架状态
type SKUStatus int

const (
	SKUStatusOffline SKUStatus = 0
	SKUStatusOnline  SKUStatus = 1
)

// GoodsCategory 商品分类
type GoodsCategory struct {
	gorm.Model
	Name  string `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Logo  string `gorm:"column:logo;type:varchar(255)" json:"logo"`
	Image string `gorm:"column:image;type:varchar(255)" json:"image"`
}

func (GoodsCategory) TableName() string { return "goods_categories" }

// GoodsSKU 商品实体
// Stock 与 Sales 只由结算（扣减/累加）和补货（只增不减）两条路径变更，
// Stock 任何时刻不得为负，Sales 单调不减。
type GoodsSKU struct {
	gorm.Model
	CategoryID uint64          `gorm:"column:category_id;index;not null" json:"category_id"`
	Name       string          `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Desc       string          `gorm:"column:desc;type:varchar(512)" json:"desc"`
	Unit       string          `gorm:"column:unit;type:varchar(16)" json:"unit"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Image      string          `gorm:"column:image;type:varchar(255)" json:"image"`
	Stock      int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Sales      int             `gorm:"column:sales;not null;default:0" json:"sales"`
	Status     SKUStatus       `gorm:"column:status;not null;default:1" json:"status"`
}

func (GoodsSKU) TableName() string { return "goods_skus" }

// SKURepository 商品仓储接口
type SKURepository interface {
	Save(ctx context.Context, sku *GoodsSKU) error
	// Get 读取商品；不存在时返回 (nil, nil)
	Get(ctx context.Context, skuID uint64) (*GoodsSKU, error)
	List(ctx context.Context, categoryID uint64, limit, offset int) ([]*GoodsSKU, int64, error)
	// AddStock 补货，只增不减
	AddStock(ctx context.Context, skuID uint64, qty int) error
	ListCategories(ctx context.Context) ([]*GoodsCategory, error)
}
