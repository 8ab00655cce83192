// Package domain 包含购物车服务的领域模型
// 购物车是按买家维护的临时键值哈希（sku id -> 数量），不落关系库。
package domain

import "context"

// CartRepository 购物车仓储接口
type CartRepository interface {
	// GetQuantity 读取某商品的数量，第二个返回值指示记录是否存在
	GetQuantity(ctx context.Context, userID, skuID uint64) (int, bool, error)
	// SetQuantity 将某商品数量设置为 qty
	SetQuantity(ctx context.Context, userID, skuID uint64, qty int) error
	// IncrQuantity 累加某商品数量，返回累加后的值
	IncrQuantity(ctx context.Context, userID, skuID uint64, delta int) (int, error)
	// Remove 删除指定商品的记录
	Remove(ctx context.Context, userID uint64, skuIDs []uint64) error
	// Snapshot 返回整个购物车的 sku -> 数量 快照
	Snapshot(ctx context.Context, userID uint64) (map[uint64]int, error)
	// Count 返回购物车内的商品种类数
	Count(ctx context.Context, userID uint64) (int64, error)
}
