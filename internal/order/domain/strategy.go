package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockDecrementStrategy 库存扣减的并发控制策略
// 两种实现对外可观察的不变式一致：库存永不为负，销量增量与实际提交的订单一致。
type StockDecrementStrategy interface {
	// Decrement 在当前事务内将 skuID 的库存扣减 qty 并同步累加销量，
	// 返回扣减时刻的单价快照。
	Decrement(ctx context.Context, inv InventoryStore, skuID uint64, qty int) (decimal.Decimal, error)
}

// ExclusiveLockStrategy 悲观策略：排他行锁内读取并校验库存后直接写回。
// 锁持有至外层事务结束，同一商品上的并发结算被严格串行化。
type ExclusiveLockStrategy struct{}

func (ExclusiveLockStrategy) Decrement(ctx context.Context, inv InventoryStore, skuID uint64, qty int) (decimal.Decimal, error) {
	// 加锁与读取由同一条查询完成，被校验的库存值一定是锁内读到的
	sku, err := inv.GetForUpdate(ctx, skuID)
	if err != nil {
		return decimal.Zero, err
	}
	if sku == nil {
		return decimal.Zero, ErrItemNotFound
	}
	if qty > sku.Stock {
		return decimal.Zero, ErrInsufficientStock
	}
	if err := inv.UpdateStock(ctx, skuID, sku.Stock-qty, sku.Sales+qty); err != nil {
		return decimal.Zero, err
	}
	return sku.Price, nil
}

// OptimisticRetryStrategy 乐观策略：无锁读取后条件更新，输掉竞争则重读重试。
// 库存不足立即失败不重试；重试次数仅被竞争耗尽时返回 ErrConcurrencyExhausted。
type OptimisticRetryStrategy struct {
	MaxAttempts int
}

// DefaultMaxAttempts 条件更新的默认尝试上限
const DefaultMaxAttempts = 3

func (s OptimisticRetryStrategy) Decrement(ctx context.Context, inv InventoryStore, skuID uint64, qty int) (decimal.Decimal, error) {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		sku, err := inv.Get(ctx, skuID)
		if err != nil {
			return decimal.Zero, err
		}
		if sku == nil {
			return decimal.Zero, ErrItemNotFound
		}
		if qty > sku.Stock {
			// 真实缺货而非竞争，直接失败
			return decimal.Zero, ErrInsufficientStock
		}
		ok, err := inv.CompareAndSwapStock(ctx, skuID, sku.Stock, sku.Stock-qty, sku.Sales+qty)
		if err != nil {
			return decimal.Zero, err
		}
		if ok {
			return sku.Price, nil
		}
	}
	return decimal.Zero, ErrConcurrencyExhausted
}
