package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// scriptedInventory 单商品的脚本化库存，denyCAS 控制条件更新先失败几次，
// interfere 模拟每次竞争失败时被其他买家抢走的件数。
type scriptedInventory struct {
	sku       *SKU
	denyCAS   int
	interfere int
	getCalls  int
	casCalls  int
}

func (f *scriptedInventory) Get(_ context.Context, _ uint64) (*SKU, error) {
	f.getCalls++
	if f.sku == nil {
		return nil, nil
	}
	cp := *f.sku
	return &cp, nil
}

func (f *scriptedInventory) GetForUpdate(ctx context.Context, skuID uint64) (*SKU, error) {
	return f.Get(ctx, skuID)
}

func (f *scriptedInventory) UpdateStock(_ context.Context, _ uint64, stock, sales int) error {
	f.sku.Stock = stock
	f.sku.Sales = sales
	return nil
}

func (f *scriptedInventory) CompareAndSwapStock(_ context.Context, _ uint64, oldStock, newStock, newSales int) (bool, error) {
	f.casCalls++
	if f.denyCAS > 0 {
		f.denyCAS--
		f.sku.Stock -= f.interfere
		f.sku.Sales += f.interfere
		return false, nil
	}
	if f.sku == nil || f.sku.Stock != oldStock {
		return false, nil
	}
	f.sku.Stock = newStock
	f.sku.Sales = newSales
	return true, nil
}

func newScriptedInventory(stock int) *scriptedInventory {
	return &scriptedInventory{
		sku: &SKU{ID: 1, Name: "草莓 500g", Price: decimal.NewFromFloat(29.9), Stock: stock},
	}
}

func TestExclusiveLockDecrement(t *testing.T) {
	inv := newScriptedInventory(10)
	price, err := ExclusiveLockStrategy{}.Decrement(context.Background(), inv, 1, 3)
	if err != nil {
		t.Fatalf("Decrement() error = %v", err)
	}
	if !price.Equal(decimal.NewFromFloat(29.9)) {
		t.Errorf("price = %s, want 29.9", price)
	}
	if inv.sku.Stock != 7 || inv.sku.Sales != 3 {
		t.Errorf("stock/sales = %d/%d, want 7/3", inv.sku.Stock, inv.sku.Sales)
	}
}

func TestExclusiveLockInsufficientStock(t *testing.T) {
	inv := newScriptedInventory(2)
	_, err := ExclusiveLockStrategy{}.Decrement(context.Background(), inv, 1, 3)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Decrement() error = %v, want ErrInsufficientStock", err)
	}
	if inv.sku.Stock != 2 || inv.sku.Sales != 0 {
		t.Errorf("stock/sales = %d/%d, want unchanged 2/0", inv.sku.Stock, inv.sku.Sales)
	}
}

func TestExclusiveLockItemNotFound(t *testing.T) {
	inv := &scriptedInventory{}
	_, err := ExclusiveLockStrategy{}.Decrement(context.Background(), inv, 404, 1)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Decrement() error = %v, want ErrItemNotFound", err)
	}
}

func TestOptimisticRetrySucceedsAfterContention(t *testing.T) {
	inv := newScriptedInventory(10)
	inv.denyCAS = 2
	inv.interfere = 1

	price, err := OptimisticRetryStrategy{MaxAttempts: 3}.Decrement(context.Background(), inv, 1, 2)
	if err != nil {
		t.Fatalf("Decrement() error = %v", err)
	}
	if !price.Equal(decimal.NewFromFloat(29.9)) {
		t.Errorf("price = %s, want 29.9", price)
	}
	// 两次竞争各被抢走 1 件，最终成功扣掉自己的 2 件
	if inv.sku.Stock != 6 {
		t.Errorf("stock = %d, want 6", inv.sku.Stock)
	}
	if inv.casCalls != 3 {
		t.Errorf("cas calls = %d, want 3", inv.casCalls)
	}
}

func TestOptimisticRetryExhausted(t *testing.T) {
	inv := newScriptedInventory(100)
	inv.denyCAS = 100

	_, err := OptimisticRetryStrategy{MaxAttempts: 3}.Decrement(context.Background(), inv, 1, 1)
	if !errors.Is(err, ErrConcurrencyExhausted) {
		t.Fatalf("Decrement() error = %v, want ErrConcurrencyExhausted", err)
	}
	if inv.casCalls != 3 {
		t.Errorf("cas calls = %d, want exactly 3", inv.casCalls)
	}
}

func TestOptimisticRetryInsufficientStockNoRetry(t *testing.T) {
	inv := newScriptedInventory(1)

	_, err := OptimisticRetryStrategy{MaxAttempts: 3}.Decrement(context.Background(), inv, 1, 5)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Decrement() error = %v, want ErrInsufficientStock", err)
	}
	// 缺货是终态，不应消耗任何条件更新尝试
	if inv.casCalls != 0 {
		t.Errorf("cas calls = %d, want 0", inv.casCalls)
	}
}

func TestOptimisticRetryItemNotFound(t *testing.T) {
	inv := &scriptedInventory{}
	_, err := OptimisticRetryStrategy{}.Decrement(context.Background(), inv, 404, 1)
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Decrement() error = %v, want ErrItemNotFound", err)
	}
}

func TestOptimisticRetryDefaultAttempts(t *testing.T) {
	inv := newScriptedInventory(100)
	inv.denyCAS = 100

	_, err := OptimisticRetryStrategy{}.Decrement(context.Background(), inv, 1, 1)
	if !errors.Is(err, ErrConcurrencyExhausted) {
		t.Fatalf("Decrement() error = %v, want ErrConcurrencyExhausted", err)
	}
	if inv.casCalls != DefaultMaxAttempts {
		t.Errorf("cas calls = %d, want %d", inv.casCalls, DefaultMaxAttempts)
	}
}
