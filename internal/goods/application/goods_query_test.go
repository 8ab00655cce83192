package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/goods/domain"
)

type fakeSKURepo struct {
	skus     map[uint64]*domain.GoodsSKU
	getCalls int
}

func (f *fakeSKURepo) Save(_ context.Context, sku *domain.GoodsSKU) error {
	if sku.ID == 0 {
		sku.ID = uint(len(f.skus) + 1)
	}
	f.skus[uint64(sku.ID)] = sku
	return nil
}

func (f *fakeSKURepo) Get(_ context.Context, skuID uint64) (*domain.GoodsSKU, error) {
	f.getCalls++
	return f.skus[skuID], nil
}

func (f *fakeSKURepo) List(_ context.Context, _ uint64, _, _ int) ([]*domain.GoodsSKU, int64, error) {
	var skus []*domain.GoodsSKU
	for _, sku := range f.skus {
		skus = append(skus, sku)
	}
	return skus, int64(len(skus)), nil
}

func (f *fakeSKURepo) AddStock(_ context.Context, skuID uint64, qty int) error {
	sku, ok := f.skus[skuID]
	if !ok {
		return errors.New("sku not found")
	}
	sku.Stock += qty
	return nil
}

func (f *fakeSKURepo) ListCategories(_ context.Context) ([]*domain.GoodsCategory, error) {
	return nil, nil
}

type fakeSKUCache struct {
	entries     map[uint64]*domain.GoodsSKU
	failReads   bool
	saveCalls   int
	invalidated []uint64
}

func (f *fakeSKUCache) Get(_ context.Context, skuID uint64) (*domain.GoodsSKU, error) {
	if f.failReads {
		return nil, errors.New("redis down")
	}
	return f.entries[skuID], nil
}

func (f *fakeSKUCache) Save(_ context.Context, sku *domain.GoodsSKU) error {
	f.saveCalls++
	f.entries[uint64(sku.ID)] = sku
	return nil
}

func (f *fakeSKUCache) Invalidate(_ context.Context, skuID uint64) error {
	f.invalidated = append(f.invalidated, skuID)
	delete(f.entries, skuID)
	return nil
}

func newGoodsSKU(id uint64, name string, stock int) *domain.GoodsSKU {
	sku := &domain.GoodsSKU{
		Name:   name,
		Price:  decimal.NewFromFloat(12.5),
		Stock:  stock,
		Status: domain.SKUStatusOnline,
	}
	sku.ID = uint(id)
	return sku
}

func TestGetSKUCacheMissBackfills(t *testing.T) {
	repo := &fakeSKURepo{skus: map[uint64]*domain.GoodsSKU{1: newGoodsSKU(1, "鲜奶 1L", 20)}}
	cache := &fakeSKUCache{entries: make(map[uint64]*domain.GoodsSKU)}
	svc := NewGoodsQueryService(repo, cache)

	dto, err := svc.GetSKU(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSKU() error = %v", err)
	}
	if dto == nil || dto.Name != "鲜奶 1L" {
		t.Fatalf("dto = %+v, want 鲜奶 1L", dto)
	}
	if cache.saveCalls != 1 {
		t.Errorf("cache backfills = %d, want 1", cache.saveCalls)
	}

	// 第二次读命中缓存，不再回源
	if _, err := svc.GetSKU(context.Background(), 1); err != nil {
		t.Fatalf("GetSKU() error = %v", err)
	}
	if repo.getCalls != 1 {
		t.Errorf("repo reads = %d, want 1", repo.getCalls)
	}
}

func TestGetSKUCacheFailureDegrades(t *testing.T) {
	repo := &fakeSKURepo{skus: map[uint64]*domain.GoodsSKU{1: newGoodsSKU(1, "鲜奶 1L", 20)}}
	cache := &fakeSKUCache{entries: make(map[uint64]*domain.GoodsSKU), failReads: true}
	svc := NewGoodsQueryService(repo, cache)

	dto, err := svc.GetSKU(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSKU() error = %v, cache failure must not surface", err)
	}
	if dto == nil || dto.Name != "鲜奶 1L" {
		t.Fatalf("dto = %+v, want repo copy", dto)
	}
}

func TestGetSKUNotFound(t *testing.T) {
	repo := &fakeSKURepo{skus: make(map[uint64]*domain.GoodsSKU)}
	svc := NewGoodsQueryService(repo, nil)

	dto, err := svc.GetSKU(context.Background(), 404)
	if err != nil {
		t.Fatalf("GetSKU() error = %v", err)
	}
	if dto != nil {
		t.Errorf("dto = %+v, want nil", dto)
	}
}

func TestRestockInvalidatesCache(t *testing.T) {
	repo := &fakeSKURepo{skus: map[uint64]*domain.GoodsSKU{1: newGoodsSKU(1, "鲜奶 1L", 20)}}
	cache := &fakeSKUCache{entries: make(map[uint64]*domain.GoodsSKU)}
	svc := NewGoodsCommandService(repo, cache)

	if err := svc.Restock(context.Background(), 1, 30); err != nil {
		t.Fatalf("Restock() error = %v", err)
	}
	if repo.skus[1].Stock != 50 {
		t.Errorf("stock = %d, want 50", repo.skus[1].Stock)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 1 {
		t.Errorf("invalidated = %v, want [1]", cache.invalidated)
	}
}

func TestRestockRejectsNonPositive(t *testing.T) {
	repo := &fakeSKURepo{skus: map[uint64]*domain.GoodsSKU{1: newGoodsSKU(1, "鲜奶 1L", 20)}}
	svc := NewGoodsCommandService(repo, nil)

	if err := svc.Restock(context.Background(), 1, 0); err == nil {
		t.Error("Restock(0) expected error")
	}
	if err := svc.Restock(context.Background(), 1, -5); err == nil {
		t.Error("Restock(-5) expected error")
	}
	if repo.skus[1].Stock != 20 {
		t.Errorf("stock = %d, want unchanged 20", repo.skus[1].Stock)
	}
}
