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
	"gorm.io/gorm/clause"
)

// skuRow 只读映射到商品服务的 goods_skus 表，结算只关心这几列
type skuRow struct {
	ID    uint64          `gorm:"column:id;primaryKey"`
	Name  string          `gorm:"column:name"`
	Price decimal.Decimal `gorm:"column:price"`
	Stock int             `gorm:"column:stock"`
	Sales int             `gorm:"column:sales"`
}

func (skuRow) TableName() string { return "goods_skus" }

// inventoryStore 是 domain.InventoryStore 接口的 GORM 实现。
type inventoryStore struct {
	db *gorm.DB
}

// NewInventoryStore 创建库存存储实例
func NewInventoryStore(db *gorm.DB) domain.InventoryStore {
	return &inventoryStore{db: db}
}

func (s *inventoryStore) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// Get 无锁读取商品
func (s *inventoryStore) Get(ctx context.Context, skuID uint64) (*domain.SKU, error) {
	var row skuRow
	if err := s.getDB(ctx).Where("id = ?", skuID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logging.Error(ctx, "inventory_store.get failed", "sku_id", skuID, "error", err)
		return nil, fmt.Errorf("failed to get sku: %w", err)
	}
	return toSKU(&row), nil
}

// GetForUpdate 以 SELECT ... FOR UPDATE 读取商品，行锁持有至外层事务结束
func (s *inventoryStore) GetForUpdate(ctx context.Context, skuID uint64) (*domain.SKU, error) {
	var row skuRow
	err := s.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", skuID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logging.Error(ctx, "inventory_store.get_for_update failed", "sku_id", skuID, "error", err)
		return nil, fmt.Errorf("failed to lock sku: %w", err)
	}
	return toSKU(&row), nil
}

// UpdateStock 直接写入库存与销量
func (s *inventoryStore) UpdateStock(ctx context.Context, skuID uint64, stock, sales int) error {
	err := s.getDB(ctx).Model(&skuRow{}).Where("id = ?", skuID).
		Updates(map[string]any{"stock": stock, "sales": sales}).Error
	if err != nil {
		logging.Error(ctx, "inventory_store.update_stock failed", "sku_id", skuID, "error", err)
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}

// CompareAndSwapStock 条件更新：update goods_skus set stock=?, sales=? where id=? and stock=?
func (s *inventoryStore) CompareAndSwapStock(ctx context.Context, skuID uint64, oldStock, newStock, newSales int) (bool, error) {
	res := s.getDB(ctx).Model(&skuRow{}).
		Where("id = ? AND stock = ?", skuID, oldStock).
		Updates(map[string]any{"stock": newStock, "sales": newSales})
	if res.Error != nil {
		logging.Error(ctx, "inventory_store.cas_stock failed", "sku_id", skuID, "error", res.Error)
		return false, fmt.Errorf("failed to cas stock: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func toSKU(row *skuRow) *domain.SKU {
	return &domain.SKU{
		ID:    row.ID,
		Name:  row.Name,
		Price: row.Price,
		Stock: row.Stock,
		Sales: row.Sales,
	}
}
