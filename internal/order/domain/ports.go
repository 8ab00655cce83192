package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// SKU 结算视角下的商品库存快照
type SKU struct {
	ID    uint64
	Name  string
	Price decimal.Decimal
	Stock int
	Sales int
}

// InventoryStore 库存存储端口
// 读锁定与条件更新两种原语分别支撑悲观与乐观两种扣减策略。
type InventoryStore interface {
	// Get 读取商品，不加锁；不存在时返回 (nil, nil)
	Get(ctx context.Context, skuID uint64) (*SKU, error)
	// GetForUpdate 以排他行锁读取商品，锁持有至外层事务提交或回滚；不存在时返回 (nil, nil)
	GetForUpdate(ctx context.Context, skuID uint64) (*SKU, error)
	// UpdateStock 直接写入库存与销量，仅在持有行锁时调用
	UpdateStock(ctx context.Context, skuID uint64, stock, sales int) error
	// CompareAndSwapStock 条件更新：仅当当前库存仍等于 oldStock 时生效，返回是否命中
	CompareAndSwapStock(ctx context.Context, skuID uint64, oldStock, newStock, newSales int) (bool, error)
}

// CartReader 购物车读取端口（外部键值存储，按买家维护 sku -> 数量 的哈希）
type CartReader interface {
	// GetQuantity 返回买家购物车内某商品的数量，第二个返回值指示记录是否存在
	GetQuantity(ctx context.Context, userID, skuID uint64) (int, bool, error)
	// Remove 删除买家购物车内指定商品的记录
	Remove(ctx context.Context, userID uint64, skuIDs []uint64) error
}

// Address 结算视角下的收货地址
type Address struct {
	ID       uint64
	UserID   uint64
	Receiver string
	Addr     string
}

// AddressResolver 地址目录端口；地址不存在或不属于该买家时返回 (nil, nil)
type AddressResolver interface {
	Resolve(ctx context.Context, addrID, userID uint64) (*Address, error)
}

// UnitOfWork 事务边界端口
// fn 内的全部写入要么一起可见要么全部回滚，fn 返回非 nil 即回滚。
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *OrderInfo) error
	CreateGoods(ctx context.Context, goods *OrderGoods) error
	// UpdateTotals 在全部商品行写入成功后回填汇总字段
	UpdateTotals(ctx context.Context, orderID string, totalCount int, totalPrice decimal.Decimal) error
	Get(ctx context.Context, orderID string) (*OrderInfo, error)
	ListGoods(ctx context.Context, orderID string) ([]*OrderGoods, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*OrderInfo, int64, error)
}

// EventPublisher 订单事件发布端口
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}
