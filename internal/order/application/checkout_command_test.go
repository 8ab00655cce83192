package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/order/domain"
)

// fakeInventory 内存库存，条件更新语义与数据库实现一致。
type fakeInventory struct {
	skus map[uint64]*domain.SKU
}

func (f *fakeInventory) Get(_ context.Context, skuID uint64) (*domain.SKU, error) {
	sku, ok := f.skus[skuID]
	if !ok {
		return nil, nil
	}
	cp := *sku
	return &cp, nil
}

func (f *fakeInventory) GetForUpdate(ctx context.Context, skuID uint64) (*domain.SKU, error) {
	return f.Get(ctx, skuID)
}

func (f *fakeInventory) UpdateStock(_ context.Context, skuID uint64, stock, sales int) error {
	sku, ok := f.skus[skuID]
	if !ok {
		return fmt.Errorf("sku %d not found", skuID)
	}
	sku.Stock = stock
	sku.Sales = sales
	return nil
}

func (f *fakeInventory) CompareAndSwapStock(_ context.Context, skuID uint64, oldStock, newStock, newSales int) (bool, error) {
	sku, ok := f.skus[skuID]
	if !ok || sku.Stock != oldStock {
		return false, nil
	}
	sku.Stock = newStock
	sku.Sales = newSales
	return true, nil
}

func (f *fakeInventory) snapshot() map[uint64]domain.SKU {
	snap := make(map[uint64]domain.SKU, len(f.skus))
	for id, sku := range f.skus {
		snap[id] = *sku
	}
	return snap
}

func (f *fakeInventory) restore(snap map[uint64]domain.SKU) {
	for id, sku := range snap {
		cp := sku
		f.skus[id] = &cp
	}
}

// fakeCart 内存购物车，结算后的清理发生在事务外，需要自己的锁。
type fakeCart struct {
	mu    sync.Mutex
	lines map[uint64]map[uint64]int // userID -> skuID -> qty
}

func (f *fakeCart) GetQuantity(_ context.Context, userID, skuID uint64) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	qty, ok := f.lines[userID][skuID]
	return qty, ok, nil
}

func (f *fakeCart) Remove(_ context.Context, userID uint64, skuIDs []uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range skuIDs {
		delete(f.lines[userID], id)
	}
	return nil
}

type fakeAddresses struct {
	addrs map[uint64]*domain.Address
}

func (f *fakeAddresses) Resolve(_ context.Context, addrID, userID uint64) (*domain.Address, error) {
	addr, ok := f.addrs[addrID]
	if !ok || addr.UserID != userID {
		return nil, nil
	}
	return addr, nil
}

// fakeOrders 内存订单仓储
type fakeOrders struct {
	orders map[string]*domain.OrderInfo
	goods  []*domain.OrderGoods
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[string]*domain.OrderInfo)}
}

func (f *fakeOrders) Create(_ context.Context, order *domain.OrderInfo) error {
	if _, exists := f.orders[order.OrderID]; exists {
		return fmt.Errorf("duplicate order id %s", order.OrderID)
	}
	cp := *order
	f.orders[order.OrderID] = &cp
	return nil
}

func (f *fakeOrders) CreateGoods(_ context.Context, goods *domain.OrderGoods) error {
	cp := *goods
	f.goods = append(f.goods, &cp)
	return nil
}

func (f *fakeOrders) UpdateTotals(_ context.Context, orderID string, totalCount int, totalPrice decimal.Decimal) error {
	order, ok := f.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.TotalCount = totalCount
	order.TotalPrice = totalPrice
	return nil
}

func (f *fakeOrders) Get(_ context.Context, orderID string) (*domain.OrderInfo, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrders) ListGoods(_ context.Context, orderID string) ([]*domain.OrderGoods, error) {
	var lines []*domain.OrderGoods
	for _, g := range f.goods {
		if g.OrderID == orderID {
			cp := *g
			lines = append(lines, &cp)
		}
	}
	return lines, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID uint64, _, _ int) ([]*domain.OrderInfo, int64, error) {
	var orders []*domain.OrderInfo
	for _, o := range f.orders {
		if o.UserID == userID {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	return orders, int64(len(orders)), nil
}

func (f *fakeOrders) snapshot() (map[string]domain.OrderInfo, int) {
	snap := make(map[string]domain.OrderInfo, len(f.orders))
	for id, o := range f.orders {
		snap[id] = *o
	}
	return snap, len(f.goods)
}

func (f *fakeOrders) restore(snap map[string]domain.OrderInfo, goodsLen int) {
	f.orders = make(map[string]*domain.OrderInfo, len(snap))
	for id, o := range snap {
		cp := o
		f.orders[id] = &cp
	}
	f.goods = f.goods[:goodsLen]
}

// fakeUnitOfWork 以全局互斥串行化事务，失败时回滚库存与订单的快照，
// 模拟数据库事务的原子性。
type fakeUnitOfWork struct {
	mu     sync.Mutex
	inv    *fakeInventory
	orders *fakeOrders
}

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	invSnap := u.inv.snapshot()
	orderSnap, goodsLen := u.orders.snapshot()
	if err := fn(ctx); err != nil {
		u.inv.restore(invSnap)
		u.orders.restore(orderSnap, goodsLen)
		return err
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.OrderCreatedEvent
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, event domain.OrderCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type checkoutFixture struct {
	inv       *fakeInventory
	cart      *fakeCart
	orders    *fakeOrders
	publisher *fakePublisher
	svc       *CheckoutCommandService
}

func newCheckoutFixture(strategy string) *checkoutFixture {
	inv := &fakeInventory{skus: map[uint64]*domain.SKU{
		1: {ID: 1, Name: "草莓 500g", Price: decimal.NewFromFloat(29.9), Stock: 10},
		2: {ID: 2, Name: "有机菠菜", Price: decimal.NewFromFloat(8.5), Stock: 5},
	}}
	cart := &fakeCart{lines: map[uint64]map[uint64]int{
		100: {1: 3, 2: 2},
	}}
	orders := newFakeOrders()
	publisher := &fakePublisher{}
	addresses := &fakeAddresses{addrs: map[uint64]*domain.Address{
		7: {ID: 7, UserID: 100, Receiver: "张三", Addr: "幸福路 1 号"},
	}}
	uow := &fakeUnitOfWork{inv: inv, orders: orders}

	svc := NewCheckoutCommandService(
		CheckoutConfig{Strategy: strategy, TransitPrice: decimal.NewFromInt(10)},
		orders, inv, cart, addresses, uow, publisher,
	)
	return &checkoutFixture{inv: inv, cart: cart, orders: orders, publisher: publisher, svc: svc}
}

func checkoutCode(t *testing.T, err error) string {
	t.Helper()
	var ce *domain.CheckoutError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a CheckoutError", err)
	}
	return ce.Code
}

func TestCommitOrderSuccess(t *testing.T) {
	fx := newCheckoutFixture(StrategyOptimisticRetry)

	dto, err := fx.svc.CommitOrder(context.Background(), CommitOrderCommand{
		UserID: 100, AddrID: 7, PayMethod: "ALIPAY", SKUIDs: []uint64{1, 2},
	})
	if err != nil {
		t.Fatalf("CommitOrder() error = %v", err)
	}

	// 总件数与总价 = Σ 数量 × 单价快照
	if dto.TotalCount != 5 {
		t.Errorf("total count = %d, want 5", dto.TotalCount)
	}
	want := decimal.NewFromFloat(29.9).Mul(decimal.NewFromInt(3)).
		Add(decimal.NewFromFloat(8.5).Mul(decimal.NewFromInt(2)))
	if dto.TotalPrice != want.String() {
		t.Errorf("total price = %s, want %s", dto.TotalPrice, want)
	}
	if dto.TransitPrice != "10" {
		t.Errorf("transit price = %s, want 10", dto.TransitPrice)
	}
	if dto.Status != string(domain.OrderStatusUnpaid) {
		t.Errorf("status = %s, want UNPAID", dto.Status)
	}

	// 库存扣减、销量累加
	if fx.inv.skus[1].Stock != 7 || fx.inv.skus[1].Sales != 3 {
		t.Errorf("sku1 stock/sales = %d/%d, want 7/3", fx.inv.skus[1].Stock, fx.inv.skus[1].Sales)
	}
	if fx.inv.skus[2].Stock != 3 || fx.inv.skus[2].Sales != 2 {
		t.Errorf("sku2 stock/sales = %d/%d, want 3/2", fx.inv.skus[2].Stock, fx.inv.skus[2].Sales)
	}

	// 订单头、商品行均已持久化
	if len(fx.orders.orders) != 1 || len(fx.orders.goods) != 2 {
		t.Errorf("persisted orders/goods = %d/%d, want 1/2", len(fx.orders.orders), len(fx.orders.goods))
	}

	// 已结算的商品移出购物车
	if len(fx.cart.lines[100]) != 0 {
		t.Errorf("cart lines remaining = %d, want 0", len(fx.cart.lines[100]))
	}

	// 订单创建事件已发布
	if len(fx.publisher.events) != 1 || fx.publisher.events[0].OrderID != dto.OrderID {
		t.Errorf("published events = %+v, want one for %s", fx.publisher.events, dto.OrderID)
	}
}

func TestCommitOrderInsufficientStock(t *testing.T) {
	fx := newCheckoutFixture(StrategyOptimisticRetry)
	fx.cart.lines[100] = map[uint64]int{1: 11}

	_, err := fx.svc.CommitOrder(context.Background(), CommitOrderCommand{
		UserID: 100, AddrID: 7, PayMethod: "COD", SKUIDs: []uint64{1},
	})
	if code := checkoutCode(t, err); code != "INSUFFICIENT_STOCK" {
		t.Fatalf("code = %s, want INSUFFICIENT_STOCK", code)
	}

	// 整单回滚：无订单、库存原样、购物车原样
	if len(fx.orders.orders) != 0 || len(fx.orders.goods) != 0 {
		t.Errorf("persisted orders/goods = %d/%d, want 0/0", len(fx.orders.orders), len(fx.orders.goods))
	}
	if fx.inv.skus[1].Stock != 10 {
		t.Errorf("stock = %d, want unchanged 10", fx.inv.skus[1].Stock)
	}
	if fx.cart.lines[100][1] != 11 {
		t.Errorf("cart qty = %d, want unchanged 11", fx.cart.lines[100][1])
	}
}

func TestCommitOrderPreconditions(t *testing.T) {
	tests := []struct {
		name string
		cmd  CommitOrderCommand
		code string
	}{
		{"未登录", CommitOrderCommand{AddrID: 7, PayMethod: "COD", SKUIDs: []uint64{1}}, "NOT_AUTHENTICATED"},
		{"空商品列表", CommitOrderCommand{UserID: 100, AddrID: 7, PayMethod: "COD"}, "MISSING_PARAMS"},
		{"缺地址", CommitOrderCommand{UserID: 100, PayMethod: "COD", SKUIDs: []uint64{1}}, "MISSING_PARAMS"},
		{"缺支付方式", CommitOrderCommand{UserID: 100, AddrID: 7, SKUIDs: []uint64{1}}, "MISSING_PARAMS"},
		{"非法支付方式", CommitOrderCommand{UserID: 100, AddrID: 7, PayMethod: "CHEQUE", SKUIDs: []uint64{1}}, "INVALID_PAYMENT_METHOD"},
		{"地址不存在", CommitOrderCommand{UserID: 100, AddrID: 404, PayMethod: "COD", SKUIDs: []uint64{1}}, "INVALID_ADDRESS"},
		{"地址不属于买家", CommitOrderCommand{UserID: 200, AddrID: 7, PayMethod: "COD", SKUIDs: []uint64{1}}, "INVALID_ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newCheckoutFixture(StrategyOptimisticRetry)
			_, err := fx.svc.CommitOrder(context.Background(), tt.cmd)
			if code := checkoutCode(t, err); code != tt.code {
				t.Errorf("code = %s, want %s", code, tt.code)
			}
			// 前置校验失败不得产生任何写入
			if len(fx.orders.orders) != 0 {
				t.Errorf("orders persisted = %d, want 0", len(fx.orders.orders))
			}
			if fx.inv.skus[1].Stock != 10 {
				t.Errorf("stock = %d, want untouched 10", fx.inv.skus[1].Stock)
			}
		})
	}
}

func TestCommitOrderMissingCartEntry(t *testing.T) {
	fx := newCheckoutFixture(StrategyOptimisticRetry)

	// sku 1 在购物车，999 不在
	fx.cart.lines[100] = map[uint64]int{1: 2}
	_, err := fx.svc.CommitOrder(context.Background(), CommitOrderCommand{
		UserID: 100, AddrID: 7, PayMethod: "COD", SKUIDs: []uint64{1, 999},
	})
	if code := checkoutCode(t, err); code != "ITEM_NOT_FOUND" {
		t.Fatalf("code = %s, want ITEM_NOT_FOUND", code)
	}

	// 第一件商品的扣减随整单回滚
	if fx.inv.skus[1].Stock != 10 {
		t.Errorf("stock = %d, want rolled back to 10", fx.inv.skus[1].Stock)
	}
	if len(fx.orders.orders) != 0 || len(fx.orders.goods) != 0 {
		t.Errorf("persisted orders/goods = %d/%d, want 0/0", len(fx.orders.orders), len(fx.orders.goods))
	}
}

func TestCommitOrderUnknownSKURollsBack(t *testing.T) {
	for _, strategy := range []string{StrategyExclusiveLock, StrategyOptimisticRetry} {
		t.Run(strategy, func(t *testing.T) {
			fx := newCheckoutFixture(strategy)
			fx.cart.lines[100] = map[uint64]int{1: 2, 999: 1}

			_, err := fx.svc.CommitOrder(context.Background(), CommitOrderCommand{
				UserID: 100, AddrID: 7, PayMethod: "COD", SKUIDs: []uint64{1, 999},
			})
			if code := checkoutCode(t, err); code != "ITEM_NOT_FOUND" {
				t.Fatalf("code = %s, want ITEM_NOT_FOUND", code)
			}
			if fx.inv.skus[1].Stock != 10 {
				t.Errorf("stock = %d, want rolled back to 10", fx.inv.skus[1].Stock)
			}
		})
	}
}

func TestCommitOrderConcurrentStorm(t *testing.T) {
	const (
		buyers = 20
		stock  = 5
	)

	for _, strategy := range []string{StrategyExclusiveLock, StrategyOptimisticRetry} {
		t.Run(strategy, func(t *testing.T) {
			inv := &fakeInventory{skus: map[uint64]*domain.SKU{
				1: {ID: 1, Name: "车厘子 1kg", Price: decimal.NewFromFloat(99), Stock: stock},
			}}
			cart := &fakeCart{lines: make(map[uint64]map[uint64]int)}
			addresses := &fakeAddresses{addrs: make(map[uint64]*domain.Address)}
			for i := 1; i <= buyers; i++ {
				userID := uint64(i)
				cart.lines[userID] = map[uint64]int{1: 1}
				addresses.addrs[userID] = &domain.Address{ID: userID, UserID: userID}
			}
			orders := newFakeOrders()
			uow := &fakeUnitOfWork{inv: inv, orders: orders}

			svc := NewCheckoutCommandService(
				CheckoutConfig{Strategy: strategy, TransitPrice: decimal.NewFromInt(10)},
				orders, inv, cart, addresses, uow, nil,
			)

			gate := make(chan struct{})
			var wg sync.WaitGroup
			results := make([]error, buyers)
			for i := 0; i < buyers; i++ {
				wg.Add(1)
				go func(idx int) {
					defer wg.Done()
					<-gate
					userID := uint64(idx + 1)
					_, err := svc.CommitOrder(context.Background(), CommitOrderCommand{
						UserID: userID, AddrID: userID, PayMethod: "COD", SKUIDs: []uint64{1},
					})
					results[idx] = err
				}(i)
			}
			close(gate)
			wg.Wait()

			succeeded := 0
			for _, err := range results {
				if err == nil {
					succeeded++
					continue
				}
				if code := checkoutCode(t, err); code != "INSUFFICIENT_STOCK" && code != "CONCURRENCY_EXHAUSTED" {
					t.Errorf("unexpected failure code %s", code)
				}
			}
			if succeeded != stock {
				t.Errorf("succeeded = %d, want exactly %d", succeeded, stock)
			}
			if inv.skus[1].Stock != 0 {
				t.Errorf("final stock = %d, want 0", inv.skus[1].Stock)
			}
			if inv.skus[1].Stock < 0 {
				t.Errorf("stock went negative: %d", inv.skus[1].Stock)
			}
			if inv.skus[1].Sales != stock {
				t.Errorf("final sales = %d, want %d", inv.skus[1].Sales, stock)
			}

			// 成功订单数与持久化订单数一致，订单号唯一
			if len(orders.orders) != stock {
				t.Errorf("persisted orders = %d, want %d", len(orders.orders), stock)
			}
		})
	}
}
