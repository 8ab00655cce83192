package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/pkg/idgen"
)

// 策略名，对应配置项 checkout.strategy
const (
	StrategyExclusiveLock   = "exclusive_lock"
	StrategyOptimisticRetry = "optimistic_retry"
)

// CheckoutConfig 结算协调器的显式配置
// 运费等业务常量一律经此注入，业务逻辑内不读取任何全局设置。
type CheckoutConfig struct {
	// Strategy 库存扣减策略：exclusive_lock 或 optimistic_retry
	Strategy string
	// MaxAttempts 乐观策略的条件更新尝试上限，0 表示默认值 3
	MaxAttempts int
	// TransitPrice 固定运费
	TransitPrice decimal.Decimal
}

// CommitOrderCommand 提交订单命令
type CommitOrderCommand struct {
	UserID    uint64
	AddrID    uint64
	PayMethod string
	SKUIDs    []uint64
}

// CheckoutCommandService 结算协调器
// 将一次购物车快照转化为持久订单：校验、扣库存、写订单及商品行、清购物车，
// 全部数据库写入在同一事务内，任一环节失败则整单回滚。
type CheckoutCommandService struct {
	orders       domain.OrderRepository
	inventory    domain.InventoryStore
	cart         domain.CartReader
	addresses    domain.AddressResolver
	uow          domain.UnitOfWork
	publisher    domain.EventPublisher
	strategy     domain.StockDecrementStrategy
	transitPrice decimal.Decimal
}

// NewCheckoutCommandService 创建结算协调器实例
func NewCheckoutCommandService(
	cfg CheckoutConfig,
	orders domain.OrderRepository,
	inventory domain.InventoryStore,
	cart domain.CartReader,
	addresses domain.AddressResolver,
	uow domain.UnitOfWork,
	publisher domain.EventPublisher,
) *CheckoutCommandService {
	var strategy domain.StockDecrementStrategy
	switch cfg.Strategy {
	case StrategyExclusiveLock:
		strategy = domain.ExclusiveLockStrategy{}
	default:
		strategy = domain.OptimisticRetryStrategy{MaxAttempts: cfg.MaxAttempts}
	}
	return &CheckoutCommandService{
		orders:       orders,
		inventory:    inventory,
		cart:         cart,
		addresses:    addresses,
		uow:          uow,
		publisher:    publisher,
		strategy:     strategy,
		transitPrice: cfg.TransitPrice,
	}
}

// CommitOrder 提交订单
// 前置校验全部通过后才会产生任何写入；事务内发生的任何错误都会使
// 订单、商品行与库存变更一并回滚，购物车清理只在提交成功之后进行。
func (s *CheckoutCommandService) CommitOrder(ctx context.Context, cmd CommitOrderCommand) (*OrderDTO, error) {
	// 前置校验，此阶段不发生任何变更
	if cmd.UserID == 0 {
		return nil, domain.ErrNotAuthenticated
	}
	if len(cmd.SKUIDs) == 0 || cmd.AddrID == 0 || cmd.PayMethod == "" {
		return nil, domain.ErrMissingParams
	}
	payMethod := domain.PayMethod(cmd.PayMethod)
	if !payMethod.Valid() {
		return nil, domain.ErrInvalidPayMethod
	}
	addr, err := s.addresses.Resolve(ctx, cmd.AddrID, cmd.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "checkout.resolve_address failed", "addr_id", cmd.AddrID, "error", err)
		return nil, domain.ErrCommitFailed
	}
	if addr == nil {
		return nil, domain.ErrInvalidAddress
	}

	order := &domain.OrderInfo{
		OrderID:      newOrderID(cmd.UserID),
		UserID:       cmd.UserID,
		AddrID:       addr.ID,
		PayMethod:    payMethod,
		TotalCount:   0,
		TotalPrice:   decimal.Zero,
		TransitPrice: s.transitPrice,
		Status:       domain.OrderStatusUnpaid,
	}

	totalCount := 0
	totalPrice := decimal.Zero

	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		// 先以零汇总落订单头
		if err := s.orders.Create(txCtx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, skuID := range cmd.SKUIDs {
			qty, ok, err := s.cart.GetQuantity(txCtx, cmd.UserID, skuID)
			if err != nil {
				return fmt.Errorf("read cart quantity: %w", err)
			}
			if !ok || qty <= 0 {
				return domain.ErrItemNotFound
			}

			price, err := s.strategy.Decrement(txCtx, s.inventory, skuID, qty)
			if err != nil {
				return err
			}

			line := &domain.OrderGoods{
				OrderID: order.OrderID,
				SKUID:   skuID,
				Count:   qty,
				Price:   price,
			}
			if err := s.orders.CreateGoods(txCtx, line); err != nil {
				return fmt.Errorf("create order goods: %w", err)
			}

			totalCount += qty
			totalPrice = totalPrice.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}

		if err := s.orders.UpdateTotals(txCtx, order.OrderID, totalCount, totalPrice); err != nil {
			return fmt.Errorf("update totals: %w", err)
		}

		if s.publisher != nil {
			event := domain.OrderCreatedEvent{
				OrderID:    order.OrderID,
				UserID:     order.UserID,
				PayMethod:  string(order.PayMethod),
				TotalCount: totalCount,
				TotalPrice: totalPrice.String(),
				CreatedAt:  time.Now(),
			}
			if err := s.publisher.PublishOrderCreated(txCtx, event); err != nil {
				return fmt.Errorf("publish order created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		var ce *domain.CheckoutError
		if errors.As(err, &ce) {
			return nil, ce
		}
		slog.ErrorContext(ctx, "checkout.commit failed", "order_id", order.OrderID, "error", err)
		return nil, domain.ErrCommitFailed
	}

	// 购物车是事务外的键值存储，提交成功后才清理；清理失败不影响已提交的订单
	if err := s.cart.Remove(ctx, cmd.UserID, cmd.SKUIDs); err != nil {
		slog.WarnContext(ctx, "checkout.cart_cleanup failed", "order_id", order.OrderID, "error", err)
	}

	order.TotalCount = totalCount
	order.TotalPrice = totalPrice
	return toOrderDTO(order), nil
}

func toOrderDTO(order *domain.OrderInfo) *OrderDTO {
	return &OrderDTO{
		OrderID:      order.OrderID,
		UserID:       order.UserID,
		PayMethod:    string(order.PayMethod),
		TotalCount:   order.TotalCount,
		TotalPrice:   order.TotalPrice.String(),
		TransitPrice: order.TransitPrice.String(),
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt.Unix(),
	}
}

// newOrderID 生成订单号：秒级时间戳 + 买家 id，追加全局 id 后缀，
// 避免同一买家在同一秒内的两次结算撞号。
func newOrderID(userID uint64) string {
	return fmt.Sprintf("%s%d-%d", time.Now().Format("20060102150405"), userID, idgen.GenID())
}
