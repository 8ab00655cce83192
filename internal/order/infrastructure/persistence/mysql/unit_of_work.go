package mysql

import (
	"context"

	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
)

// unitOfWork 是 domain.UnitOfWork 接口的 GORM 实现。
// 事务句柄经 contextx 下发，各仓储在事务上下文中自动复用同一连接。
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork 创建事务边界实例
func NewUnitOfWork(db *gorm.DB) domain.UnitOfWork {
	return &unitOfWork{db: db}
}

// WithinTx fn 返回非 nil 时整个事务回滚，否则提交
func (u *unitOfWork) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}
