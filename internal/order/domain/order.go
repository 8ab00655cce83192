// Package domain 包含订单服务的领域模型：订单、订单商品行、支付方式与结算核心的端口定义。
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayMethod 支付方式
type PayMethod string

const (
	PayMethodCOD      PayMethod = "COD"      // 货到付款
	PayMethodWechat   PayMethod = "WECHAT"   // 微信支付
	PayMethodAlipay   PayMethod = "ALIPAY"   // 支付宝
	PayMethodUnionPay PayMethod = "UNIONPAY" // 银联支付
)

// Valid 判断支付方式是否在固定枚举内
func (m PayMethod) Valid() bool {
	switch m {
	case PayMethodCOD, PayMethodWechat, PayMethodAlipay, PayMethodUnionPay:
		return true
	}
	return false
}

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusUnpaid    OrderStatus = "UNPAID"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusFinished  OrderStatus = "FINISHED"
)

// OrderInfo 订单实体
// 一次成功结算恰好生成一条记录，汇总字段在全部商品行写入成功后回填。
type OrderInfo struct {
	gorm.Model
	OrderID      string          `gorm:"column:order_id;type:varchar(48);uniqueIndex;not null" json:"order_id"`
	UserID       uint64          `gorm:"column:user_id;index;not null" json:"user_id"`
	AddrID       uint64          `gorm:"column:addr_id;not null" json:"addr_id"`
	PayMethod    PayMethod       `gorm:"column:pay_method;type:varchar(16);not null" json:"pay_method"`
	TotalCount   int             `gorm:"column:total_count;not null;default:0" json:"total_count"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:decimal(12,2);not null;default:0" json:"total_price"`
	TransitPrice decimal.Decimal `gorm:"column:transit_price;type:decimal(12,2);not null;default:0" json:"transit_price"`
	Status       OrderStatus     `gorm:"column:status;type:varchar(16);index;not null" json:"status"`
}

func (OrderInfo) TableName() string { return "order_infos" }

// OrderGoods 订单商品行
// Price 为下单时刻的单价快照，与后续改价解耦，创建后不再变更。
type OrderGoods struct {
	gorm.Model
	OrderID string          `gorm:"column:order_id;type:varchar(48);index;not null" json:"order_id"`
	SKUID   uint64          `gorm:"column:sku_id;index;not null" json:"sku_id"`
	Count   int             `gorm:"column:count;not null" json:"count"`
	Price   decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
}

func (OrderGoods) TableName() string { return "order_goods" }

// Amount 该商品行的小计
func (g *OrderGoods) Amount() decimal.Decimal {
	return g.Price.Mul(decimal.NewFromInt(int64(g.Count)))
}
