package application

// OrderDTO 结算结果 / 订单概要
type OrderDTO struct {
	OrderID      string `json:"order_id"`
	UserID       uint64 `json:"user_id"`
	PayMethod    string `json:"pay_method"`
	TotalCount   int    `json:"total_count"`
	TotalPrice   string `json:"total_price"`
	TransitPrice string `json:"transit_price"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
}

// OrderLineView 订单商品行视图
// Amount 为读路径上派生的小计，不落库，也不回写任何实体。
type OrderLineView struct {
	SKUID  uint64 `json:"sku_id"`
	Count  int    `json:"count"`
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

// OrderDetailDTO 订单详情
type OrderDetailDTO struct {
	OrderDTO
	Lines []OrderLineView `json:"lines"`
}
