package application

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/freshmall/internal/cart/domain"
	goodsdomain "github.com/wyfcoding/freshmall/internal/goods/domain"
)

// CartLineView 购物车行视图
// Amount 是读路径上派生的小计，不回写任何实体。
type CartLineView struct {
	SKUID    uint64 `json:"sku_id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Unit     string `json:"unit"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	Stock    int    `json:"stock"`
	Amount   string `json:"amount"`
}

// CartView 购物车页视图
type CartView struct {
	Lines      []CartLineView `json:"lines"`
	TotalCount int            `json:"total_count"`
	TotalPrice string         `json:"total_price"`
}

// CartQueryService 购物车查询服务
type CartQueryService struct {
	repo domain.CartRepository
	skus goodsdomain.SKURepository
}

// NewCartQueryService 创建购物车查询服务实例
func NewCartQueryService(repo domain.CartRepository, skus goodsdomain.SKURepository) *CartQueryService {
	return &CartQueryService{repo: repo, skus: skus}
}

// GetCart 返回带小计与合计的购物车页视图
func (s *CartQueryService) GetCart(ctx context.Context, userID uint64) (*CartView, error) {
	snapshot, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	skuIDs := make([]uint64, 0, len(snapshot))
	for id := range snapshot {
		skuIDs = append(skuIDs, id)
	}
	sort.Slice(skuIDs, func(i, j int) bool { return skuIDs[i] < skuIDs[j] })

	view := &CartView{Lines: make([]CartLineView, 0, len(skuIDs))}
	totalPrice := decimal.Zero
	for _, skuID := range skuIDs {
		qty := snapshot[skuID]
		sku, err := s.skus.Get(ctx, skuID)
		if err != nil {
			return nil, err
		}
		if sku == nil {
			// 商品已下架删除，购物车残留记录不展示
			continue
		}
		amount := sku.Price.Mul(decimal.NewFromInt(int64(qty)))
		view.Lines = append(view.Lines, CartLineView{
			SKUID:    skuID,
			Name:     sku.Name,
			Price:    sku.Price.String(),
			Unit:     sku.Unit,
			Image:    sku.Image,
			Quantity: qty,
			Stock:    sku.Stock,
			Amount:   amount.String(),
		})
		view.TotalCount += qty
		totalPrice = totalPrice.Add(amount)
	}
	view.TotalPrice = totalPrice.String()
	return view, nil
}

// Count 返回购物车内的商品种类数（首页角标用）
func (s *CartQueryService) Count(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.Count(ctx, userID)
}
