package application

import "github.com/wyfcoding/freshmall/internal/goods/domain"

// SKUDTO 商品视图
type SKUDTO struct {
	ID         uint64 `json:"id"`
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name"`
	Desc       string `json:"desc"`
	Unit       string `json:"unit"`
	Price      string `json:"price"`
	Image      string `json:"image"`
	Stock      int    `json:"stock"`
	Sales      int    `json:"sales"`
}

// CategoryDTO 分类视图
type CategoryDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Image string `json:"image"`
}

func toSKUDTO(sku *domain.GoodsSKU) *SKUDTO {
	return &SKUDTO{
		ID:         uint64(sku.ID),
		CategoryID: sku.CategoryID,
		Name:       sku.Name,
		Desc:       sku.Desc,
		Unit:       sku.Unit,
		Price:      sku.Price.String(),
		Image:      sku.Image,
		Stock:      sku.Stock,
		Sales:      sku.Sales,
	}
}
