// Package http 提供商品服务的 HTTP 接口层。
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/freshmall/internal/goods/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// GoodsHandler 商品 HTTP 处理器
type GoodsHandler struct {
	app *application.GoodsService
}

// NewGoodsHandler 创建商品 HTTP 处理器实例
func NewGoodsHandler(app *application.GoodsService) *GoodsHandler {
	return &GoodsHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *GoodsHandler) RegisterRoutes(router *gin.RouterGroup) {
	goods := router.Group("/v1/goods")
	{
		goods.GET("", h.ListSKUs)
		goods.GET("/:id", h.GetSKU)
		goods.POST("", h.CreateSKU)
		goods.POST("/:id/restock", h.Restock)
	}
	router.GET("/v1/categories", h.ListCategories)
}

// ListSKUs 分页列出上架商品
func (h *GoodsHandler) ListSKUs(c *gin.Context) {
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	skus, total, err := h.app.Query.ListSKUs(c.Request.Context(), categoryID, limit, offset)
	if err != nil {
		logging.Error(c.Request.Context(), "list skus failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"skus": skus, "total": total})
}

// GetSKU 获取商品详情
func (h *GoodsHandler) GetSKU(c *gin.Context) {
	skuID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || skuID == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid sku id", "")
		return
	}

	sku, err := h.app.Query.GetSKU(c.Request.Context(), skuID)
	if err != nil {
		logging.Error(c.Request.Context(), "get sku failed", "sku_id", skuID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if sku == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "sku not found", "")
		return
	}
	response.Success(c, sku)
}

// createSKURequest 创建商品请求体
type createSKURequest struct {
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name" binding:"required"`
	Desc       string `json:"desc"`
	Unit       string `json:"unit"`
	Price      string `json:"price" binding:"required"`
	Image      string `json:"image"`
	Stock      int    `json:"stock"`
}

// CreateSKU 创建商品
func (h *GoodsHandler) CreateSKU(c *gin.Context) {
	var req createSKURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	id, err := h.app.Command.CreateSKU(c.Request.Context(), application.CreateSKUCommand{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Desc:       req.Desc,
		Unit:       req.Unit,
		Price:      req.Price,
		Image:      req.Image,
		Stock:      req.Stock,
	})
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"id": id})
}

// Restock 补货
func (h *GoodsHandler) Restock(c *gin.Context) {
	skuID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || skuID == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid sku id", "")
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.app.Command.Restock(c.Request.Context(), skuID, req.Quantity); err != nil {
		logging.Error(c.Request.Context(), "restock failed", "sku_id", skuID, "error", err)
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"id": skuID})
}

// ListCategories 列出全部分类
func (h *GoodsHandler) ListCategories(c *gin.Context) {
	categories, err := h.app.Query.ListCategories(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "list categories failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, categories)
}
