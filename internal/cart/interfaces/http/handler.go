// Package http 提供购物车服务的 HTTP 接口层。
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/freshmall/internal/cart/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CartHandler 购物车 HTTP 处理器
type CartHandler struct {
	app *application.CartService
}

// NewCartHandler 创建购物车 HTTP 处理器实例
func NewCartHandler(app *application.CartService) *CartHandler {
	return &CartHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/v1/cart")
	{
		cart.GET("", h.GetCart)
		cart.GET("/count", h.Count)
		cart.POST("", h.AddLine)
		cart.PUT("", h.UpdateLine)
		cart.DELETE("", h.DeleteLines)
	}
}

func currentUser(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || userID == 0 {
		return 0, false
	}
	return userID, true
}

// GetCart 返回购物车页视图
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	view, err := h.app.GetCart(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "get cart failed", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, view)
}

// Count 返回购物车内的商品种类数
func (h *CartHandler) Count(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	count, err := h.app.Count(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "count cart failed", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"count": count})
}

// cartLineRequest 购物车行请求体
type cartLineRequest struct {
	SKUID    uint64 `json:"sku_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// AddLine 添加商品到购物车
func (h *CartHandler) AddLine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.app.AddLine(c.Request.Context(), application.AddLineCommand{
		UserID:   userID,
		SKUID:    req.SKUID,
		Quantity: req.Quantity,
	}); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"sku_id": req.SKUID})
}

// UpdateLine 修改购物车商品数量
func (h *CartHandler) UpdateLine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.app.UpdateLine(c.Request.Context(), application.UpdateLineCommand{
		UserID:   userID,
		SKUID:    req.SKUID,
		Quantity: req.Quantity,
	}); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"sku_id": req.SKUID})
}

// DeleteLines 删除购物车商品
func (h *CartHandler) DeleteLines(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req struct {
		SKUIDs []uint64 `json:"sku_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.app.DeleteLines(c.Request.Context(), application.DeleteLinesCommand{
		UserID: userID,
		SKUIDs: req.SKUIDs,
	}); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"sku_ids": req.SKUIDs})
}
