// Package http 提供订单服务的 HTTP 接口层。
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/freshmall/internal/order/application"
	"github.com/wyfcoding/freshmall/internal/order/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	app *application.OrderService
}

// NewOrderHandler 创建订单 HTTP 处理器实例
func NewOrderHandler(app *application.OrderService) *OrderHandler {
	return &OrderHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/v1/orders")
	{
		orders.POST("", h.CommitOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
	}
}

// commitOrderRequest 提交订单请求体
type commitOrderRequest struct {
	AddrID    uint64   `json:"addr_id" binding:"required"`
	PayMethod string   `json:"pay_method" binding:"required"`
	SKUIDs    []uint64 `json:"sku_ids" binding:"required"`
}

// CommitOrder 提交订单
func (h *OrderHandler) CommitOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "user not authenticated", domain.ErrNotAuthenticated.Code)
		return
	}

	var req commitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "missing required parameters", domain.ErrMissingParams.Code)
		return
	}

	dto, err := h.app.CommitOrder(c.Request.Context(), application.CommitOrderCommand{
		UserID:    userID,
		AddrID:    req.AddrID,
		PayMethod: req.PayMethod,
		SKUIDs:    req.SKUIDs,
	})
	if err != nil {
		var ce *domain.CheckoutError
		if errors.As(err, &ce) {
			response.ErrorWithStatus(c, statusOf(ce), ce.Message, ce.Code)
			return
		}
		logging.Error(c.Request.Context(), "commit order failed", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), domain.ErrCommitFailed.Code)
		return
	}

	response.Success(c, dto)
}

// GetOrder 获取订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "user not authenticated", domain.ErrNotAuthenticated.Code)
		return
	}

	detail, err := h.app.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		logging.Error(c.Request.Context(), "get order failed", "order_id", c.Param("id"), "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if detail == nil || detail.UserID != userID {
		response.ErrorWithStatus(c, http.StatusNotFound, "order not found", "")
		return
	}

	response.Success(c, detail)
}

// ListOrders 分页列出买家订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "user not authenticated", domain.ErrNotAuthenticated.Code)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	orders, total, err := h.app.ListOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		logging.Error(c.Request.Context(), "list orders failed", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"orders": orders, "total": total})
}

// currentUser 从网关注入的请求头解析买家身份
func currentUser(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// statusOf 将结算错误码映射为 HTTP 状态
func statusOf(ce *domain.CheckoutError) int {
	switch ce.Code {
	case domain.ErrNotAuthenticated.Code:
		return http.StatusUnauthorized
	case domain.ErrMissingParams.Code, domain.ErrInvalidPayMethod.Code, domain.ErrInvalidAddress.Code:
		return http.StatusBadRequest
	case domain.ErrItemNotFound.Code:
		return http.StatusNotFound
	case domain.ErrInsufficientStock.Code, domain.ErrConcurrencyExhausted.Code:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
