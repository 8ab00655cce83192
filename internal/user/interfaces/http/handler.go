// Package http 提供用户服务的 HTTP 接口层。
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/freshmall/internal/user/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// AddressHandler 地址 HTTP 处理器
type AddressHandler struct {
	app *application.AddressService
}

// NewAddressHandler 创建地址 HTTP 处理器实例
func NewAddressHandler(app *application.AddressService) *AddressHandler {
	return &AddressHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *AddressHandler) RegisterRoutes(router *gin.RouterGroup) {
	addresses := router.Group("/v1/addresses")
	{
		addresses.GET("", h.ListAddresses)
		addresses.GET("/default", h.Default)
		addresses.POST("", h.AddAddress)
	}
}

func currentUser(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || userID == 0 {
		return 0, false
	}
	return userID, true
}

// ListAddresses 列出当前用户的全部地址
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	addrs, err := h.app.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "list addresses failed", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, addrs)
}

// Default 返回当前用户的默认地址
func (h *AddressHandler) Default(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	addr, err := h.app.Default(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "get default address failed", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	if addr == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "no default address", "")
		return
	}
	response.Success(c, addr)
}

// addAddressRequest 新增地址请求体
type addAddressRequest struct {
	Receiver string `json:"receiver" binding:"required"`
	Addr     string `json:"addr" binding:"required"`
	ZipCode  string `json:"zip_code"`
	Phone    string `json:"phone" binding:"required"`
}

// AddAddress 新增地址
func (h *AddressHandler) AddAddress(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req addAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	addr, err := h.app.AddAddress(c.Request.Context(), application.AddAddressCommand{
		UserID:   userID,
		Receiver: req.Receiver,
		Addr:     req.Addr,
		ZipCode:  req.ZipCode,
		Phone:    req.Phone,
	})
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	response.Success(c, addr)
}
