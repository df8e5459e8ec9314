package dashboard

import (
	"fmt"
	"time"

	"github.com/santofavo/encomendas/internal/constants"
	handlershared "github.com/santofavo/encomendas/internal/http/handlers/shared"
	"github.com/santofavo/encomendas/internal/http/response"
	"github.com/santofavo/encomendas/internal/models"

	"github.com/gin-gonic/gin"
)

// RangeOrdersResponse 区间列表
type RangeOrdersResponse struct {
	Orders []models.Order `json:"orders"`
}

// ListOrders 今明两天按生产日期的订单
func (h *Handler) ListOrders(c *gin.Context) {
	result, err := h.OrderService.ListUpcoming(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeBadGateway, msgListFailed, err)
		return
	}
	if result.Orders == nil {
		result.Orders = []models.Order{}
	}
	handlershared.NoStore(c)
	response.Success(c, result)
}

// ListOrdersRange 按日期字段的闭区间列表
func (h *Handler) ListOrdersRange(c *gin.Context) {
	orders, err := h.OrderService.ListRange(
		c.Request.Context(),
		c.Query("startDate"),
		c.Query("endDate"),
		c.Query("field"),
	)
	if err != nil {
		respondWithMappedError(c, err, listErrorRules, response.CodeBadGateway, msgListFailed)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	handlershared.NoStore(c)
	response.Success(c, RangeOrdersResponse{Orders: orders})
}

// FormOptions 表单选项
func (h *Handler) FormOptions(c *gin.Context) {
	options, err := h.FormOptionsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeBadGateway, msgFormOptionsFailed, err)
		return
	}
	ttl := h.FormOptionsService.TTL() / time.Second
	c.Header(constants.HeaderCacheControl, fmt.Sprintf("s-maxage=%d", int64(ttl)))
	response.Success(c, options)
}

// LookupAddress 邮编补全，失败时返回空地址
func (h *Handler) LookupAddress(c *gin.Context) {
	cep := c.Query("cep")
	if cep == "" {
		respondError(c, response.CodeBadRequest, msgCEPRequired, nil)
		return
	}
	response.Success(c, h.AddressService.Resolve(c.Request.Context(), cep))
}
