package dashboard

import (
	"github.com/santofavo/encomendas/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest 状态修改
type UpdateStatusRequest struct {
	PageID string `json:"pageId"`
	Status string `json:"status"`
}

// UpdateEntregaRequest 配送方式修改
type UpdateEntregaRequest struct {
	PageID  string `json:"pageId"`
	Entrega string `json:"entrega"`
}

// UpdateDateRequest 日期修改，Date 为空表示清空
type UpdateDateRequest struct {
	PageID string `json:"pageId"`
	Field  string `json:"field"`
	Date   string `json:"date"`
}

// UpdateRevendaRequest 转售标记修改
type UpdateRevendaRequest struct {
	PageID  string `json:"pageId"`
	Revenda *bool  `json:"revenda"`
}

// UpdateStatus 修改状态
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageID == "" || req.Status == "" {
		respondError(c, response.CodeBadRequest, msgStatusRequired, nil)
		return
	}
	if err := h.OrderService.UpdateStatus(c.Request.Context(), req.PageID, req.Status); err != nil {
		respondWithMappedError(c, err, updateStatusErrorRules, response.CodeBadGateway, msgStatusFailed)
		return
	}
	response.OK(c)
}

// UpdateEntrega 修改配送方式
func (h *Handler) UpdateEntrega(c *gin.Context) {
	var req UpdateEntregaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageID == "" || req.Entrega == "" {
		respondError(c, response.CodeBadRequest, msgEntregaRequired, nil)
		return
	}
	if err := h.OrderService.UpdateDeliveryMode(c.Request.Context(), req.PageID, req.Entrega); err != nil {
		respondWithMappedError(c, err, updateEntregaErrorRules, response.CodeBadGateway, msgEntregaFailed)
		return
	}
	response.OK(c)
}

// UpdateDate 修改生产或交付日期
func (h *Handler) UpdateDate(c *gin.Context) {
	var req UpdateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageID == "" || req.Field == "" {
		respondError(c, response.CodeBadRequest, msgDateRequired, nil)
		return
	}
	if err := h.OrderService.UpdateDate(c.Request.Context(), req.PageID, req.Field, req.Date); err != nil {
		respondWithMappedError(c, err, updateDateErrorRules, response.CodeBadGateway, msgDateFailed)
		return
	}
	response.OK(c)
}

// UpdateRevenda 修改转售标记
func (h *Handler) UpdateRevenda(c *gin.Context) {
	var req UpdateRevendaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageID == "" || req.Revenda == nil {
		respondError(c, response.CodeBadRequest, msgRevendaRequired, nil)
		return
	}
	if err := h.OrderService.UpdateResale(c.Request.Context(), req.PageID, *req.Revenda); err != nil {
		respondWithMappedError(c, err, updateRevendaErrorRules, response.CodeBadGateway, msgRevendaFailed)
		return
	}
	response.OK(c)
}
