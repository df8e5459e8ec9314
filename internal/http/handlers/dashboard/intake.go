package dashboard

import (
	"github.com/santofavo/encomendas/internal/draft"
	handlershared "github.com/santofavo/encomendas/internal/http/handlers/shared"
	"github.com/santofavo/encomendas/internal/http/response"
	"github.com/santofavo/encomendas/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatOrderRequest 对话录入请求
type ChatOrderRequest struct {
	Messages       []service.ChatTurn `json:"messages"`
	Draft          draft.Draft        `json:"draft"`
	PaymentMethods []string           `json:"metodoOptions"`
}

// CreateOrderRequest 提交草稿请求
type CreateOrderRequest struct {
	Draft *draft.Draft `json:"draft"`
}

// CreateOrderResponse 提交结果
type CreateOrderResponse struct {
	OK     bool   `json:"ok"`
	PageID string `json:"pageId"`
}

// ChatOrder 处理一轮对话，返回回复、原始更新集与就绪标记
func (h *Handler) ChatOrder(c *gin.Context) {
	var req ChatOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, bindErrorMessage(err, msgMessagesRequired), nil)
		return
	}
	if len(req.Messages) == 0 {
		respondError(c, response.CodeBadRequest, msgMessagesRequired, nil)
		return
	}

	result, err := h.IntakeService.Process(c.Request.Context(), service.ChatInput{
		Messages:       req.Messages,
		Draft:          req.Draft,
		PaymentMethods: req.PaymentMethods,
	})
	if err != nil {
		respondWithMappedError(c, err, chatErrorRules, response.CodeBadGateway, msgChatFailed)
		return
	}
	response.Success(c, result)
}

// CreateOrder 校验草稿并写入记录库
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, bindErrorMessage(err, msgDraftRequired), nil)
		return
	}
	if req.Draft == nil {
		respondError(c, response.CodeBadRequest, msgDraftRequired, nil)
		return
	}

	result, err := h.OrderService.Submit(c.Request.Context(), *req.Draft)
	if err != nil {
		respondWithMappedError(c, err, createOrderErrorRules, response.CodeBadGateway, msgCreateFailed)
		return
	}
	if staff := handlershared.StaffName(c); staff != "" {
		handlershared.RequestLog(c).Infow("order_submitted_by_staff", "staff", staff, "page_id", result.PageID)
	}
	response.Success(c, CreateOrderResponse{OK: true, PageID: result.PageID})
}
