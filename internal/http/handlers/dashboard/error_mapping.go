package dashboard

import (
	"errors"

	"github.com/santofavo/encomendas/internal/draft"
	handlershared "github.com/santofavo/encomendas/internal/http/handlers/shared"
	"github.com/santofavo/encomendas/internal/http/response"
	"github.com/santofavo/encomendas/internal/service"

	"github.com/gin-gonic/gin"
)

// 对外错误文案
const (
	msgDraftRequired     = "Campos obrigatórios: cliente, atendente, dataEntrega, dataProducao, entrega"
	msgMessagesRequired  = "messages array required"
	msgDraftInvalid      = "Invalid draft payload"
	msgChatFailed        = "Falha ao processar mensagem"
	msgCreateFailed      = "Failed to create order"
	msgListFailed        = "Failed to fetch orders from Notion"
	msgRangeRequired     = "startDate and endDate are required"
	msgFormOptionsFailed = "Failed to fetch form options"
	msgStatusRequired    = "pageId and status are required"
	msgStatusInvalid     = "Invalid status value"
	msgStatusFailed      = "Failed to update status"
	msgEntregaRequired   = "pageId and entrega are required"
	msgEntregaInvalid    = "Invalid entrega value"
	msgEntregaFailed     = "Failed to update entrega"
	msgDateRequired      = "pageId and field are required"
	msgDateFieldInvalid  = "Invalid field. Use 'producao' or 'entrega'"
	msgDateInvalid       = "Invalid date format. Use YYYY-MM-DD"
	msgDateFailed        = "Failed to update date"
	msgRevendaRequired   = "pageId and revenda (boolean) are required"
	msgRevendaFailed     = "Failed to update revenda"
	msgOrderNotFound     = "Order not found"
	msgCEPRequired       = "cep is required"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

// bindErrorMessage 草稿字段解码失败与请求体缺失分开提示
func bindErrorMessage(err error, fallback string) string {
	if errors.Is(err, draft.ErrInvalidPayload) {
		return msgDraftInvalid
	}
	return fallback
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var chatErrorRules = []mappedHandlerError{
	{target: service.ErrConversationRequired, code: response.CodeBadRequest, msg: msgMessagesRequired},
}

var createOrderErrorRules = []mappedHandlerError{
	{target: service.ErrDraftIncomplete, code: response.CodeBadRequest, msg: msgDraftRequired},
	{target: service.ErrInvalidHandler, code: response.CodeBadRequest, msg: "Invalid atendente value"},
	{target: service.ErrInvalidDeliveryMode, code: response.CodeBadRequest, msg: msgEntregaInvalid},
	{target: service.ErrInvalidDate, code: response.CodeBadRequest, msg: msgDateInvalid},
	{target: service.ErrInvalidDeliveryFee, code: response.CodeBadRequest, msg: "Invalid taxaEntrega value"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "Invalid product quantity"},
}

var listErrorRules = []mappedHandlerError{
	{target: service.ErrDateRangeRequired, code: response.CodeBadRequest, msg: msgRangeRequired},
	{target: service.ErrInvalidDate, code: response.CodeBadRequest, msg: msgDateInvalid},
}

var mutationCommonErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: msgOrderNotFound},
}

var updateStatusErrorRules = concatMappedHandlerErrors(mutationCommonErrorRules, []mappedHandlerError{
	{target: service.ErrOrderIDRequired, code: response.CodeBadRequest, msg: msgStatusRequired},
	{target: service.ErrInvalidStatus, code: response.CodeBadRequest, msg: msgStatusInvalid},
})

var updateEntregaErrorRules = concatMappedHandlerErrors(mutationCommonErrorRules, []mappedHandlerError{
	{target: service.ErrOrderIDRequired, code: response.CodeBadRequest, msg: msgEntregaRequired},
	{target: service.ErrInvalidDeliveryMode, code: response.CodeBadRequest, msg: msgEntregaInvalid},
})

var updateDateErrorRules = concatMappedHandlerErrors(mutationCommonErrorRules, []mappedHandlerError{
	{target: service.ErrOrderIDRequired, code: response.CodeBadRequest, msg: msgDateRequired},
	{target: service.ErrInvalidDateField, code: response.CodeBadRequest, msg: msgDateFieldInvalid},
	{target: service.ErrInvalidDate, code: response.CodeBadRequest, msg: msgDateInvalid},
})

var updateRevendaErrorRules = concatMappedHandlerErrors(mutationCommonErrorRules, []mappedHandlerError{
	{target: service.ErrOrderIDRequired, code: response.CodeBadRequest, msg: msgRevendaRequired},
})
