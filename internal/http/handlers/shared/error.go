package shared

import (
	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/http/response"
	"github.com/santofavo/encomendas/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	failure := response.Fail(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", failure.Status,
			"message", failure.Message,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.Abort(c, failure)
}
