package response

import (
	"net/http"

	"github.com/santofavo/encomendas/internal/constants"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// OKBody 单字段写入成功
type OKBody struct {
	OK bool `json:"ok"`
}

// Success 成功响应，数据直接作为响应体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// OK 返回 {"ok": true}
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, OKBody{OK: true})
}

// Error 错误响应，状态码即 HTTP 状态
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{
		Error:     msg,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// MethodNotAllowed 405响应
func MethodNotAllowed(c *gin.Context) {
	Error(c, CodeMethodNotAllowed, "Method not allowed")
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
