package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Failure 一次失败的请求：Message 返回给调用方，Cause 只进日志
type Failure struct {
	Status  int
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return f.Message
	}
	return f.Message + ": " + f.Cause.Error()
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Fail 构造失败；非错误状态码按 500 处理，空消息使用状态码文本
func Fail(status int, message string, cause error) *Failure {
	if status < http.StatusBadRequest {
		status = CodeInternal
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &Failure{Status: status, Message: message, Cause: cause}
}

// Abort 写出失败并中止后续中间件
func Abort(c *gin.Context, f *Failure) {
	c.AbortWithStatusJSON(f.Status, ErrorBody{
		Error:     f.Message,
		RequestID: requestID(c),
	})
}
