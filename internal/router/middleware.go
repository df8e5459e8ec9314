package router

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/http/response"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDKey       = constants.ContextKeyRequestID
	requestIDHeader    = constants.HeaderRequestID
	maxRequestIDLength = 64
)

// RequestIDMiddleware 沿用调用方传入的请求 ID，缺失或不合法时生成新的
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		if r <= ' ' || r > '~' {
			return false
		}
	}
	return true
}

// LoggerMiddleware 每个请求一行结构化日志，健康检查只在 debug 级别输出
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Z()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if staff := c.GetString(constants.ContextKeyStaff); staff != "" {
			fields = append(fields, "staff", staff)
		}
		switch {
		case len(c.Errors) > 0:
			sugar.Errorw("request", append(fields, "errors", c.Errors.String())...)
		case c.Request.URL.Path == "/health":
			sugar.Debugw("request", fields...)
		case c.Writer.Status() >= http.StatusInternalServerError:
			sugar.Warnw("request", fields...)
		default:
			sugar.Infow("request", fields...)
		}
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// StaffAuthMiddleware 员工令牌鉴权，未启用时直接放行
func StaffAuthMiddleware(enabled bool, tokens *service.StaffTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		if tokens == nil {
			logger.Errorw("staff_auth_service_unavailable")
			response.Abort(c, response.Fail(response.CodeUnauthorized, "Unauthorized", nil))
			return
		}
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Abort(c, response.Fail(response.CodeUnauthorized, "Authorization header required", nil))
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Abort(c, response.Fail(response.CodeUnauthorized, "Authorization header must be Bearer token", nil))
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, service.ErrAuthDisabled) {
				logger.Errorw("staff_auth_secret_missing", "path", c.Request.URL.Path)
			}
			response.Abort(c, response.Fail(response.CodeUnauthorized, "Invalid or expired token", nil))
			return
		}
		c.Set(constants.ContextKeyStaff, claims.Staff)
		c.Next()
	}
}
