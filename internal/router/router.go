package router

import (
	"github.com/santofavo/encomendas/internal/cache"
	"github.com/santofavo/encomendas/internal/config"
	dashboardhandlers "github.com/santofavo/encomendas/internal/http/handlers/dashboard"
	"github.com/santofavo/encomendas/internal/http/response"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true

	h := dashboardhandlers.New(c)
	chatRule := RateLimitRule{
		Prefix:        cache.RateLimitKey(cache.RateLimitChatPrefix),
		WindowSeconds: cfg.Security.ChatRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ChatRateLimit.MaxRequests,
		Message:       "Muitas mensagens, tente novamente em %d segundos",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	r.GET("/health", func(c *gin.Context) {
		response.OK(c)
	})

	api := r.Group("/api")
	api.Use(StaffAuthMiddleware(cfg.Auth.Enabled, c.StaffTokenService))
	{
		// 录入
		api.POST("/chat-order", RateLimitMiddleware(cache.Client(), chatRule, KeyByStaffOrIP), h.ChatOrder)
		api.POST("/create-order", h.CreateOrder)

		// 列表与选项
		api.GET("/orders", h.ListOrders)
		api.GET("/orders-range", h.ListOrdersRange)
		api.GET("/form-options", h.FormOptions)
		api.GET("/address", h.LookupAddress)

		// 单字段修改
		api.POST("/update-status", h.UpdateStatus)
		api.POST("/update-entrega", h.UpdateEntrega)
		api.POST("/update-date", h.UpdateDate)
		api.POST("/update-revenda", h.UpdateRevenda)
	}

	return r
}
