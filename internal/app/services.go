package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/santofavo/encomendas/internal/cache"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/models"
)

// 对话录入包含两次模型调用，写超时需覆盖
const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 90 * time.Second
	idleTimeout       = 2 * time.Minute
)

// APIService 订单 API 的 HTTP 服务
type APIService struct {
	server *http.Server
}

// NewAPIService 创建 HTTP 服务
func NewAPIService(addr string, handler http.Handler) *APIService {
	return &APIService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ErrorLog:          logger.StdLogger(),
		},
	}
}

func (s *APIService) Name() string {
	return "api"
}

// Start 监听直到 Stop 被调用
func (s *APIService) Start(ctx context.Context) error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 等待进行中的请求结束
func (s *APIService) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// StoreService 持有 Redis 与本地记录库连接，停止时释放
// 注册在 APIService 之前，逆序停止时最后关闭
type StoreService struct{}

func (StoreService) Name() string {
	return "store"
}

// Start 阻塞直到运行器取消
func (StoreService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Stop 关闭缓存与数据库连接
func (StoreService) Stop(ctx context.Context) error {
	if err := cache.Close(); err != nil {
		logger.Warnw("store_redis_close_failed", "error", err)
	}
	if models.DB == nil {
		return nil
	}
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
