package service

import (
	"context"
	"fmt"
	"time"

	"github.com/santofavo/encomendas/internal/cache"
	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/repository"
)

const defaultFormOptionsTTL = 300 * time.Second

// FormOptions 录入表单需要的选项
type FormOptions struct {
	PaymentMethods []string        `json:"metodosPagamento"`
	Handlers       []string        `json:"atendentes"`
	DeliveryModes  []string        `json:"entregas"`
	Statuses       []string        `json:"statuses"`
	Products       []catalog.Group `json:"produtos"`
}

// FormOptionsService 表单选项服务，支付方式来自记录库结构
type FormOptionsService struct {
	repo    repository.OrderRepository
	catalog *catalog.Catalog
	ttl     time.Duration
}

// NewFormOptionsService 创建表单选项服务
func NewFormOptionsService(repo repository.OrderRepository, cat *catalog.Catalog, ttl time.Duration) *FormOptionsService {
	if ttl <= 0 {
		ttl = defaultFormOptionsTTL
	}
	return &FormOptionsService{repo: repo, catalog: cat, ttl: ttl}
}

// TTL 缓存有效期
func (s *FormOptionsService) TTL() time.Duration {
	return s.ttl
}

// Get 优先读缓存；记录库没有配置支付方式选项时回退到目录配置
func (s *FormOptionsService) Get(ctx context.Context) (*FormOptions, error) {
	return cache.Remember(ctx, cache.FormOptionsKey(), s.ttl, s.load)
}

func (s *FormOptionsService) load(ctx context.Context) (*FormOptions, bool, error) {
	methods, err := s.repo.PaymentMethods(ctx)
	if err != nil {
		logger.Errorw("form_options_schema_failed", "error", err)
		return nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(methods) == 0 {
		methods = s.catalog.PaymentMethods()
	}
	return &FormOptions{
		PaymentMethods: methods,
		Handlers:       s.catalog.Handlers(),
		DeliveryModes:  s.catalog.DeliveryModes(),
		Statuses:       s.catalog.Statuses(),
		Products:       s.catalog.Groups(),
	}, true, nil
}

// PaymentMethods 仅返回支付方式，失败时回退到目录配置
func (s *FormOptionsService) PaymentMethods(ctx context.Context) []string {
	options, err := s.Get(ctx)
	if err != nil {
		return s.catalog.PaymentMethods()
	}
	return options.PaymentMethods
}
