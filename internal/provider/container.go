package provider

import (
	"fmt"
	"time"

	"github.com/santofavo/encomendas/internal/anthropic"
	"github.com/santofavo/encomendas/internal/cache"
	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/models"
	"github.com/santofavo/encomendas/internal/notion"
	"github.com/santofavo/encomendas/internal/repository"
	"github.com/santofavo/encomendas/internal/service"
	"github.com/santofavo/encomendas/internal/viacep"
)

// Container 依赖注入容器
type Container struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Location *time.Location

	// Repositories
	OrderRepo repository.OrderRepository

	// Services
	OrderService       *service.OrderService
	IntakeService      *service.IntakeService
	FormOptionsService *service.FormOptionsService
	AddressService     *service.AddressService
	StaffTokenService  *service.StaffTokenService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 缓存不可用时降级为直连
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	cat, err := cfg.Catalog.Build()
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	loc, err := cfg.Catalog.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Catalog:  cat,
		Location: loc,
	}

	// 1. 初始化 Repositories
	if err := c.initRepositories(); err != nil {
		return nil, err
	}

	// 2. 初始化 Services
	c.initServices()

	return c, nil
}

// NewContainerWith 使用给定的仓库与模型客户端组装容器（测试与离线工具）
func NewContainerWith(cfg *config.Config, cat *catalog.Catalog, loc *time.Location, repo repository.OrderRepository, model service.MessageCreator) *Container {
	c := &Container{Config: cfg, Catalog: cat, Location: loc, OrderRepo: repo}
	c.wireServices(model, nil)
	return c
}

func (c *Container) initRepositories() error {
	driver := c.Config.Store.NormalizedDriver()
	switch driver {
	case config.StoreDriverNotion:
		client, err := notion.NewClient(c.Config.Notion.ToClientConfig(), nil)
		if err != nil {
			return fmt.Errorf("init notion client: %w", err)
		}
		c.OrderRepo = repository.NewNotionOrderRepository(client, c.Catalog, c.Config.Notion.PageSize)
	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		if err := models.InitDB(driver, c.Config.Store.DSN, c.Config.Store.ToPoolConfig(), c.Config.Server.IsDebug()); err != nil {
			return fmt.Errorf("init %s store: %w", driver, err)
		}
		if err := models.AutoMigrate(models.DB); err != nil {
			return fmt.Errorf("migrate %s store: %w", driver, err)
		}
		c.OrderRepo = repository.NewGormOrderRepository(models.DB, c.Catalog, c.Catalog.PaymentMethods())
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Config.Store.Driver)
	}
	logger.Infow("provider_store_ready", "driver", driver)
	return nil
}

func (c *Container) initServices() {
	var model service.MessageCreator
	if client, err := anthropic.NewClient(c.Config.Anthropic.ToClientConfig(), nil); err != nil {
		// 未配置时聊天录入返回 502，其余接口照常
		logger.Warnw("provider_init_anthropic_failed", "error", err)
	} else {
		model = client
	}

	var lookup service.AddressLookuper
	if c.Config.Address.Enabled {
		lookup = viacep.NewClient(c.Config.Address.BaseURL, time.Duration(c.Config.Address.TimeoutMS)*time.Millisecond, nil)
	}
	c.wireServices(model, lookup)
}

func (c *Container) wireServices(model service.MessageCreator, lookup service.AddressLookuper) {
	cfg := c.Config
	c.OrderService = service.NewOrderService(c.OrderRepo, c.Catalog, c.Location)
	c.FormOptionsService = service.NewFormOptionsService(c.OrderRepo, c.Catalog, seconds(cfg.FormOptions.CacheTTLSeconds))
	c.IntakeService = service.NewIntakeService(model, c.Catalog, service.IntakeOptions{
		Model:             cfg.Anthropic.Model,
		MaxTokens:         cfg.Anthropic.MaxTokens,
		FollowUpMaxTokens: cfg.Anthropic.FollowUpMaxTokens,
		BusinessName:      cfg.Intake.BusinessName,
		Location:          c.Location,
	}).WithPaymentMethodSource(c.FormOptionsService.PaymentMethods)
	c.AddressService = service.NewAddressService(lookup, cfg.Address.Enabled && lookup != nil, seconds(cfg.Address.CacheTTLSeconds))
	c.StaffTokenService = service.NewStaffTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpireHours)
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}
