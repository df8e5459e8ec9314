package app

import (
	"errors"

	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/provider"
	"github.com/santofavo/encomendas/internal/router"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	engine := router.SetupRouter(cfg, container)
	return NewRunner(StoreService{}, NewAPIService(cfg.Server.Addr(), engine)), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"store", opts.Config.Store.NormalizedDriver(),
		"auth", opts.Config.Auth.Enabled,
	)
	return RunWithOptions(runner, opts)
}
