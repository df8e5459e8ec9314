package app

import (
	"os"
	"time"

	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/logger"

	"go.uber.org/zap"
)

// Options 启动参数；Signals 为空时只能通过服务自身退出结束
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.Named("app")
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultStopTimeout
	}
	return opts
}
