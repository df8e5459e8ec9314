package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/santofavo/encomendas/internal/app"
	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiYellow    = "\033[33m"
	ansiBrightMag = "\033[95m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if cfg.Auth.Enabled {
		if cfg.Server.Mode == "release" && isWeakSecret(cfg.Auth.Secret) {
			stdLog.Fatalf("auth.secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		} else if isWeakSecret(cfg.Auth.Secret) {
			stdLog.Printf("警告: auth.secret 过弱或仍为默认值，建议在生产环境中更换")
		}
	}
	if strings.TrimSpace(cfg.Anthropic.APIKey) == "" {
		stdLog.Printf("警告: 未配置 anthropic.api_key，聊天录入接口将返回 502")
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║        🍯 Santo Favo · Encomendas API        ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiYellow + ansiBold + "POST /api/chat-order · POST /api/create-order · GET /api/orders" + ansiReset)
	fmt.Println(ansiDim + "----------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
