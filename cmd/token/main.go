package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	var staff string
	var hours int
	flag.StringVar(&staff, "staff", "", "员工姓名（写入令牌）")
	flag.IntVar(&hours, "hours", cfg.Auth.ExpireHours, "有效期（小时）")
	flag.Parse()

	staff = strings.TrimSpace(staff)
	if staff == "" {
		stdLog.Fatalf("-staff 不能为空")
	}
	if !cfg.Auth.Enabled {
		logger.Warnw("token_auth_disabled", "hint", "auth.enabled=false，服务端不会校验该令牌")
	}

	tokens := service.NewStaffTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, hours)
	token, expiresAt, err := tokens.Issue(staff)
	if err != nil {
		stdLog.Fatalf("签发失败: %v", err)
	}
	logger.Infow("token_issued", "staff", staff, "expires_at", expiresAt.Format(time.RFC3339))
	fmt.Println(token)
}
