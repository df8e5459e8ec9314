package main

import (
	"context"
	"flag"

	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/dates"
	"github.com/santofavo/encomendas/internal/draft"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/provider"
)

type sampleOrder struct {
	offsetDays int
	draft      draft.Draft
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	var driver string
	flag.StringVar(&driver, "driver", "", "覆盖 store.driver（仅支持 sqlite / postgres）")
	flag.Parse()
	if driver != "" {
		cfg.Store.Driver = driver
	}
	if cfg.Store.NormalizedDriver() == config.StoreDriverNotion {
		stdLog.Fatalf("seed 只写入本地记录库，请设置 store.driver=sqlite 或 postgres")
	}
	if err := cfg.Validate(); err != nil {
		stdLog.Fatalf("配置无效: %v", err)
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("初始化失败: %v", err)
	}
	today := container.OrderService.Today()

	samples := []sampleOrder{
		{offsetDays: 1, draft: draft.Draft{
			Handler:       draft.String("Raissa"),
			CustomerName:  draft.String("Ana Souza"),
			Phone:         draft.String("(11) 98765-4321"),
			DeliveryMode:  draft.String("Entrega 26"),
			PaymentMethod: draft.String("PIX"),
			DeliveryFee:   draft.String("8,50"),
			Note:          draft.String("Entregar às 15h"),
			Items:         map[string]int{"Bolo Choco G": 1, "Caixa 6": 2},
		}},
		{offsetDays: 1, draft: draft.Draft{
			Handler:      draft.String("Gabriel"),
			CustomerName: draft.String("Empório Vila"),
			DeliveryMode: draft.String("Retirada 248"),
			IsResale:     draft.Bool(true),
			Items:        map[string]int{"🟫 PDM DLN": 12, "🟥 PDM CAR": 12},
		}},
		{offsetDays: 2, draft: draft.Draft{
			Handler:      draft.String("Maria"),
			CustomerName: draft.String("Carlos Lima"),
			Address:      draft.String("Avenida Paulista, 1000"),
			DeliveryMode: draft.String("Entrega 248"),
			Items:        map[string]int{"Caixa 9": 1, "Bala Caramelo": 3},
		}},
		{offsetDays: 3, draft: draft.Draft{
			Handler:      draft.String("Karla"),
			CustomerName: draft.String("Beatriz"),
			DeliveryMode: draft.String("Retirada 26"),
			Items:        map[string]int{"Bolo NOZES P": 2},
		}},
	}

	ctx := context.Background()
	created := 0
	for _, sample := range samples {
		delivery, err := dates.AddDays(today, sample.offsetDays)
		if err != nil {
			stdLog.Fatalf("计算日期失败: %v", err)
		}
		d := sample.draft
		d.DeliveryDate = draft.String(delivery)
		result, err := container.OrderService.Submit(ctx, draft.Apply(draft.Draft{}, d))
		if err != nil {
			logger.Errorw("seed_order_failed", "customer", draft.Value(d.CustomerName), "error", err)
			continue
		}
		created++
		logger.Infow("seed_order_created", "page_id", result.PageID, "delivery_date", delivery)
	}
	stdLog.Printf("seed 完成: %d/%d 条订单", created, len(samples))
}
