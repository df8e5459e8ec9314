package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/models"
)

// DefaultPollInterval 看板默认刷新间隔
const DefaultPollInterval = 2 * time.Minute

// OrdersAPI 看板依赖的订单接口，由 client.Client 实现
type OrdersAPI interface {
	OrdersRange(ctx context.Context, start, end, field string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, pageID, status string) error
	UpdateDeliveryMode(ctx context.Context, pageID, mode string) error
	UpdateDate(ctx context.Context, pageID, field, date string) error
	UpdateResale(ctx context.Context, pageID string, resale bool) error
}

// BoardOptions 看板参数
type BoardOptions struct {
	Start     string
	End       string
	DateField string
	Interval  time.Duration
}

// Board 订单看板：定时拉取区间订单，本地筛选分组，字段修改走乐观更新
type Board struct {
	api OrdersAPI

	mu          sync.RWMutex
	opts        BoardOptions
	filters     Filters
	orders      []models.Order
	lastFetched time.Time
	lastErr     error
	now         func() time.Time
}

// NewBoard 创建看板
func NewBoard(api OrdersAPI, opts BoardOptions) *Board {
	opts.DateField = constants.ResolveDateField(opts.DateField)
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	return &Board{api: api, opts: opts, now: time.Now}
}

// Refresh 拉取一次订单，失败时保留上一次的数据
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.RLock()
	start, end, field := b.opts.Start, b.opts.End, b.opts.DateField
	b.mu.RUnlock()

	orders, err := b.api.OrdersRange(ctx, start, end, field)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastErr = err
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	b.orders = orders
	b.lastFetched = b.now()
	return nil
}

// Run 立即拉取一次，之后按间隔轮询直到 ctx 结束
func (b *Board) Run(ctx context.Context) {
	runOnce := func() {
		if err := b.Refresh(ctx); err != nil && ctx.Err() == nil {
			logger.Warnw("dashboard_refresh_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(b.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

// Interval 轮询间隔
func (b *Board) Interval() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.opts.Interval
}

// SetRange 修改查询区间，下次刷新生效
func (b *Board) SetRange(start, end string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts.Start, b.opts.End = start, end
}

// SetDateField 切换分组与查询使用的日期字段，下次刷新生效
func (b *Board) SetDateField(field string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts.DateField = constants.ResolveDateField(field)
}

// DateField 当前日期字段
func (b *Board) DateField() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.opts.DateField
}

// SetFilters 设置筛选条件
func (b *Board) SetFilters(filters Filters) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters = filters.Normalize()
}

// Filters 当前筛选条件
func (b *Board) Filters() Filters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filters
}

// Orders 最近一次拉取的全部订单
func (b *Board) Orders() []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Order(nil), b.orders...)
}

// Filtered 经筛选后的订单
func (b *Board) Filtered() []models.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Filter(b.orders, b.filters)
}

// Grouped 经筛选后按日期分组的订单
func (b *Board) Grouped() []DayGroup {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return GroupByDate(Filter(b.orders, b.filters), b.opts.DateField)
}

// Summary 经筛选后的商品汇总，names 为空时汇总全部商品
func (b *Board) Summary(names []string) []ProductTotal {
	return SummarizeProducts(b.Filtered(), names)
}

// LastFetched 最近一次成功拉取时间与最近一次刷新错误
func (b *Board) LastFetched() (time.Time, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastFetched, b.lastErr
}

// Snapshot 当前订单快照
func (b *Board) Snapshot() []models.Order {
	return b.Orders()
}

// Restore 恢复订单快照
func (b *Board) Restore(snapshot []models.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = snapshot
}

// UpdateStatus 修改状态
func (b *Board) UpdateStatus(ctx context.Context, pageID, status string) error {
	return b.mutate(ctx, pageID, func(order *models.Order) {
		order.Status = status
	}, func(ctx context.Context) error {
		return b.api.UpdateStatus(ctx, pageID, status)
	})
}

// UpdateDeliveryMode 修改配送方式
func (b *Board) UpdateDeliveryMode(ctx context.Context, pageID, mode string) error {
	return b.mutate(ctx, pageID, func(order *models.Order) {
		order.DeliveryMode = mode
	}, func(ctx context.Context) error {
		return b.api.UpdateDeliveryMode(ctx, pageID, mode)
	})
}

// UpdateDate 修改生产或交付日期，date 为空表示清空
func (b *Board) UpdateDate(ctx context.Context, pageID, field, date string) error {
	field = constants.ResolveDateField(field)
	return b.mutate(ctx, pageID, func(order *models.Order) {
		if field == constants.DateFieldDelivery {
			order.DeliveryDate = date
			return
		}
		order.ProductionDate = date
	}, func(ctx context.Context) error {
		return b.api.UpdateDate(ctx, pageID, field, date)
	})
}

// UpdateResale 修改转售标记
func (b *Board) UpdateResale(ctx context.Context, pageID string, resale bool) error {
	return b.mutate(ctx, pageID, func(order *models.Order) {
		order.IsResale = resale
	}, func(ctx context.Context) error {
		return b.api.UpdateResale(ctx, pageID, resale)
	})
}

func (b *Board) mutate(ctx context.Context, pageID string, change func(order *models.Order), remote func(ctx context.Context) error) error {
	err := Optimistic[[]models.Order](ctx, b, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		next := append([]models.Order(nil), b.orders...)
		for i := range next {
			if next[i].ID == pageID {
				change(&next[i])
			}
		}
		b.orders = next
	}, remote)
	if err != nil {
		logger.Warnw("dashboard_mutation_reverted", "page_id", pageID, "error", err)
	}
	return err
}
