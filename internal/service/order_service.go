package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/dates"
	"github.com/santofavo/encomendas/internal/draft"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/models"
	"github.com/santofavo/encomendas/internal/repository"
)

// submitRequiredFields 提交时必填的线上字段，顺序即报错顺序
var submitRequiredFields = []string{"cliente", "atendente", "dataEntrega", "dataProducao", "entrega"}

// OrderService 订单服务
type OrderService struct {
	repo    repository.OrderRepository
	catalog *catalog.Catalog
	loc     *time.Location
	now     func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, cat *catalog.Catalog, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{
		repo:    repo,
		catalog: cat,
		loc:     loc,
		now:     time.Now,
	}
}

// Catalog 返回服务使用的目录
func (s *OrderService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Today 当前民用时区的日期
func (s *OrderService) Today() string {
	return dates.Today(s.loc, s.now())
}

// SubmitResult 提交结果
type SubmitResult struct {
	PageID string `json:"pageId"`
	Icon   string `json:"icon"`
}

// Submit 校验草稿并写入一条外部记录
func (s *OrderService) Submit(ctx context.Context, d draft.Draft) (*SubmitResult, error) {
	record, err := s.buildRecord(d)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, record)
	if err != nil {
		logger.Errorw("order_create_failed",
			"customer", record.Customer,
			"delivery_date", record.DeliveryDate,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	logger.Infow("order_created",
		"page_id", id,
		"customer", record.Customer,
		"handler", record.Handler,
		"delivery_date", record.DeliveryDate,
		"icon", record.Icon,
	)
	return &SubmitResult{PageID: id, Icon: record.Icon}, nil
}

// buildRecord 所有校验都在外部调用之前完成
func (s *OrderService) buildRecord(d draft.Draft) (*models.OrderRecord, error) {
	customer := strings.TrimSpace(draft.Value(d.CustomerName))
	handler := strings.TrimSpace(draft.Value(d.Handler))
	deliveryDate := strings.TrimSpace(draft.Value(d.DeliveryDate))
	productionDate := strings.TrimSpace(draft.Value(d.ProductionDate))
	mode := strings.TrimSpace(draft.Value(d.DeliveryMode))

	if productionDate == "" && deliveryDate != "" {
		derived, err := dates.DeriveProductionDate(deliveryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: dataEntrega %q", ErrInvalidDate, deliveryDate)
		}
		productionDate = derived
	}
	if customer == "" || handler == "" || deliveryDate == "" || productionDate == "" || mode == "" {
		return nil, fmt.Errorf("%w: %s", ErrDraftIncomplete, strings.Join(submitRequiredFields, ", "))
	}
	if !s.catalog.IsHandler(handler) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHandler, handler)
	}
	if !s.catalog.IsDeliveryMode(mode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDeliveryMode, mode)
	}
	if !dates.IsISODate(deliveryDate) {
		return nil, fmt.Errorf("%w: dataEntrega %q", ErrInvalidDate, deliveryDate)
	}
	if !dates.IsISODate(productionDate) {
		return nil, fmt.Errorf("%w: dataProducao %q", ErrInvalidDate, productionDate)
	}

	record := &models.OrderRecord{
		Customer:       customer,
		Handler:        handler,
		DeliveryDate:   deliveryDate,
		ProductionDate: productionDate,
		OrderDate:      s.Today(),
		DeliveryMode:   mode,
		Status:         s.catalog.InitialStatus(),
		PaymentMethod:  strings.TrimSpace(draft.Value(d.PaymentMethod)),
		Note:           strings.TrimSpace(draft.Value(d.Note)),
		Phone:          strings.TrimSpace(draft.Value(d.Phone)),
		Address:        strings.TrimSpace(draft.Value(d.Address)),
		IsResale:       d.IsResale != nil && *d.IsResale,
		Products:       make(map[string]int),
	}

	if raw := strings.TrimSpace(draft.Value(d.DeliveryFee)); raw != "" {
		fee, err := models.ParseMoney(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeliveryFee, err)
		}
		if fee.IsPositive() {
			record.DeliveryFee = &fee
		}
	}

	hasCake := false
	for _, name := range d.ItemNames() {
		qty := d.Items[name]
		if qty < 0 {
			return nil, fmt.Errorf("%w: %q=%d", ErrInvalidQuantity, name, qty)
		}
		exact, ok := s.catalog.Resolve(name)
		if !ok || !s.catalog.IsWritable(exact) {
			logger.Warnw("order_unknown_product_ignored", "product", name, "qty", qty)
			continue
		}
		record.Products[exact] += qty
		if qty > 0 && s.catalog.IsCake(exact) {
			hasCake = true
		}
	}
	record.Icon = constants.IconGeneric
	if hasCake {
		record.Icon = constants.IconCake
	}
	return record, nil
}

// UpcomingOrders 今明两天的生产清单
type UpcomingOrders struct {
	Today    string         `json:"today"`
	Tomorrow string         `json:"tomorrow"`
	Orders   []models.Order `json:"orders"`
}

// ListUpcoming 按生产日期查询今天与明天的订单
func (s *OrderService) ListUpcoming(ctx context.Context) (*UpcomingOrders, error) {
	today := s.Today()
	tomorrow, err := dates.AddDays(today, 1)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.ListByDateRange(ctx, constants.DateFieldProduction, today, tomorrow)
	if err != nil {
		logger.Errorw("order_list_upcoming_failed", "today", today, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &UpcomingOrders{Today: today, Tomorrow: tomorrow, Orders: orders}, nil
}

// ListRange 按所选日期字段查询闭区间，field 非 "entrega" 时按生产日期
func (s *OrderService) ListRange(ctx context.Context, start, end, field string) ([]models.Order, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start == "" || end == "" {
		return nil, ErrDateRangeRequired
	}
	if !dates.IsISODate(start) || !dates.IsISODate(end) {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidDate, start, end)
	}
	field = constants.ResolveDateField(strings.TrimSpace(field))
	orders, err := s.repo.ListByDateRange(ctx, field, start, end)
	if err != nil {
		logger.Errorw("order_list_range_failed",
			"start", start,
			"end", end,
			"field", field,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return orders, nil
}

// UpdateStatus 更新状态（须在状态序列内）
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	id = strings.TrimSpace(id)
	if id == "" || status == "" {
		return ErrOrderIDRequired
	}
	if !s.catalog.IsStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.mutate("status", id, func() error {
		return s.repo.UpdateStatus(ctx, id, status)
	})
}

// UpdateDeliveryMode 更新配送方式（须在配送方式集合内）
func (s *OrderService) UpdateDeliveryMode(ctx context.Context, id, mode string) error {
	id = strings.TrimSpace(id)
	if id == "" || mode == "" {
		return ErrOrderIDRequired
	}
	if !s.catalog.IsDeliveryMode(mode) {
		return fmt.Errorf("%w: %q", ErrInvalidDeliveryMode, mode)
	}
	return s.mutate("delivery_mode", id, func() error {
		return s.repo.UpdateDeliveryMode(ctx, id, mode)
	})
}

// UpdateDate 更新生产或交付日期，空串表示清空
func (s *OrderService) UpdateDate(ctx context.Context, id, field, date string) error {
	id = strings.TrimSpace(id)
	if id == "" || field == "" {
		return ErrOrderIDRequired
	}
	if field != constants.DateFieldProduction && field != constants.DateFieldDelivery {
		return fmt.Errorf("%w: %q", ErrInvalidDateField, field)
	}
	if date != "" && !dates.IsISODate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return s.mutate("date_"+field, id, func() error {
		return s.repo.UpdateDate(ctx, id, field, date)
	})
}

// UpdateResale 更新转售标记
func (s *OrderService) UpdateResale(ctx context.Context, id string, resale bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrOrderIDRequired
	}
	return s.mutate("resale", id, func() error {
		return s.repo.UpdateResale(ctx, id, resale)
	})
}

func (s *OrderService) mutate(field, id string, write func() error) error {
	err := write()
	if err == nil {
		logger.Infow("order_field_updated", "page_id", id, "field", field)
		return nil
	}
	logger.Errorw("order_field_update_failed", "page_id", id, "field", field, "error", err)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
