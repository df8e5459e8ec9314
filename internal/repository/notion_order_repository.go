package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/dates"
	"github.com/santofavo/encomendas/internal/models"
	"github.com/santofavo/encomendas/internal/notion"

	"github.com/shopspring/decimal"
)

// NotionAPI NotionOrderRepository 依赖的 Notion 操作
type NotionAPI interface {
	QueryDatabase(ctx context.Context, req notion.QueryRequest) (*notion.QueryResponse, error)
	RetrieveDatabase(ctx context.Context) (*notion.Database, error)
	CreatePage(ctx context.Context, req notion.CreatePageRequest) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]interface{}) error
}

// NotionOrderRepository Notion 数据库实现
type NotionOrderRepository struct {
	api      NotionAPI
	catalog  *catalog.Catalog
	pageSize int
}

// NewNotionOrderRepository 创建 Notion 订单仓库
func NewNotionOrderRepository(api NotionAPI, cat *catalog.Catalog, pageSize int) *NotionOrderRepository {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	return &NotionOrderRepository{api: api, catalog: cat, pageSize: pageSize}
}

// ListByDateRange 分页查询直到 has_more 为 false
func (r *NotionOrderRepository) ListByDateRange(ctx context.Context, field, start, end string) ([]models.Order, error) {
	property := constants.DateProperty(constants.ResolveDateField(field))
	req := notion.QueryRequest{
		Filter:   notion.DateFilterRange(property, start, end),
		Sorts:    []notion.Sort{{Property: property, Direction: "ascending"}},
		PageSize: r.pageSize,
	}

	var orders []models.Order
	for {
		resp, err := r.api.QueryDatabase(ctx, req)
		if err != nil {
			return nil, err
		}
		for i := range resp.Results {
			orders = append(orders, ParsePage(&resp.Results[i], r.catalog))
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		req.StartCursor = *resp.NextCursor
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Create 创建页面，返回页面 ID
func (r *NotionOrderRepository) Create(ctx context.Context, record *models.OrderRecord) (string, error) {
	if record == nil {
		return "", fmt.Errorf("order record is nil")
	}
	page, err := r.api.CreatePage(ctx, notion.CreatePageRequest{
		Icon:       notion.EmojiIcon(record.Icon),
		Properties: r.buildProperties(record),
	})
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// UpdateStatus 更新状态
func (r *NotionOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.update(ctx, id, constants.PropStatus, notion.StatusProperty(status))
}

// UpdateDeliveryMode 更新配送方式
func (r *NotionOrderRepository) UpdateDeliveryMode(ctx context.Context, id, mode string) error {
	return r.update(ctx, id, constants.PropDeliveryMode, notion.SelectProperty(mode))
}

// UpdateDate 更新单个日期字段，空串写入 null
func (r *NotionOrderRepository) UpdateDate(ctx context.Context, id, field, date string) error {
	property := constants.DateProperty(constants.ResolveDateField(field))
	return r.update(ctx, id, property, notion.DateProperty(date))
}

// UpdateResale 更新转售复选框
func (r *NotionOrderRepository) UpdateResale(ctx context.Context, id string, resale bool) error {
	return r.update(ctx, id, constants.PropResale, notion.CheckboxProperty(resale))
}

// PaymentMethods 读取数据库结构中的支付方式选项
func (r *NotionOrderRepository) PaymentMethods(ctx context.Context) ([]string, error) {
	db, err := r.api.RetrieveDatabase(ctx)
	if err != nil {
		return nil, err
	}
	methods := db.SelectOptions(constants.PropPaymentMethod)
	if methods == nil {
		methods = []string{}
	}
	return methods, nil
}

func (r *NotionOrderRepository) update(ctx context.Context, id, property string, value map[string]interface{}) error {
	err := r.api.UpdatePage(ctx, id, map[string]interface{}{property: value})
	if errors.Is(err, notion.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrRecordNotFound, err)
	}
	return err
}

func (r *NotionOrderRepository) buildProperties(record *models.OrderRecord) map[string]interface{} {
	props := map[string]interface{}{
		constants.PropCustomer:       notion.TitleProperty(record.Customer),
		constants.PropHandler:        notion.SelectProperty(record.Handler),
		constants.PropDeliveryDate:   notion.DateProperty(record.DeliveryDate),
		constants.PropProductionDate: notion.DateProperty(record.ProductionDate),
		constants.PropOrderDate:      notion.DateProperty(record.OrderDate),
		constants.PropDeliveryMode:   notion.SelectProperty(record.DeliveryMode),
		constants.PropStatus:         notion.StatusProperty(record.Status),
	}
	for _, product := range r.catalog.WritableProducts() {
		props[product.Name] = notion.NumberProperty(float64(record.Products[product.Name]))
	}
	if record.Phone != "" {
		props[constants.PropPhone] = notion.PhoneProperty(record.Phone)
	}
	if record.Address != "" {
		props[constants.PropAddress] = notion.RichTextProperty(record.Address)
	}
	if record.PaymentMethod != "" {
		props[constants.PropPaymentMethod] = notion.SelectProperty(record.PaymentMethod)
	}
	if record.DeliveryFee != nil && record.DeliveryFee.IsPositive() {
		props[constants.PropDeliveryFee] = notion.NumberProperty(record.DeliveryFee.InexactFloat64())
	}
	if record.Note != "" {
		props[constants.PropNote] = notion.RichTextProperty(record.Note)
	}
	if record.IsResale {
		props[constants.PropResale] = notion.CheckboxProperty(true)
	}
	return props
}

// ParsePage 将 Notion 页面解析为面板订单
func ParsePage(page *notion.Page, cat *catalog.Catalog) models.Order {
	props := page.Properties
	order := models.Order{
		ID:             page.ID,
		Customer:       props[constants.PropCustomer].TitleText(),
		ProductionDate: dates.Normalize(props[constants.PropProductionDate].DateStart()),
		DeliveryDate:   dates.Normalize(props[constants.PropDeliveryDate].DateStart()),
		OrderDate:      dates.Normalize(props[constants.PropOrderDate].DateStart()),
		DeliveryMode:   props[constants.PropDeliveryMode].SelectName(),
		Status:         props[constants.PropStatus].StatusName(),
		IsResale:       props[constants.PropResale].Checkbox,
		Handler:        props[constants.PropHandler].SelectName(),
		Note:           props[constants.PropNote].PlainText(),
		Phone:          props[constants.PropPhone].Phone(),
		Address:        props[constants.PropAddress].PlainText(),
		PaymentMethod:  props[constants.PropPaymentMethod].SelectName(),
		Products: productsInCatalogOrder(cat, func(name string) float64 {
			return props[name].NumberValue()
		}),
	}
	if page.Icon != nil && page.Icon.Type == "emoji" {
		order.Icon = page.Icon.Emoji
	}
	if fee := props[constants.PropDeliveryFee].NumberValue(); fee > 0 {
		money := models.NewMoneyFromDecimal(decimal.NewFromFloat(fee))
		order.DeliveryFee = &money
	}
	return order
}
