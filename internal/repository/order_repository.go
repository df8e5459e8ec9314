package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("order record not found")

// OrderRepository 订单记录库访问接口
type OrderRepository interface {
	ListByDateRange(ctx context.Context, field, start, end string) ([]models.Order, error)
	Create(ctx context.Context, record *models.OrderRecord) (string, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateDeliveryMode(ctx context.Context, id, mode string) error
	UpdateDate(ctx context.Context, id, field, date string) error
	UpdateResale(ctx context.Context, id string, resale bool) error
	PaymentMethods(ctx context.Context) ([]string, error)
}

// GormOrderRepository 本地记录库实现（sqlite / postgres）
type GormOrderRepository struct {
	db             *gorm.DB
	catalog        *catalog.Catalog
	paymentMethods []string
}

// NewGormOrderRepository 创建本地订单仓库，支付方式来自配置
func NewGormOrderRepository(db *gorm.DB, cat *catalog.Catalog, paymentMethods []string) *GormOrderRepository {
	return &GormOrderRepository{db: db, catalog: cat, paymentMethods: append([]string(nil), paymentMethods...)}
}

// ListByDateRange 按日期字段闭区间查询，按该字段升序
func (r *GormOrderRepository) ListByDateRange(ctx context.Context, field, start, end string) ([]models.Order, error) {
	column := dateColumn(field)
	var rows []models.StoredOrder
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where(fmt.Sprintf("%s >= ? AND %s <= ?", column, column), start, end).
		Order(column + " ASC").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, r.toOrder(&rows[i]))
	}
	return orders, nil
}

// Create 创建订单与商品数量
func (r *GormOrderRepository) Create(ctx context.Context, record *models.OrderRecord) (string, error) {
	if record == nil {
		return "", fmt.Errorf("order record is nil")
	}
	stored := models.StoredOrder{
		ID:             uuid.NewString(),
		Customer:       record.Customer,
		Handler:        record.Handler,
		DeliveryDate:   record.DeliveryDate,
		ProductionDate: record.ProductionDate,
		OrderDate:      record.OrderDate,
		DeliveryMode:   record.DeliveryMode,
		Status:         record.Status,
		PaymentMethod:  record.PaymentMethod,
		DeliveryFee:    record.DeliveryFee,
		Note:           record.Note,
		Phone:          record.Phone,
		Address:        record.Address,
		IsResale:       record.IsResale,
		Icon:           record.Icon,
	}
	for name, qty := range record.Products {
		stored.Products = append(stored.Products, models.StoredOrderProduct{
			OrderID:  stored.ID,
			Name:     name,
			Quantity: qty,
		})
	}
	if err := r.db.WithContext(ctx).Create(&stored).Error; err != nil {
		return "", err
	}
	return stored.ID, nil
}

// UpdateStatus 更新状态
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.updateColumn(ctx, id, "status", status)
}

// UpdateDeliveryMode 更新配送方式
func (r *GormOrderRepository) UpdateDeliveryMode(ctx context.Context, id, mode string) error {
	return r.updateColumn(ctx, id, "delivery_mode", mode)
}

// UpdateDate 更新单个日期字段，空串表示清空
func (r *GormOrderRepository) UpdateDate(ctx context.Context, id, field, date string) error {
	return r.updateColumn(ctx, id, dateColumn(field), date)
}

// UpdateResale 更新转售标记
func (r *GormOrderRepository) UpdateResale(ctx context.Context, id string, resale bool) error {
	return r.updateColumn(ctx, id, "is_resale", resale)
}

// PaymentMethods 本地记录库没有 schema，返回配置的支付方式
func (r *GormOrderRepository) PaymentMethods(ctx context.Context) ([]string, error) {
	return append([]string(nil), r.paymentMethods...), nil
}

func (r *GormOrderRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	id = strings.TrimSpace(id)
	result := r.db.WithContext(ctx).Model(&models.StoredOrder{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}

func (r *GormOrderRepository) toOrder(row *models.StoredOrder) models.Order {
	quantities := make(map[string]int, len(row.Products))
	for _, product := range row.Products {
		quantities[product.Name] = product.Quantity
	}
	order := models.Order{
		ID:             row.ID,
		Customer:       row.Customer,
		Icon:           row.Icon,
		ProductionDate: row.ProductionDate,
		DeliveryDate:   row.DeliveryDate,
		OrderDate:      row.OrderDate,
		DeliveryMode:   row.DeliveryMode,
		Status:         row.Status,
		IsResale:       row.IsResale,
		Handler:        row.Handler,
		Note:           row.Note,
		Phone:          row.Phone,
		Address:        row.Address,
		PaymentMethod:  row.PaymentMethod,
		Products:       productsInCatalogOrder(r.catalog, func(name string) float64 { return float64(quantities[name]) }),
	}
	if row.DeliveryFee != nil && row.DeliveryFee.IsPositive() {
		fee := *row.DeliveryFee
		order.DeliveryFee = &fee
	}
	return order
}

// productsInCatalogOrder 按目录顺序输出数量大于 0 的商品，名称去除空格
func productsInCatalogOrder(cat *catalog.Catalog, quantityOf func(name string) float64) []models.OrderProduct {
	products := make([]models.OrderProduct, 0)
	for _, product := range cat.Products() {
		qty := int(quantityOf(product.Name))
		if qty <= 0 {
			continue
		}
		products = append(products, models.OrderProduct{Name: catalog.Display(product.Name), Qty: qty})
	}
	return products
}

func dateColumn(field string) string {
	if constants.ResolveDateField(field) == constants.DateFieldDelivery {
		return "delivery_date"
	}
	return "production_date"
}
