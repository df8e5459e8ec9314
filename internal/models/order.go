package models

import (
	"time"
)

// OrderRecord 写入记录库的扁平订单（Products 的键为外部精确字段名）
type OrderRecord struct {
	Customer       string
	Handler        string
	DeliveryDate   string
	ProductionDate string
	OrderDate      string
	DeliveryMode   string
	Status         string
	PaymentMethod  string
	DeliveryFee    *Money
	Note           string
	Phone          string
	Address        string
	IsResale       bool
	Icon           string
	Products       map[string]int
}

// OrderProduct 展示用的商品数量
type OrderProduct struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// Order 面板展示的订单
type Order struct {
	ID             string         `json:"id"`
	Customer       string         `json:"cliente"`
	Icon           string         `json:"icon"`
	ProductionDate string         `json:"dataProducao"`
	DeliveryDate   string         `json:"dataEntrega"`
	OrderDate      string         `json:"dataPedido"`
	DeliveryMode   string         `json:"entrega"`
	Status         string         `json:"status"`
	IsResale       bool           `json:"revenda"`
	Handler        string         `json:"atendente"`
	Note           string         `json:"observacao"`
	Phone          string         `json:"telefone"`
	Address        string         `json:"endereco"`
	PaymentMethod  string         `json:"metodoPagamento,omitempty"`
	DeliveryFee    *Money         `json:"taxaEntrega,omitempty"`
	Products       []OrderProduct `json:"products"`
}

// StoredOrder 本地记录库中的订单（sqlite / postgres）
type StoredOrder struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`            // 主键
	Customer       string    `gorm:"type:varchar(255);not null" json:"customer"`       // 客户
	Handler        string    `gorm:"type:varchar(64);not null" json:"handler"`         // 接单员
	DeliveryDate   string    `gorm:"type:varchar(10);index" json:"delivery_date"`      // 交付日期
	ProductionDate string    `gorm:"type:varchar(10);index" json:"production_date"`    // 生产日期
	OrderDate      string    `gorm:"type:varchar(10)" json:"order_date"`               // 下单日期
	DeliveryMode   string    `gorm:"type:varchar(32)" json:"delivery_mode"`            // 配送方式
	Status         string    `gorm:"type:varchar(32);index" json:"status"`             // 状态
	PaymentMethod  string    `gorm:"type:varchar(64)" json:"payment_method"`           // 支付方式
	DeliveryFee    *Money    `gorm:"type:decimal(20,2)" json:"delivery_fee,omitempty"` // 配送费
	Note           string    `gorm:"type:text" json:"note"`                            // 备注
	Phone          string    `gorm:"type:varchar(64)" json:"phone"`                    // 电话
	Address        string    `gorm:"type:text" json:"address"`                         // 地址
	IsResale       bool      `gorm:"not null;default:false" json:"is_resale"`          // 是否转售
	Icon           string    `gorm:"type:varchar(16)" json:"icon"`                     // 图标
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                                       // 更新时间

	Products []StoredOrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products,omitempty"` // 商品数量
}

// TableName 指定表名
func (StoredOrder) TableName() string {
	return "orders"
}

// StoredOrderProduct 本地订单的商品数量，Name 为外部精确字段名
type StoredOrderProduct struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	OrderID  string `gorm:"type:varchar(36);index;not null" json:"order_id"`
	Name     string `gorm:"type:varchar(128);not null" json:"name"`
	Quantity int    `gorm:"not null;default:0" json:"quantity"`
}

// TableName 指定表名
func (StoredOrderProduct) TableName() string {
	return "order_products"
}
