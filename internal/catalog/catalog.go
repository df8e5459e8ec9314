package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// 商品分组
const (
	GroupPDM    = "PDM"
	GroupBolos  = "Bolos"
	GroupOutros = "Outros"
	GroupPascoa = "Páscoa"
)

// 配送方式的门店与类型
const (
	KindDelivery = "entrega"
	KindPickup   = "retirada"
)

const defaultCakePrefix = "Bolo"

var (
	ErrCatalogInvalid = errors.New("catalog invalid")
)

// Product 商品（Name 为外部记录中的精确字段名，可能带有多余空格）
type Product struct {
	Name     string `json:"name" mapstructure:"name"`
	Group    string `json:"group" mapstructure:"group"`
	ReadOnly bool   `json:"read_only,omitempty" mapstructure:"read_only"`
}

// Options 目录构建参数
type Options struct {
	Products       []Product
	Handlers       []string
	DeliveryModes  []string
	Statuses       []string
	PaymentMethods []string
	CakePrefix     string
}

// Catalog 静态商品目录与枚举集合
type Catalog struct {
	products       []Product
	handlers       []string
	deliveryModes  []string
	statuses       []string
	paymentMethods []string
	cakePrefix     string
	byTrimmed      map[string]string
}

// Group 分组后的商品列表
type Group struct {
	Name     string   `json:"name"`
	Products []string `json:"products"`
}

// New 创建目录，并校验字段名在去除空格后不重复
func New(opts Options) (*Catalog, error) {
	if len(opts.Products) == 0 {
		return nil, fmt.Errorf("%w: products is empty", ErrCatalogInvalid)
	}
	if len(opts.Handlers) == 0 {
		return nil, fmt.Errorf("%w: handlers is empty", ErrCatalogInvalid)
	}
	if len(opts.DeliveryModes) == 0 {
		return nil, fmt.Errorf("%w: delivery_modes is empty", ErrCatalogInvalid)
	}
	if len(opts.Statuses) == 0 {
		return nil, fmt.Errorf("%w: statuses is empty", ErrCatalogInvalid)
	}
	cakePrefix := strings.TrimSpace(opts.CakePrefix)
	if cakePrefix == "" {
		cakePrefix = defaultCakePrefix
	}

	c := &Catalog{
		products:       append([]Product(nil), opts.Products...),
		handlers:       append([]string(nil), opts.Handlers...),
		deliveryModes:  append([]string(nil), opts.DeliveryModes...),
		statuses:       append([]string(nil), opts.Statuses...),
		paymentMethods: append([]string(nil), opts.PaymentMethods...),
		cakePrefix:     cakePrefix,
		byTrimmed:      make(map[string]string, len(opts.Products)),
	}
	for _, product := range c.products {
		trimmed := strings.TrimSpace(product.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: product name is empty", ErrCatalogInvalid)
		}
		if _, exists := c.byTrimmed[trimmed]; exists {
			return nil, fmt.Errorf("%w: duplicate product %q", ErrCatalogInvalid, trimmed)
		}
		c.byTrimmed[trimmed] = product.Name
	}
	return c, nil
}

// MustDefault 返回内置目录
func MustDefault() *Catalog {
	c, err := New(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return c
}

// Products 返回全部商品（含只读公式字段）
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// WritableProducts 返回可写入的商品字段
func (c *Catalog) WritableProducts() []Product {
	result := make([]Product, 0, len(c.products))
	for _, product := range c.products {
		if product.ReadOnly {
			continue
		}
		result = append(result, product)
	}
	return result
}

// DisplayNames 返回去除空格后的可写商品名
func (c *Catalog) DisplayNames() []string {
	writable := c.WritableProducts()
	names := make([]string, 0, len(writable))
	for _, product := range writable {
		names = append(names, Display(product.Name))
	}
	return names
}

// Groups 按目录顺序分组（仅可写商品，名称已去除空格）
func (c *Catalog) Groups() []Group {
	var groups []Group
	index := map[string]int{}
	for _, product := range c.WritableProducts() {
		name := product.Group
		if name == "" {
			name = GroupOutros
		}
		pos, ok := index[name]
		if !ok {
			pos = len(groups)
			index[name] = pos
			groups = append(groups, Group{Name: name})
		}
		groups[pos].Products = append(groups[pos].Products, Display(product.Name))
	}
	return groups
}

// Resolve 将精确名或去空格名映射为外部精确字段名
func (c *Catalog) Resolve(name string) (string, bool) {
	exact, ok := c.byTrimmed[strings.TrimSpace(name)]
	return exact, ok
}

// IsWritable 精确字段名存在且不是只读公式字段
func (c *Catalog) IsWritable(exact string) bool {
	for _, product := range c.products {
		if product.Name == exact {
			return !product.ReadOnly
		}
	}
	return false
}

// IsCake 判断商品是否属于蛋糕类别
func (c *Catalog) IsCake(name string) bool {
	return strings.HasPrefix(Display(name), c.cakePrefix)
}

// Handlers 返回接单员列表
func (c *Catalog) Handlers() []string {
	return append([]string(nil), c.handlers...)
}

// DeliveryModes 返回配送方式列表
func (c *Catalog) DeliveryModes() []string {
	return append([]string(nil), c.deliveryModes...)
}

// Statuses 返回状态推进序列
func (c *Catalog) Statuses() []string {
	return append([]string(nil), c.statuses...)
}

// PaymentMethods 返回兜底的支付方式列表
func (c *Catalog) PaymentMethods() []string {
	return append([]string(nil), c.paymentMethods...)
}

// InitialStatus 新订单的初始状态
func (c *Catalog) InitialStatus() string {
	return c.statuses[0]
}

func (c *Catalog) IsHandler(value string) bool {
	return contains(c.handlers, value)
}

func (c *Catalog) IsDeliveryMode(value string) bool {
	return contains(c.deliveryModes, value)
}

func (c *Catalog) IsStatus(value string) bool {
	return contains(c.statuses, value)
}

// Display 去除外部字段名中的多余空格
func Display(name string) string {
	return strings.TrimSpace(name)
}

// StoreOf 返回配送方式对应的门店编号（"26" / "248"）
func StoreOf(mode string) string {
	fields := strings.Fields(mode)
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}

// KindOf 返回配送方式类型（entrega / retirada）
func KindOf(mode string) string {
	trimmed := strings.TrimSpace(mode)
	switch {
	case strings.HasPrefix(trimmed, "Entrega"):
		return KindDelivery
	case strings.HasPrefix(trimmed, "Retirada"):
		return KindPickup
	default:
		return ""
	}
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
