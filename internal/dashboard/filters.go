package dashboard

import (
	"sort"
	"strings"

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/models"
)

// 分类筛选取值
const (
	CategoryPDM    = "pdm"
	CategoryCake   = "bolo"
	CategoryResale = "revenda"
)

// Filters 客户端筛选条件，空值（或 "todas" / "todos"）表示不过滤
type Filters struct {
	Store    string // 门店编号 "26" / "248"
	Kind     string // entrega / retirada
	Category string // pdm / bolo / revenda
}

// Normalize 去除空格并把"全部"统一为空值
func (f Filters) Normalize() Filters {
	return Filters{
		Store:    normalizeFilterValue(f.Store),
		Kind:     normalizeFilterValue(f.Kind),
		Category: normalizeFilterValue(f.Category),
	}
}

// Match 订单是否满足全部筛选条件
func (f Filters) Match(order models.Order) bool {
	f = f.Normalize()
	if f.Store != "" && catalog.StoreOf(order.DeliveryMode) != f.Store {
		return false
	}
	if f.Kind != "" && catalog.KindOf(order.DeliveryMode) != f.Kind {
		return false
	}
	return MatchCategory(order, f.Category)
}

// MatchCategory 按图标与转售标记判定分类
// 转售的蛋糕订单同时属于 bolo 与 revenda
func MatchCategory(order models.Order, category string) bool {
	switch normalizeFilterValue(category) {
	case "":
		return true
	case CategoryPDM:
		return !order.IsResale && order.Icon != constants.IconCake
	case CategoryCake:
		return order.Icon == constants.IconCake
	case CategoryResale:
		return order.IsResale
	default:
		return false
	}
}

// Filter 返回满足条件的订单，保持原有顺序
func Filter(orders []models.Order, filters Filters) []models.Order {
	filters = filters.Normalize()
	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if filters.Match(order) {
			out = append(out, order)
		}
	}
	return out
}

// DayGroup 同一天的订单
type DayGroup struct {
	Date   string
	Orders []models.Order
}

// GroupByDate 按所选日期字段分组，日期升序，无日期的订单不参与分组
func GroupByDate(orders []models.Order, field string) []DayGroup {
	field = constants.ResolveDateField(field)
	index := make(map[string]int)
	var groups []DayGroup
	for _, order := range orders {
		date := order.ProductionDate
		if field == constants.DateFieldDelivery {
			date = order.DeliveryDate
		}
		if date == "" {
			continue
		}
		pos, ok := index[date]
		if !ok {
			pos = len(groups)
			index[date] = pos
			groups = append(groups, DayGroup{Date: date})
		}
		groups[pos].Orders = append(groups[pos].Orders, order)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})
	return groups
}

// ProductTotal 商品汇总
type ProductTotal struct {
	Name string
	Qty  int
}

// SummarizeProducts 汇总商品数量
// names 非空时只统计这些商品并按给定顺序输出，否则按名称排序输出全部商品
func SummarizeProducts(orders []models.Order, names []string) []ProductTotal {
	totals := make(map[string]int)
	for _, order := range orders {
		for _, product := range order.Products {
			if product.Qty <= 0 {
				continue
			}
			totals[product.Name] += product.Qty
		}
	}

	order := names
	if len(order) == 0 {
		order = make([]string, 0, len(totals))
		for name := range totals {
			order = append(order, name)
		}
		sort.Strings(order)
	}
	out := make([]ProductTotal, 0, len(order))
	for _, name := range order {
		if qty := totals[name]; qty > 0 {
			out = append(out, ProductTotal{Name: name, Qty: qty})
		}
	}
	return out
}

// ContainsAny 订单是否含有任一给定商品
func ContainsAny(order models.Order, names []string) bool {
	for _, product := range order.Products {
		for _, name := range names {
			if product.Name == name && product.Qty > 0 {
				return true
			}
		}
	}
	return false
}

func normalizeFilterValue(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "todas" || value == "todos" {
		return ""
	}
	return value
}
