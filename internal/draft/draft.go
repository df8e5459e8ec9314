package draft

import (
	"sort"
	"strings"

	"github.com/santofavo/encomendas/internal/dates"
)

// 就绪判定涉及的字段（线上名称）
const (
	FieldHandler      = "atendente"
	FieldCustomer     = "cliente"
	FieldDeliveryDate = "dataEntrega"
	FieldDeliveryMode = "entrega"
)

// Draft 录入中的订单草稿
// 指针字段为 nil 表示该键不存在，非 nil 的空串表示显式清空
type Draft struct {
	Handler        *string        `json:"atendente,omitempty"`
	CustomerName   *string        `json:"cliente,omitempty"`
	Phone          *string        `json:"telefone,omitempty"`
	Address        *string        `json:"endereco,omitempty"`
	DeliveryDate   *string        `json:"dataEntrega,omitempty"`
	ProductionDate *string        `json:"dataProducao,omitempty"`
	DeliveryMode   *string        `json:"entrega,omitempty"`
	PaymentMethod  *string        `json:"metodoPagamento,omitempty"`
	DeliveryFee    *string        `json:"taxaEntrega,omitempty"`
	IsResale       *bool          `json:"revenda,omitempty"`
	Note           *string        `json:"observacao,omitempty"`
	Items          map[string]int `json:"products,omitempty"`
}

// String 构造字符串指针
func String(value string) *string {
	return &value
}

// Bool 构造布尔指针
func Bool(value bool) *bool {
	return &value
}

// Value 取指针字段的值，nil 返回空串
func Value(field *string) string {
	if field == nil {
		return ""
	}
	return *field
}

// IsEmpty 草稿不含任何键
func (d Draft) IsEmpty() bool {
	return d.Handler == nil && d.CustomerName == nil && d.Phone == nil && d.Address == nil &&
		d.DeliveryDate == nil && d.ProductionDate == nil && d.DeliveryMode == nil &&
		d.PaymentMethod == nil && d.DeliveryFee == nil && d.IsResale == nil && d.Note == nil &&
		len(d.Items) == 0
}

// Clone 深拷贝
func (d Draft) Clone() Draft {
	out := Draft{
		Handler:        cloneString(d.Handler),
		CustomerName:   cloneString(d.CustomerName),
		Phone:          cloneString(d.Phone),
		Address:        cloneString(d.Address),
		DeliveryDate:   cloneString(d.DeliveryDate),
		ProductionDate: cloneString(d.ProductionDate),
		DeliveryMode:   cloneString(d.DeliveryMode),
		PaymentMethod:  cloneString(d.PaymentMethod),
		DeliveryFee:    cloneString(d.DeliveryFee),
		Note:           cloneString(d.Note),
	}
	if d.IsResale != nil {
		out.IsResale = Bool(*d.IsResale)
	}
	if d.Items != nil {
		out.Items = make(map[string]int, len(d.Items))
		for name, qty := range d.Items {
			out.Items[name] = qty
		}
	}
	return out
}

// Merge 合并更新：出现的键覆盖，products 按键取并集（更新优先），不修改入参
func Merge(current, updates Draft) Draft {
	out := current.Clone()
	overwrite(&out.Handler, updates.Handler)
	overwrite(&out.CustomerName, updates.CustomerName)
	overwrite(&out.Phone, updates.Phone)
	overwrite(&out.Address, updates.Address)
	overwrite(&out.DeliveryDate, updates.DeliveryDate)
	overwrite(&out.ProductionDate, updates.ProductionDate)
	overwrite(&out.DeliveryMode, updates.DeliveryMode)
	overwrite(&out.PaymentMethod, updates.PaymentMethod)
	overwrite(&out.DeliveryFee, updates.DeliveryFee)
	overwrite(&out.Note, updates.Note)
	if updates.IsResale != nil {
		out.IsResale = Bool(*updates.IsResale)
	}
	if len(updates.Items) > 0 {
		if out.Items == nil {
			out.Items = make(map[string]int, len(updates.Items))
		}
		for name, qty := range updates.Items {
			out.Items[name] = qty
		}
	}
	return out
}

// Apply 合并更新并按规则推算生产日期
// 仅当更新设置了交付日期且未同时给出生产日期时推算
// 当前生产日期为空或等于旧交付日期的推算值时才重算，人工修改过的生产日期永远保留
func Apply(current, updates Draft) Draft {
	merged := Merge(current, updates)
	delivery := strings.TrimSpace(Value(updates.DeliveryDate))
	if delivery == "" || updates.ProductionDate != nil {
		return merged
	}
	if !isDerivedOrEmpty(current) {
		return merged
	}
	derived, err := dates.DeriveProductionDate(delivery)
	if err != nil {
		return merged
	}
	merged.ProductionDate = String(derived)
	return merged
}

// IsReady 草稿是否可提交：接单员、客户、交付日期、配送方式均非空，支付方式不参与判定
func IsReady(d Draft) bool {
	return len(Missing(d)) == 0
}

// Missing 返回缺失的就绪字段（线上名称）
func Missing(d Draft) []string {
	var missing []string
	if blank(d.Handler) {
		missing = append(missing, FieldHandler)
	}
	if blank(d.CustomerName) {
		missing = append(missing, FieldCustomer)
	}
	if blank(d.DeliveryDate) {
		missing = append(missing, FieldDeliveryDate)
	}
	if blank(d.DeliveryMode) {
		missing = append(missing, FieldDeliveryMode)
	}
	return missing
}

// ItemNames 返回按名称排序的商品键
func (d Draft) ItemNames() []string {
	names := make([]string, 0, len(d.Items))
	for name := range d.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isDerivedOrEmpty(current Draft) bool {
	production := strings.TrimSpace(Value(current.ProductionDate))
	if production == "" {
		return true
	}
	previous := strings.TrimSpace(Value(current.DeliveryDate))
	if previous == "" {
		return false
	}
	derived, err := dates.DeriveProductionDate(previous)
	return err == nil && derived == production
}

func overwrite(dst **string, src *string) {
	if src == nil {
		return
	}
	*dst = String(*src)
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	return String(*value)
}

func blank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
