package constants

// 外部记录库中的订单字段名
const (
	PropCustomer       = "Cliente"
	PropHandler        = "Atendente"
	PropDeliveryDate   = "Data ENTREGA"
	PropProductionDate = "Data PRODUÇÃO"
	PropOrderDate      = "Data do Pedido"
	PropDeliveryMode   = "Entrega"
	PropStatus         = "Status"
	PropPaymentMethod  = "Método de Pagamento"
	PropDeliveryFee    = "Taxa Entrega"
	PropNote           = "Observação!"
	PropPhone          = "Telefone"
	PropAddress        = "Endereço"
	PropResale         = "É Revenda?"
)

// 订单图标
const (
	IconCake    = "🎂"
	IconGeneric = "🟢"
	IconResale  = "🔁"
)

// 列表日期字段选择
const (
	DateFieldProduction = "producao"
	DateFieldDelivery   = "entrega"
)

// 面板分类
const (
	CategoryPDM    = "pdm"
	CategoryBolo   = "bolo"
	CategoryResale = "revenda"
)

// 门店
const (
	Store26  = "26"
	Store248 = "248"
)

// HTTP 头
const (
	HeaderRequestID    = "X-Request-ID"
	HeaderCacheControl = "Cache-Control"
)

// 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyStaff     = "staff"
)

// ResolveDateField 非 "entrega" 一律按生产日期处理
func ResolveDateField(raw string) string {
	if raw == DateFieldDelivery {
		return DateFieldDelivery
	}
	return DateFieldProduction
}

// DateProperty 日期字段对应的外部字段名
func DateProperty(field string) string {
	if field == DateFieldDelivery {
		return PropDeliveryDate
	}
	return PropProductionDate
}
