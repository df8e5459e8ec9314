package catalog

// DefaultHandlers 默认接单员
var DefaultHandlers = []string{"Raissa", "Gabriel", "Maria", "Thamiris", "Karla", "Elen", "Carol"}

// DefaultDeliveryModes 默认配送方式（类型 × 门店）
var DefaultDeliveryModes = []string{"Entrega 26", "Retirada 26", "Entrega 248", "Retirada 248"}

// DefaultStatuses 订单状态推进序列，第一个为初始状态
var DefaultStatuses = []string{"Em aberto", "Confirmado", "Pronto", "Entregue"}

// DefaultPaymentMethods 记录库未返回选项时使用的支付方式
var DefaultPaymentMethods = []string{"PIX", "Dinheiro", "Cartão de Crédito", "Cartão de Débito"}

// DefaultProducts 外部数据库中的商品字段，部分名称带有首尾空格，写入时必须保留
var DefaultProducts = []Product{
	{Name: "PDM Avulso", Group: GroupPDM, ReadOnly: true},
	{Name: "🟫 PDM DLN", Group: GroupPDM},
	{Name: "🟥 PDM CAR", Group: GroupPDM},
	{Name: "🟨 PDM MAR", Group: GroupPDM},
	{Name: "⬛️ PDM CAJU", Group: GroupPDM},
	{Name: "🟦 PDM SR", Group: GroupPDM},
	{Name: "🟧 PDM LAR", Group: GroupPDM},
	{Name: "⬜️ PDM MÊS", Group: GroupPDM},
	{Name: "PDM DL Sem", Group: GroupPDM},
	{Name: "Bolo Choco Fatia", Group: GroupBolos},
	{Name: "Bolo Choco G", Group: GroupBolos},
	{Name: "Bolo Choco P", Group: GroupBolos},
	{Name: "Bolo NOZES Fatia", Group: GroupBolos},
	{Name: "Bolo NOZES G", Group: GroupBolos},
	{Name: "Bolo NOZES P", Group: GroupBolos},
	{Name: "Bolo PDM Fatia", Group: GroupBolos},
	{Name: "Bolo PDM G", Group: GroupBolos},
	{Name: "Bolo PDM P", Group: GroupBolos},
	{Name: "Bolo de Especiarias G com calda", Group: GroupBolos},
	{Name: "Bolo de Mel Mini", Group: GroupBolos},
	{Name: " ⚪️ Ovo Casca Car", Group: GroupPascoa},
	{Name: " 🔴 Ovo PDM CAR", Group: GroupPascoa},
	{Name: "⚫️ Ovo Fudge", Group: GroupPascoa},
	{Name: "🟠 Ovo Casca Caju Lar", Group: GroupPascoa},
	{Name: "🟡 Ovo PDM DLN", Group: GroupPascoa},
	{Name: "🟤 Ovo Amendoim ", Group: GroupPascoa},
	{Name: " 🔷️ Barra Caju", Group: GroupPascoa},
	{Name: "🔺️ Barra Car", Group: GroupPascoa},
	{Name: "Caixa 3", Group: GroupOutros},
	{Name: "Caixa 6", Group: GroupOutros},
	{Name: "Caixa 9", Group: GroupOutros},
	{Name: "Caixa 15", Group: GroupOutros},
	{Name: "Bala Caramelo", Group: GroupOutros},
	{Name: "Crocante", Group: GroupOutros},
	{Name: "Barrinha Amendoim", Group: GroupOutros},
	{Name: "Barrinha Fudge", Group: GroupOutros},
	{Name: "Barrinha Pistache e Cereja", Group: GroupOutros},
	{Name: "Barrinha Queijo, doce de leite e ameixa", Group: GroupOutros},
}

// DefaultOptions 内置目录配置
func DefaultOptions() Options {
	return Options{
		Products:       append([]Product(nil), DefaultProducts...),
		Handlers:       append([]string(nil), DefaultHandlers...),
		DeliveryModes:  append([]string(nil), DefaultDeliveryModes...),
		Statuses:       append([]string(nil), DefaultStatuses...),
		PaymentMethods: append([]string(nil), DefaultPaymentMethods...),
		CakePrefix:     defaultCakePrefix,
	}
}
