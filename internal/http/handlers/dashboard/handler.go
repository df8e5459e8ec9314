package dashboard

import "github.com/santofavo/encomendas/internal/provider"

// Handler 订单看板接口处理器入口
// 说明：录入、列表、单字段修改与表单选项都挂在同一个处理器上。
type Handler struct {
	*provider.Container
}

// New 创建看板处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
