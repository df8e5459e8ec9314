package shared

import (
	"github.com/santofavo/encomendas/internal/constants"

	"github.com/gin-gonic/gin"
)

// StaffName 鉴权中间件写入的员工名，未启用鉴权时为空
func StaffName(c *gin.Context) string {
	value, exists := c.Get(constants.ContextKeyStaff)
	if !exists {
		return ""
	}
	name, _ := value.(string)
	return name
}

// NoStore 禁止缓存列表类响应
func NoStore(c *gin.Context) {
	c.Header(constants.HeaderCacheControl, "no-store")
}
