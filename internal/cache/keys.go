package cache

import (
	"fmt"
	"strings"
)

const (
	formOptionsKey   = "form_options"
	addressKeyPrefix = "address:cep"
	// RateLimitChatPrefix 对话录入限流 key 前缀
	RateLimitChatPrefix = "rl:chat"
)

// FormOptionsKey 表单选项缓存 key
func FormOptionsKey() string {
	return formOptionsKey
}

// AddressKey 邮编查询结果缓存 key
func AddressKey(cep string) string {
	return fmt.Sprintf("%s:%s", addressKeyPrefix, strings.TrimSpace(cep))
}

// RateLimitKey 带全局前缀的限流 key
func RateLimitKey(prefix string) string {
	return buildKey(prefix)
}
