package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/santofavo/encomendas/internal/anthropic"
	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/dates"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/models"
	"github.com/santofavo/encomendas/internal/notion"

	"github.com/spf13/viper"
)

// 记录库驱动
const (
	StoreDriverNotion   = "notion"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Config 应用配置结构
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Store       StoreConfig       `mapstructure:"store"`
	Notion      NotionConfig      `mapstructure:"notion"`
	Anthropic   AnthropicConfig   `mapstructure:"anthropic"`
	Redis       RedisConfig       `mapstructure:"redis"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Security    SecurityConfig    `mapstructure:"security"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Address     AddressConfig     `mapstructure:"address"`
	Intake      IntakeConfig      `mapstructure:"intake"`
	FormOptions FormOptionsConfig `mapstructure:"form_options"`
	Dashboard   DashboardConfig   `mapstructure:"dashboard"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// Addr 监听地址
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// IsDebug 是否调试模式
func (c ServerConfig) IsDebug() bool {
	return strings.EqualFold(strings.TrimSpace(c.Mode), "debug")
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Level,
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
		AlsoStdout: c.Stdout,
	}
}

// StorePoolConfig 本地记录库连接池配置
type StorePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// StoreConfig 记录库配置
type StoreConfig struct {
	Driver string          `mapstructure:"driver"` // notion / sqlite / postgres
	DSN    string          `mapstructure:"dsn"`    // 本地记录库连接串
	Pool   StorePoolConfig `mapstructure:"pool"`
}

// NormalizedDriver 规范化驱动名
func (c StoreConfig) NormalizedDriver() string {
	driver := strings.ToLower(strings.TrimSpace(c.Driver))
	switch driver {
	case "", StoreDriverNotion:
		return StoreDriverNotion
	case "postgresql":
		return StoreDriverPostgres
	default:
		return driver
	}
}

// ToPoolConfig 转换为 models 连接池配置
func (c StoreConfig) ToPoolConfig() models.DBPoolConfig {
	return models.DBPoolConfig{
		MaxOpenConns:           c.Pool.MaxOpenConns,
		MaxIdleConns:           c.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: c.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: c.Pool.ConnMaxIdleTimeSeconds,
	}
}

// NotionConfig Notion 集成配置
type NotionConfig struct {
	Token      string `mapstructure:"token"`
	DatabaseID string `mapstructure:"database_id"`
	BaseURL    string `mapstructure:"base_url"`
	Version    string `mapstructure:"version"`
	PageSize   int    `mapstructure:"page_size"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// ToClientConfig 转换为 notion 客户端配置
func (c NotionConfig) ToClientConfig() notion.Config {
	return notion.Config{
		Token:      c.Token,
		DatabaseID: c.DatabaseID,
		BaseURL:    c.BaseURL,
		Version:    c.Version,
		PageSize:   c.PageSize,
		Timeout:    time.Duration(c.TimeoutMS) * time.Millisecond,
	}
}

// AnthropicConfig 文本模型配置
type AnthropicConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	Version           string `mapstructure:"version"`
	Model             string `mapstructure:"model"`
	MaxTokens         int    `mapstructure:"max_tokens"`
	FollowUpMaxTokens int    `mapstructure:"follow_up_max_tokens"`
	TimeoutMS         int    `mapstructure:"timeout_ms"`
}

// ToClientConfig 转换为 anthropic 客户端配置
func (c AnthropicConfig) ToClientConfig() anthropic.Config {
	return anthropic.Config{
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Version:   c.Version,
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Timeout:   time.Duration(c.TimeoutMS) * time.Millisecond,
	}
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	ChatRateLimit RateLimitConfig `mapstructure:"chat_rate_limit"`
}

// RateLimitConfig 固定窗口限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// AuthConfig 员工令牌配置
type AuthConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// CatalogConfig 目录与枚举集合，空值使用内置默认
type CatalogConfig struct {
	Timezone       string            `mapstructure:"timezone"`
	Handlers       []string          `mapstructure:"handlers"`
	DeliveryModes  []string          `mapstructure:"delivery_modes"`
	Statuses       []string          `mapstructure:"statuses"`
	PaymentMethods []string          `mapstructure:"payment_methods"`
	CakePrefix     string            `mapstructure:"cake_prefix"`
	Products       []catalog.Product `mapstructure:"products"`
}

// Build 构建目录
func (c CatalogConfig) Build() (*catalog.Catalog, error) {
	opts := catalog.DefaultOptions()
	if len(c.Products) > 0 {
		opts.Products = c.Products
	}
	if len(c.Handlers) > 0 {
		opts.Handlers = c.Handlers
	}
	if len(c.DeliveryModes) > 0 {
		opts.DeliveryModes = c.DeliveryModes
	}
	if len(c.Statuses) > 0 {
		opts.Statuses = c.Statuses
	}
	if len(c.PaymentMethods) > 0 {
		opts.PaymentMethods = c.PaymentMethods
	}
	if strings.TrimSpace(c.CakePrefix) != "" {
		opts.CakePrefix = c.CakePrefix
	}
	return catalog.New(opts)
}

// Location 民用时区
func (c CatalogConfig) Location() (*time.Location, error) {
	return dates.LoadLocation(c.Timezone)
}

// AddressConfig 邮编查询配置
type AddressConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	BaseURL         string `mapstructure:"base_url"`
	TimeoutMS       int    `mapstructure:"timeout_ms"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

// IntakeConfig 对话录入配置
type IntakeConfig struct {
	BusinessName string `mapstructure:"business_name"`
}

// FormOptionsConfig 表单选项配置
type FormOptionsConfig struct {
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// DashboardConfig 终端客户端配置（cmd/chat）
type DashboardConfig struct {
	APIBaseURL          string `mapstructure:"api_base_url"`
	Token               string `mapstructure:"token"`
	PollIntervalSeconds int    `mapstructure:"poll_interval_seconds"`
	TimeoutMS           int    `mapstructure:"timeout_ms"`
}

// Validate 校验启动所需配置
func (c *Config) Validate() error {
	switch c.Store.NormalizedDriver() {
	case StoreDriverNotion:
		if strings.TrimSpace(c.Notion.Token) == "" || strings.TrimSpace(c.Notion.DatabaseID) == "" {
			return fmt.Errorf("notion.token and notion.database_id are required when store.driver=notion")
		}
	case StoreDriverSQLite, StoreDriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required when store.driver=%s", c.Store.NormalizedDriver())
		}
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Store.Driver)
	}
	if c.Auth.Enabled && len(strings.TrimSpace(c.Auth.Secret)) < 16 {
		return fmt.Errorf("auth.secret must have at least 16 characters when auth is enabled")
	}
	return nil
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	setDefaults(viper.GetViper())

	// 环境变量支持
	viper.AutomaticEnv()                                   // 自动读取环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // 将 . 替换为 _ (例如 notion.token -> NOTION_TOKEN)
	_ = viper.BindEnv("notion.database_id", "NOTION_DATABASE_ID", "NOTION_DB_ID")

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "encomendas.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.stdout", false)
	v.SetDefault("store.driver", StoreDriverNotion)
	v.SetDefault("store.dsn", "./db/encomendas.db")
	v.SetDefault("store.pool.max_open_conns", 1)
	v.SetDefault("store.pool.max_idle_conns", 1)
	v.SetDefault("store.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("store.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.database_id", "")
	v.SetDefault("notion.base_url", "https://api.notion.com")
	v.SetDefault("notion.version", "2022-06-28")
	v.SetDefault("notion.page_size", 100)
	v.SetDefault("notion.timeout_ms", 15000)
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.base_url", "https://api.anthropic.com")
	v.SetDefault("anthropic.version", "2023-06-01")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.follow_up_max_tokens", 512)
	v.SetDefault("anthropic.timeout_ms", 30000)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "encomendas")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.chat_rate_limit.window_seconds", 60)
	v.SetDefault("security.chat_rate_limit.max_requests", 30)
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "encomendas")
	v.SetDefault("auth.expire_hours", 720)
	v.SetDefault("catalog.timezone", dates.DefaultTimezone)
	v.SetDefault("catalog.handlers", []string{})
	v.SetDefault("catalog.delivery_modes", []string{})
	v.SetDefault("catalog.statuses", []string{})
	v.SetDefault("catalog.payment_methods", []string{})
	v.SetDefault("catalog.cake_prefix", "Bolo")
	v.SetDefault("address.enabled", true)
	v.SetDefault("address.base_url", "https://viacep.com.br")
	v.SetDefault("address.timeout_ms", 5000)
	v.SetDefault("address.cache_ttl_seconds", 86400)
	v.SetDefault("intake.business_name", "Santo Favo")
	v.SetDefault("form_options.cache_ttl_seconds", 300)
	v.SetDefault("dashboard.api_base_url", "http://127.0.0.1:8080")
	v.SetDefault("dashboard.token", "")
	v.SetDefault("dashboard.poll_interval_seconds", 120)
	v.SetDefault("dashboard.timeout_ms", 45000)
}
