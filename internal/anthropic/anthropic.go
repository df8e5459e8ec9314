package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("anthropic config invalid")
	ErrRequestFailed   = errors.New("anthropic request failed")
	ErrResponseInvalid = errors.New("anthropic response invalid")
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultVersion   = "2023-06-01"
	defaultModel     = "claude-haiku-4-5-20251001"
	defaultMaxTokens = 1024
	defaultTimeout   = 30 * time.Second
	messagesEndpoint = "/v1/messages"
)

// 角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// 内容块类型
const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// 工具选择
const (
	ToolChoiceAuto = "auto"
	ToolChoiceAny  = "any"
	ToolChoiceTool = "tool"
	ToolChoiceNone = "none"
)

// Config Anthropic 接入配置
type Config struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Version   string        `mapstructure:"version"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"-"`
}

// ContentBlock 消息内容块
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   string          `json:"content,omitempty"`
}

// Message 对话消息
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// Tool 声明的工具
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"input_schema"`
}

// ToolChoice 工具调用策略
type ToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// MessageRequest 创建消息请求
type MessageRequest struct {
	Model      string      `json:"model"`
	MaxTokens  int         `json:"max_tokens"`
	System     string      `json:"system,omitempty"`
	Messages   []Message   `json:"messages"`
	Tools      []Tool      `json:"tools,omitempty"`
	ToolChoice *ToolChoice `json:"tool_choice,omitempty"`
}

// Usage token 用量
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessageResponse 创建消息返回
type MessageResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Model      string         `json:"model"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// FirstToolUse 返回第一个指定名称的工具调用块
func (r *MessageResponse) FirstToolUse(name string) (ContentBlock, bool) {
	if r == nil {
		return ContentBlock{}, false
	}
	for _, block := range r.Content {
		if block.Type == BlockToolUse && (name == "" || block.Name == name) {
			return block, true
		}
	}
	return ContentBlock{}, false
}

// FirstText 返回第一个非空文本块
func (r *MessageResponse) FirstText() (string, bool) {
	if r == nil {
		return "", false
	}
	for _, block := range r.Content {
		if block.Type == BlockText && strings.TrimSpace(block.Text) != "" {
			return block.Text, true
		}
	}
	return "", false
}

// AssistantContent 回传给模型的助手内容，去掉空白文本块
func (r *MessageResponse) AssistantContent() []ContentBlock {
	if r == nil {
		return nil
	}
	blocks := make([]ContentBlock, 0, len(r.Content))
	for _, block := range r.Content {
		if block.Type == BlockText && strings.TrimSpace(block.Text) == "" {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// TextMessage 构造纯文本消息
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{{Type: BlockText, Text: text}}}
}

// ToolResultMessage 构造工具结果消息
func ToolResultMessage(toolUseID, content string) Message {
	return Message{
		Role:    RoleUser,
		Content: []ContentBlock{{Type: BlockToolResult, ToolUseID: toolUseID, Content: content}},
	}
}

// Client Anthropic Messages API 客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// ValidateConfig 校验配置
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("%w: api_key is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.BaseURL)); err != nil {
		return fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	if cfg.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive", ErrConfigInvalid)
	}
	return nil
}

// NewClient 创建客户端，httpClient 为空时使用默认客户端
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	cfg.normalize()
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// Model 默认模型
func (c *Client) Model() string {
	return c.cfg.Model
}

// MaxTokens 默认最大输出 token
func (c *Client) MaxTokens() int {
	return c.cfg.MaxTokens
}

// CreateMessage 调用 /v1/messages
func (c *Client) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(req.Model) == "" {
		req.Model = c.cfg.Model
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = c.cfg.MaxTokens
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages is empty", ErrRequestFailed)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
	}
	respBody, status, err := c.doJSONRequest(ctx, http.MethodPost, messagesEndpoint, body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: status=%d %s", ErrRequestFailed, status, describeAPIError(respBody))
	}

	var resp MessageResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	if resp.Type != "" && resp.Type != "message" {
		return nil, fmt.Errorf("%w: unexpected type %s", ErrResponseInvalid, resp.Type)
	}
	return &resp, nil
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.Version = strings.TrimSpace(c.Version)
	if c.Version == "" {
		c.Version = defaultVersion
	}
	c.Model = strings.TrimSpace(c.Model)
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

func (c *Client) doJSONRequest(ctx context.Context, method, endpoint string, body []byte) ([]byte, int, error) {
	ctx, cancel := c.withDefaultTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", c.cfg.Version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: http request failed: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	return respBody, resp.StatusCode, nil
}

func (c *Client) withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

func describeAPIError(body []byte) string {
	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Type == "" {
		return ""
	}
	return fmt.Sprintf("type=%s message=%s", payload.Error.Type, payload.Error.Message)
}
