package notion

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
	ErrConfigInvalid   = errors.New("notion config invalid")
	ErrRequestFailed   = errors.New("notion request failed")
	ErrResponseInvalid = errors.New("notion response invalid")
	ErrNotFound        = errors.New("notion object not found")
)

const (
	defaultBaseURL  = "https://api.notion.com"
	defaultVersion  = "2022-06-28"
	defaultTimeout  = 15 * time.Second
	defaultPageSize = 100
	maxPageSize     = 100
)

// Config Notion 集成配置
type Config struct {
	Token      string
	DatabaseID string
	BaseURL    string
	Version    string
	PageSize   int
	Timeout    time.Duration
}

// Client Notion REST 客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// APIError Notion 返回的错误体
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status=%d code=%s message=%s", e.Status, e.Code, e.Message)
}

// ValidateConfig 校验配置
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.DatabaseID) == "" {
		return fmt.Errorf("%w: database_id is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.BaseURL)); err != nil {
		return fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// NewClient 创建客户端
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

// DatabaseID 绑定的数据库
func (c *Client) DatabaseID() string {
	return c.cfg.DatabaseID
}

// PageSize 分页大小
func (c *Client) PageSize() int {
	return c.cfg.PageSize
}

// QueryDatabase 查询数据库的一页
func (c *Client) QueryDatabase(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if req.PageSize <= 0 || req.PageSize > maxPageSize {
		req.PageSize = c.cfg.PageSize
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query failed", ErrRequestFailed)
	}
	var resp QueryResponse
	endpoint := "/v1/databases/" + url.PathEscape(c.cfg.DatabaseID) + "/query"
	if err := c.call(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RetrieveDatabase 读取数据库结构
func (c *Client) RetrieveDatabase(ctx context.Context) (*Database, error) {
	var db Database
	endpoint := "/v1/databases/" + url.PathEscape(c.cfg.DatabaseID)
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// CreatePage 在数据库中创建一条记录
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	if req.Parent.DatabaseID == "" {
		req.Parent.DatabaseID = c.cfg.DatabaseID
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal page failed", ErrRequestFailed)
	}
	var page Page
	if err := c.call(ctx, http.MethodPost, "/v1/pages", body, &page); err != nil {
		return nil, err
	}
	if strings.TrimSpace(page.ID) == "" {
		return nil, fmt.Errorf("%w: page id is empty", ErrResponseInvalid)
	}
	return &page, nil
}

// UpdatePage 更新记录属性
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties map[string]interface{}) error {
	pageID = strings.TrimSpace(pageID)
	if pageID == "" {
		return fmt.Errorf("%w: page id is required", ErrRequestFailed)
	}
	body, err := json.Marshal(map[string]interface{}{"properties": properties})
	if err != nil {
		return fmt.Errorf("%w: marshal properties failed", ErrRequestFailed)
	}
	return c.call(ctx, http.MethodPatch, "/v1/pages/"+url.PathEscape(pageID), body, nil)
}

func (c *Config) normalize() {
	c.Token = strings.TrimSpace(c.Token)
	c.DatabaseID = strings.TrimSpace(c.DatabaseID)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.Version = strings.TrimSpace(c.Version)
	if c.Version == "" {
		c.Version = defaultVersion
	}
	if c.PageSize <= 0 || c.PageSize > maxPageSize {
		c.PageSize = defaultPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

func (c *Client) call(ctx context.Context, method, endpoint string, body []byte, out interface{}) error {
	respBody, status, err := c.doJSONRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status}
		_ = json.Unmarshal(respBody, apiErr)
		apiErr.Status = status
		if status == http.StatusNotFound || apiErr.Code == "object_not_found" {
			return fmt.Errorf("%w: %v", ErrNotFound, apiErr)
		}
		return fmt.Errorf("%w: %v", ErrRequestFailed, apiErr)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return nil
}

func (c *Client) doJSONRequest(ctx context.Context, method, endpoint string, body []byte) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := c.withDefaultTimeout(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", c.cfg.Version)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

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
