package client

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

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/draft"
	"github.com/santofavo/encomendas/internal/models"
)

var (
	ErrConfigInvalid   = errors.New("api client config invalid")
	ErrRequestFailed   = errors.New("api request failed")
	ErrResponseInvalid = errors.New("api response invalid")
)

const defaultTimeout = 45 * time.Second

// Config 看板 API 客户端配置
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client 看板 API 的类型化客户端
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// APIError 接口返回的错误体
type APIError struct {
	Status    int    `json:"-"`
	Message   string `json:"error"`
	RequestID string `json:"request_id"`
}

func (e *APIError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("status=%d error=%s", e.Status, e.Message)
	}
	return fmt.Sprintf("status=%d error=%s request_id=%s", e.Status, e.Message, e.RequestID)
}

// StatusOf 取出错误中的 HTTP 状态码，非接口错误返回 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ChatTurn 对话中的一轮
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 对话录入请求
type ChatRequest struct {
	Messages       []ChatTurn  `json:"messages"`
	Draft          draft.Draft `json:"draft"`
	PaymentMethods []string    `json:"metodoOptions,omitempty"`
}

// ChatResponse 对话录入结果，DraftUpdates 为原始更新集
type ChatResponse struct {
	Message      string      `json:"message"`
	DraftUpdates draft.Draft `json:"draftUpdates"`
	Ready        bool        `json:"ready"`
}

// UpcomingOrders 今明两天的订单
type UpcomingOrders struct {
	Today    string         `json:"today"`
	Tomorrow string         `json:"tomorrow"`
	Orders   []models.Order `json:"orders"`
}

// FormOptions 表单选项
type FormOptions struct {
	PaymentMethods []string        `json:"metodosPagamento"`
	Handlers       []string        `json:"atendentes"`
	DeliveryModes  []string        `json:"entregas"`
	Statuses       []string        `json:"statuses"`
	Products       []catalog.Group `json:"produtos"`
}

// Address 邮编补全结果
type Address struct {
	CEP     string `json:"cep"`
	Address string `json:"endereco"`
}

// New 创建客户端
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.Token = strings.TrimSpace(cfg.Token)
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base_url is invalid", ErrConfigInvalid)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// Chat 发送一轮对话
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.call(ctx, http.MethodPost, "/api/chat-order", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateOrder 提交草稿，返回记录 ID
func (c *Client) CreateOrder(ctx context.Context, d draft.Draft) (string, error) {
	var resp struct {
		OK     bool   `json:"ok"`
		PageID string `json:"pageId"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/create-order", nil, map[string]interface{}{"draft": d}, &resp); err != nil {
		return "", err
	}
	if !resp.OK || resp.PageID == "" {
		return "", fmt.Errorf("%w: page id is empty", ErrResponseInvalid)
	}
	return resp.PageID, nil
}

// Orders 今明两天按生产日期的订单
func (c *Client) Orders(ctx context.Context) (*UpcomingOrders, error) {
	var resp UpcomingOrders
	if err := c.call(ctx, http.MethodGet, "/api/orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OrdersRange 闭区间订单，field 为 "producao" 或 "entrega"
func (c *Client) OrdersRange(ctx context.Context, start, end, field string) ([]models.Order, error) {
	query := url.Values{}
	query.Set("startDate", start)
	query.Set("endDate", end)
	if field != "" {
		query.Set("field", field)
	}
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/orders-range", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// FormOptions 表单选项
func (c *Client) FormOptions(ctx context.Context) (*FormOptions, error) {
	var resp FormOptions
	if err := c.call(ctx, http.MethodGet, "/api/form-options", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LookupAddress 邮编补全
func (c *Client) LookupAddress(ctx context.Context, cep string) (*Address, error) {
	query := url.Values{}
	query.Set("cep", cep)
	var resp Address
	if err := c.call(ctx, http.MethodGet, "/api/address", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStatus 修改状态
func (c *Client) UpdateStatus(ctx context.Context, pageID, status string) error {
	return c.call(ctx, http.MethodPost, "/api/update-status", nil, map[string]interface{}{
		"pageId": pageID,
		"status": status,
	}, nil)
}

// UpdateDeliveryMode 修改配送方式
func (c *Client) UpdateDeliveryMode(ctx context.Context, pageID, mode string) error {
	return c.call(ctx, http.MethodPost, "/api/update-entrega", nil, map[string]interface{}{
		"pageId":  pageID,
		"entrega": mode,
	}, nil)
}

// UpdateDate 修改日期，date 为空表示清空
func (c *Client) UpdateDate(ctx context.Context, pageID, field, date string) error {
	return c.call(ctx, http.MethodPost, "/api/update-date", nil, map[string]interface{}{
		"pageId": pageID,
		"field":  field,
		"date":   date,
	}, nil)
}

// UpdateResale 修改转售标记
func (c *Client) UpdateResale(ctx context.Context, pageID string, resale bool) error {
	return c.call(ctx, http.MethodPost, "/api/update-revenda", nil, map[string]interface{}{
		"pageId":  pageID,
		"revenda": resale,
	}, nil)
}

func (c *Client) call(ctx context.Context, method, endpoint string, query url.Values, in interface{}, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: marshal request failed", ErrRequestFailed)
		}
		body = bytes.NewReader(payload)
	}
	target := c.cfg.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{}
		_ = json.Unmarshal(respBody, apiErr)
		apiErr.Status = resp.StatusCode
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%w: %w", ErrRequestFailed, apiErr)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return nil
}
