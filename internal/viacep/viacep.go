package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrInvalidCEP      = errors.New("invalid cep")
	ErrNotFound        = errors.New("cep not found")
	ErrRequestFailed   = errors.New("viacep request failed")
	ErrResponseInvalid = errors.New("viacep response invalid")
)

const (
	defaultBaseURL = "https://viacep.com.br"
	defaultTimeout = 5 * time.Second
)

// Address viaCEP 返回的地址
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         any    `json:"erro,omitempty"`
}

// Format 拼接为单行地址：街道、街区、城市/州
func (a Address) Format() string {
	var head []string
	if s := strings.TrimSpace(a.Street); s != "" {
		head = append(head, s)
	}
	if s := strings.TrimSpace(a.Neighborhood); s != "" {
		head = append(head, s)
	}
	line := strings.Join(head, ", ")
	city := strings.TrimSpace(a.City)
	if state := strings.TrimSpace(a.State); city != "" && state != "" {
		city += "/" + state
	}
	if city == "" {
		return line
	}
	if line == "" {
		return city
	}
	return line + " — " + city
}

// Client viaCEP 客户端
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient 创建客户端
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, timeout: timeout, httpClient: httpClient}
}

// NormalizeCEP 提取 8 位数字
func NormalizeCEP(raw string) (string, error) {
	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if len(digits) != 8 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCEP, raw)
	}
	return digits, nil
}

// Lookup 查询邮编
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits, err := NormalizeCEP(cep)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ws/"+digits+"/json/", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http request failed: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response failed", ErrRequestFailed)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCEP, digits)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d", ErrRequestFailed, resp.StatusCode)
	}
	var addr Address
	if err := json.Unmarshal(body, &addr); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	if isErro(addr.Erro) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, digits)
	}
	return &addr, nil
}

// erro 字段可能是 true 或 "true"
func isErro(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
