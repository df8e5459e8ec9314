package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/santofavo/encomendas/internal/client"
	"github.com/santofavo/encomendas/internal/draft"
	"github.com/santofavo/encomendas/internal/logger"
)

// 会话固定话术
const (
	InitialGreeting = "Olá! Cole o pedido ou me diga o que precisa."
	RetryMessage    = "Desculpe, tive um problema técnico. Pode repetir?"
)

var (
	ErrEmptyMessage  = errors.New("message is empty")
	ErrSessionBusy   = errors.New("session is busy")
	ErrDraftNotReady = errors.New("draft is not ready")
)

// IntakeAPI 对话录入依赖的接口，由 client.Client 实现
type IntakeAPI interface {
	Chat(ctx context.Context, req client.ChatRequest) (*client.ChatResponse, error)
	CreateOrder(ctx context.Context, d draft.Draft) (string, error)
	FormOptions(ctx context.Context) (*client.FormOptions, error)
}

// ChatReply 一轮对话的结果
type ChatReply struct {
	Message string
	Ready   bool
	Missing []string
}

// ChatSession 终端侧的对话录入会话
type ChatSession struct {
	api IntakeAPI

	mu             sync.Mutex
	turns          []client.ChatTurn
	current        draft.Draft
	paymentMethods []string
	busy           bool
}

// NewChatSession 创建会话，首条为助手问候
func NewChatSession(api IntakeAPI) *ChatSession {
	s := &ChatSession{api: api}
	s.Reset()
	return s
}

// LoadPaymentMethods 预取支付方式供模型参考，失败时忽略
func (s *ChatSession) LoadPaymentMethods(ctx context.Context) {
	options, err := s.api.FormOptions(ctx)
	if err != nil {
		logger.Warnw("chat_session_form_options_failed", "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethods = append([]string(nil), options.PaymentMethods...)
}

// Send 发送一条用户消息并用 draft.Apply 合并返回的草稿更新
// 交付日期变化时，仍是推算值的生产日期会跟着重算，人工改过的生产日期保持不变
// 失败时撤回本轮用户消息，同一条消息可以直接重发
func (s *ChatSession) Send(ctx context.Context, text string) (*ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	s.busy = true
	s.turns = append(s.turns, client.ChatTurn{Role: "user", Content: text})
	req := client.ChatRequest{
		Messages:       append([]client.ChatTurn(nil), s.turns...),
		Draft:          s.current.Clone(),
		PaymentMethods: append([]string(nil), s.paymentMethods...),
	}
	s.mu.Unlock()

	resp, err := s.api.Chat(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		s.turns = s.turns[:len(s.turns)-1]
		return nil, err
	}

	s.current = draft.Apply(s.current, resp.DraftUpdates)
	if resp.Message != "" {
		s.turns = append(s.turns, client.ChatTurn{Role: "assistant", Content: resp.Message})
	}
	return &ChatReply{
		Message: resp.Message,
		Ready:   draft.IsReady(s.current),
		Missing: draft.Missing(s.current),
	}, nil
}

// Submit 提交已就绪的草稿，成功后重置会话
func (s *ChatSession) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrSessionBusy
	}
	if !draft.IsReady(s.current) {
		s.mu.Unlock()
		return "", ErrDraftNotReady
	}
	s.busy = true
	current := s.current.Clone()
	s.mu.Unlock()

	pageID, err := s.api.CreateOrder(ctx, current)

	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	s.Reset()
	return pageID, nil
}

// Reset 清空对话与草稿，保留已加载的支付方式
func (s *ChatSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = []client.ChatTurn{{Role: "assistant", Content: InitialGreeting}}
	s.current = draft.Draft{}
}

// Draft 当前草稿
func (s *ChatSession) Draft() draft.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Turns 当前对话
func (s *ChatSession) Turns() []client.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.ChatTurn(nil), s.turns...)
}

// Ready 草稿是否可提交
func (s *ChatSession) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return draft.IsReady(s.current)
}
