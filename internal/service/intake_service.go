package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/santofavo/encomendas/internal/anthropic"
	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/dates"
	"github.com/santofavo/encomendas/internal/draft"
	"github.com/santofavo/encomendas/internal/logger"
)

const (
	defaultBusinessName      = "Santo Favo"
	defaultFollowUpMaxTokens = 512
	toolResultAck            = "ok"
)

// MessageCreator 文本理解后端
type MessageCreator interface {
	CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error)
}

// IntakeOptions 对话录入参数
type IntakeOptions struct {
	Model             string
	MaxTokens         int
	FollowUpMaxTokens int
	BusinessName      string
	Location          *time.Location
}

// ChatTurn 对话中的一轮
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatInput 一次录入请求：完整历史、当前草稿与可选支付方式
type ChatInput struct {
	Messages       []ChatTurn
	Draft          draft.Draft
	PaymentMethods []string
}

// ChatResult 回复、原始更新集与就绪标记
type ChatResult struct {
	Message      string      `json:"message"`
	DraftUpdates draft.Draft `json:"draftUpdates"`
	Ready        bool        `json:"ready"`
}

// IntakeService 对话录入服务，请求之间无状态
type IntakeService struct {
	model    MessageCreator
	catalog  *catalog.Catalog
	opts     IntakeOptions
	tool     anthropic.Tool
	now      func() time.Time
	fallback func(ctx context.Context) []string
}

// NewIntakeService 创建对话录入服务
func NewIntakeService(model MessageCreator, cat *catalog.Catalog, opts IntakeOptions) *IntakeService {
	if strings.TrimSpace(opts.BusinessName) == "" {
		opts.BusinessName = defaultBusinessName
	}
	if opts.FollowUpMaxTokens <= 0 {
		opts.FollowUpMaxTokens = defaultFollowUpMaxTokens
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &IntakeService{
		model:   model,
		catalog: cat,
		opts:    opts,
		tool:    draftTool(cat),
		now:     time.Now,
	}
}

// WithPaymentMethodSource 请求未携带支付方式时的来源
func (s *IntakeService) WithPaymentMethodSource(source func(ctx context.Context) []string) *IntakeService {
	s.fallback = source
	return s
}

// Process 处理一轮对话：抽取调用，必要时追加一次只要回复的调用
func (s *IntakeService) Process(ctx context.Context, in ChatInput) (*ChatResult, error) {
	if s.model == nil {
		return nil, fmt.Errorf("%w: model client not configured", ErrIntakeUnavailable)
	}
	history := conversationMessages(in.Messages)
	if len(history) == 0 {
		return nil, ErrConversationRequired
	}

	methods := in.PaymentMethods
	if len(methods) == 0 && s.fallback != nil {
		methods = s.fallback(ctx)
	}
	system := buildSystemPrompt(s.opts.BusinessName, s.catalog, methods, dates.Today(s.opts.Location, s.now()))

	first, err := s.model.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.opts.Model,
		MaxTokens: s.opts.MaxTokens,
		System:    system,
		Messages:  history,
		Tools:     []anthropic.Tool{s.tool},
	})
	if err != nil {
		logger.Errorw("intake_model_call_failed", "call", "extract", "turns", len(history), "error", err)
		return nil, fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
	}

	var updates draft.Draft
	reply, hasReply := first.FirstText()
	toolUse, invoked := first.FirstToolUse(DraftToolName)
	if invoked {
		updates, err = draft.DecodeLenient(toolUse.Input)
		if err != nil {
			logger.Errorw("intake_tool_payload_invalid", "tool_use_id", toolUse.ID, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
		}
		if !hasReply {
			reply, err = s.followUp(ctx, system, history, first, toolUse.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	merged := draft.Apply(in.Draft, updates)
	ready := draft.IsReady(merged)
	logger.Infow("intake_turn_processed",
		"turns", len(history),
		"tool_invoked", invoked,
		"follow_up", invoked && !hasReply,
		"ready", ready,
	)
	return &ChatResult{Message: reply, DraftUpdates: updates, Ready: ready}, nil
}

// followUp 追加工具结果并禁用工具，仅获取回复文本
func (s *IntakeService) followUp(ctx context.Context, system string, history []anthropic.Message, first *anthropic.MessageResponse, toolUseID string) (string, error) {
	messages := make([]anthropic.Message, 0, len(history)+2)
	messages = append(messages, history...)
	messages = append(messages,
		anthropic.Message{Role: anthropic.RoleAssistant, Content: first.AssistantContent()},
		anthropic.ToolResultMessage(toolUseID, toolResultAck),
	)
	second, err := s.model.CreateMessage(ctx, anthropic.MessageRequest{
		Model:      s.opts.Model,
		MaxTokens:  s.opts.FollowUpMaxTokens,
		System:     system,
		Messages:   messages,
		Tools:      []anthropic.Tool{s.tool},
		ToolChoice: &anthropic.ToolChoice{Type: anthropic.ToolChoiceNone},
	})
	if err != nil {
		logger.Errorw("intake_model_call_failed", "call", "follow_up", "turns", len(history), "error", err)
		return "", fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
	}
	text, _ := second.FirstText()
	return text, nil
}

// conversationMessages 丢弃开头的助手轮次（界面问候语）与空白轮次
func conversationMessages(turns []ChatTurn) []anthropic.Message {
	messages := make([]anthropic.Message, 0, len(turns))
	for _, turn := range turns {
		role := strings.ToLower(strings.TrimSpace(turn.Role))
		if role != anthropic.RoleUser && role != anthropic.RoleAssistant {
			continue
		}
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		if len(messages) == 0 && role == anthropic.RoleAssistant {
			continue
		}
		messages = append(messages, anthropic.TextMessage(role, turn.Content))
	}
	return messages
}
