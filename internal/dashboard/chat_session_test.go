package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/santofavo/encomendas/internal/client"
	"github.com/santofavo/encomendas/internal/draft"
)

type intakeAPIStub struct {
	replies   []*client.ChatResponse
	chatErr   error
	createErr error
	requests  []client.ChatRequest
	created   []draft.Draft
	methods   []string
}

func (s *intakeAPIStub) Chat(ctx context.Context, req client.ChatRequest) (*client.ChatResponse, error) {
	s.requests = append(s.requests, req)
	if s.chatErr != nil {
		return nil, s.chatErr
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func (s *intakeAPIStub) CreateOrder(ctx context.Context, d draft.Draft) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, d)
	return "page-1", nil
}

func (s *intakeAPIStub) FormOptions(ctx context.Context) (*client.FormOptions, error) {
	if s.methods == nil {
		return nil, errors.New("offline")
	}
	return &client.FormOptions{PaymentMethods: s.methods}, nil
}

func TestChatSessionMergesUpdates(t *testing.T) {
	api := &intakeAPIStub{
		methods: []string{"PIX"},
		replies: []*client.ChatResponse{
			{
				Message:      "Para quando?",
				DraftUpdates: draft.Draft{CustomerName: draft.String("Ana"), Items: map[string]int{"🟥 PDM CAR": 6}},
			},
			{
				Message: "Pedido pronto!",
				DraftUpdates: draft.Draft{
					Handler:      draft.String("Raissa"),
					DeliveryDate: draft.String("2025-03-10"),
					DeliveryMode: draft.String("Retirada 26"),
					Items:        map[string]int{"🟫 PDM DLN": 2},
				},
				Ready: true,
			},
		},
	}
	session := NewChatSession(api)
	session.LoadPaymentMethods(context.Background())

	reply, err := session.Send(context.Background(), "  Ana, 6 PDM de caramelo  ")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if reply.Ready || len(reply.Missing) != 3 {
		t.Fatalf("draft should not be ready yet: %+v", reply)
	}
	first := api.requests[0]
	if len(first.Messages) != 2 || first.Messages[0].Content != InitialGreeting || first.Messages[1].Content != "Ana, 6 PDM de caramelo" {
		t.Fatalf("unexpected history sent: %+v", first.Messages)
	}
	if len(first.PaymentMethods) != 1 || first.PaymentMethods[0] != "PIX" {
		t.Fatalf("payment methods should be forwarded: %v", first.PaymentMethods)
	}

	reply, err = session.Send(context.Background(), "Raissa, retirada na 26 segunda dia 10")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !reply.Ready || !session.Ready() {
		t.Fatalf("draft should be ready: %+v", reply)
	}
	if draft.Value(api.requests[1].Draft.CustomerName) != "Ana" {
		t.Fatalf("current draft should be sent with each turn")
	}

	current := session.Draft()
	if draft.Value(current.ProductionDate) != "2025-03-08" {
		t.Fatalf("production date should be derived locally, got %q", draft.Value(current.ProductionDate))
	}
	if current.Items["🟥 PDM CAR"] != 6 || current.Items["🟫 PDM DLN"] != 2 {
		t.Fatalf("items should be merged: %v", current.Items)
	}
	if turns := session.Turns(); len(turns) != 5 || turns[4].Role != "assistant" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestChatSessionDropsTurnOnFailure(t *testing.T) {
	api := &intakeAPIStub{chatErr: errors.New("HTTP 502")}
	session := NewChatSession(api)

	if _, err := session.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := session.Send(context.Background(), "Ana, 2 caixas"); err == nil {
		t.Fatalf("expected send error")
	}
	if turns := session.Turns(); len(turns) != 1 || turns[0].Content != InitialGreeting {
		t.Fatalf("failed user turn should be dropped: %+v", turns)
	}

	api.chatErr = nil
	api.replies = []*client.ChatResponse{{Message: "Ok"}}
	if _, err := session.Send(context.Background(), "Ana, 2 caixas"); err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	last := api.requests[len(api.requests)-1]
	if len(last.Messages) != 2 {
		t.Fatalf("resent message should appear once: %+v", last.Messages)
	}
}

func TestChatSessionSubmit(t *testing.T) {
	api := &intakeAPIStub{}
	session := NewChatSession(api)
	if _, err := session.Submit(context.Background()); !errors.Is(err, ErrDraftNotReady) {
		t.Fatalf("expected ErrDraftNotReady, got %v", err)
	}

	api.replies = []*client.ChatResponse{{
		Message: "Pronto",
		DraftUpdates: draft.Draft{
			Handler:      draft.String("Raissa"),
			CustomerName: draft.String("Ana"),
			DeliveryDate: draft.String("2025-03-12"),
			DeliveryMode: draft.String("Entrega 248"),
		},
		Ready: true,
	}}
	if _, err := session.Send(context.Background(), "pedido completo"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	api.createErr = errors.New("HTTP 502")
	if _, err := session.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}
	if !session.Ready() {
		t.Fatalf("draft should survive a failed submit")
	}

	api.createErr = nil
	pageID, err := session.Submit(context.Background())
	if err != nil || pageID != "page-1" {
		t.Fatalf("submit failed: %v %q", err, pageID)
	}
	if draft.Value(api.created[0].ProductionDate) != "2025-03-11" {
		t.Fatalf("submitted draft should carry derived production date: %+v", api.created[0])
	}
	if !session.Draft().IsEmpty() || len(session.Turns()) != 1 {
		t.Fatalf("session should reset after submit")
	}
}

func TestChatSessionKeepsEditedProductionDate(t *testing.T) {
	api := &intakeAPIStub{replies: []*client.ChatResponse{
		{Message: "Anotado", DraftUpdates: draft.Draft{DeliveryDate: draft.String("2025-03-10")}},
		{Message: "Produção ajustada", DraftUpdates: draft.Draft{ProductionDate: draft.String("2025-03-05")}},
		{Message: "Entrega remarcada", DraftUpdates: draft.Draft{DeliveryDate: draft.String("2025-03-12")}},
	}}
	session := NewChatSession(api)

	for _, text := range []string{"entrega dia 10", "produzir dia 5", "muda a entrega para 12"} {
		if _, err := session.Send(context.Background(), text); err != nil {
			t.Fatalf("send %q failed: %v", text, err)
		}
	}
	current := session.Draft()
	if draft.Value(current.DeliveryDate) != "2025-03-12" {
		t.Fatalf("delivery date should follow the last update, got %q", draft.Value(current.DeliveryDate))
	}
	if draft.Value(current.ProductionDate) != "2025-03-05" {
		t.Fatalf("edited production date must be kept, got %q", draft.Value(current.ProductionDate))
	}
}
