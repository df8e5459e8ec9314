package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientNormalizesConfig(t *testing.T) {
	client, err := NewClient(Config{APIKey: " key ", BaseURL: "https://api.anthropic.com/"}, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.cfg.BaseURL != "https://api.anthropic.com" {
		t.Fatalf("base url not normalized: %s", client.cfg.BaseURL)
	}
	if client.Model() != defaultModel || client.MaxTokens() != defaultMaxTokens {
		t.Fatalf("defaults not applied: %s %d", client.Model(), client.MaxTokens())
	}
	if client.cfg.Version != defaultVersion {
		t.Fatalf("version default not applied: %s", client.cfg.Version)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}, nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestCreateMessageSendsHeadersAndDecodesBlocks(t *testing.T) {
	var captured MessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != messagesEndpoint {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") != defaultVersion {
			t.Errorf("unexpected version header: %s", r.Header.Get("anthropic-version"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"content": [
				{"type": "tool_use", "id": "toolu_1", "name": "update_draft", "input": {"cliente": "Ana"}},
				{"type": "text", "text": "Anotado!"}
			],
			"stop_reason": "tool_use"
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "key", BaseURL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	resp, err := client.CreateMessage(context.Background(), MessageRequest{
		System:     "sys",
		Messages:   []Message{TextMessage(RoleUser, "oi")},
		ToolChoice: &ToolChoice{Type: ToolChoiceNone},
	})
	if err != nil {
		t.Fatalf("CreateMessage error: %v", err)
	}
	if captured.Model != defaultModel || captured.MaxTokens != defaultMaxTokens {
		t.Fatalf("defaults not sent: %+v", captured)
	}
	if captured.ToolChoice == nil || captured.ToolChoice.Type != ToolChoiceNone {
		t.Fatalf("tool choice not sent: %+v", captured.ToolChoice)
	}
	block, ok := resp.FirstToolUse("update_draft")
	if !ok || block.ID != "toolu_1" || string(block.Input) != `{"cliente": "Ana"}` {
		t.Fatalf("unexpected tool block: %+v", block)
	}
	text, ok := resp.FirstText()
	if !ok || text != "Anotado!" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestCreateMessageReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{APIKey: "key", BaseURL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	_, err = client.CreateMessage(context.Background(), MessageRequest{
		Messages: []Message{TextMessage(RoleUser, "oi")},
	})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestCreateMessageRejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client, _ := NewClient(Config{APIKey: "key", BaseURL: srv.URL}, srv.Client())
	_, err := client.CreateMessage(context.Background(), MessageRequest{
		Messages: []Message{TextMessage(RoleUser, "oi")},
	})
	if !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestToolResultMessageShape(t *testing.T) {
	body, err := json.Marshal(ToolResultMessage("toolu_1", "ok"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"role":"user","content":[{"type":"tool_result","tool_use_id":"toolu_1","content":"ok"}]}`
	if string(body) != want {
		t.Fatalf("want %s got %s", want, body)
	}
}

func TestAssistantContentDropsBlankText(t *testing.T) {
	resp := &MessageResponse{Content: []ContentBlock{
		{Type: BlockText, Text: ""},
		{Type: BlockText, Text: "  \n"},
		{Type: BlockToolUse, ID: "toolu_1", Name: "update_draft", Input: json.RawMessage(`{}`)},
		{Type: BlockText, Text: "Anotado"},
	}}
	blocks := resp.AssistantContent()
	if len(blocks) != 2 || blocks[0].Type != BlockToolUse || blocks[1].Text != "Anotado" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
	if len(resp.Content) != 4 {
		t.Fatalf("response content must not be modified")
	}
	var empty *MessageResponse
	if empty.AssistantContent() != nil {
		t.Fatalf("nil response should yield no blocks")
	}
}
