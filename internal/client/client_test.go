package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/santofavo/encomendas/internal/draft"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c, err := New(Config{BaseURL: server.URL + "/", Token: "tok"}, server.Client())
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	return c
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "not a url"}, nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestChatSendsHistoryAndDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat-order" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		var body map[string]json.RawMessage
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode request failed: %v", err)
		}
		if string(body["draft"]) != `{"cliente":"Ana"}` {
			t.Errorf("unexpected draft payload: %s", body["draft"])
		}
		if _, ok := body["metodoOptions"]; ok {
			t.Errorf("empty payment methods should be omitted")
		}
		w.Write([]byte(`{"message":"Qual a data?","draftUpdates":{"products":{"Caixa 3":2}},"ready":false}`))
	})

	resp, err := c.Chat(context.Background(), ChatRequest{
		Messages: []ChatTurn{{Role: "user", Content: "Ana, 2 caixas de 3"}},
		Draft:    draft.Draft{CustomerName: draft.String("Ana")},
	})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if resp.Message != "Qual a data?" || resp.DraftUpdates.Items["Caixa 3"] != 2 || resp.Ready {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrdersRangeQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("startDate") != "2025-03-10" || q.Get("endDate") != "2025-03-16" || q.Get("field") != "entrega" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"orders":[{"id":"p1","cliente":"Ana","products":[{"name":"Caixa 6","qty":1}]}]}`))
	})
	orders, err := c.OrdersRange(context.Background(), "2025-03-10", "2025-03-16", "entrega")
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Customer != "Ana" || orders[0].Products[0].Qty != 1 {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestErrorBodyIsSurfaced(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Order not found","request_id":"req-1"}`))
	})
	err := c.UpdateStatus(context.Background(), "p404", "Pronto")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Order not found" || apiErr.RequestID != "req-1" {
		t.Fatalf("api error should be unwrapped: %v", err)
	}
	if StatusOf(err) != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", StatusOf(err))
	}
}

func TestCreateOrderRequiresPageID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	})
	if _, err := c.CreateOrder(context.Background(), draft.Draft{}); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}
