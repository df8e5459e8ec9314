package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/santofavo/encomendas/internal/anthropic"
	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/config"
	"github.com/santofavo/encomendas/internal/models"
	"github.com/santofavo/encomendas/internal/provider"

	"github.com/gin-gonic/gin"
)

type emptyRepo struct{}

func (emptyRepo) ListByDateRange(ctx context.Context, field, start, end string) ([]models.Order, error) {
	return nil, nil
}

func (emptyRepo) Create(ctx context.Context, record *models.OrderRecord) (string, error) {
	return "page-1", nil
}

func (emptyRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return nil
}

func (emptyRepo) UpdateDeliveryMode(ctx context.Context, id, mode string) error {
	return nil
}

func (emptyRepo) UpdateDate(ctx context.Context, id, field, date string) error {
	return nil
}

func (emptyRepo) UpdateResale(ctx context.Context, id string, resale bool) error {
	return nil
}

func (emptyRepo) PaymentMethods(ctx context.Context) ([]string, error) {
	return nil, nil
}

type offlineModel struct{}

func (offlineModel) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return nil, errors.New("offline")
}

func newTestEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	c := provider.NewContainerWith(cfg, catalog.MustDefault(), time.UTC, emptyRepo{}, offlineModel{})
	return SetupRouter(cfg, c)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := newTestEngine(t, &config.Config{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/chat-order"},
		{http.MethodGet, "/api/update-status"},
		{http.MethodPost, "/api/orders"},
		{http.MethodDelete, "/api/form-options"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: status want 405 got %d", tc.method, tc.path, w.Code)
		}
		var resp struct {
			Error     string `json:"error"`
			RequestID string `json:"request_id"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response failed: %v", err)
		}
		if resp.Error != "Method not allowed" || resp.RequestID == "" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	}
}

func TestRouterServesAPI(t *testing.T) {
	r := newTestEngine(t, &config.Config{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("request id header should be set")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
}

func TestRouterRequiresTokenWhenAuthEnabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{Enabled: true, Secret: "0123456789abcdef-secret", Issuer: "encomendas"}
	r := newTestEngine(t, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health should stay public, got %d", w.Code)
	}
}
