package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/santofavo/encomendas/internal/catalog"
	"github.com/santofavo/encomendas/internal/constants"
	"github.com/santofavo/encomendas/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) *GormOrderRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate order models failed: %v", err)
	}
	return NewGormOrderRepository(db, catalog.MustDefault(), []string{"PIX", "Dinheiro"})
}

func sampleRecord(customer, production, delivery string) *models.OrderRecord {
	fee := models.NewMoneyFromDecimal(decimal.RequireFromString("8.50"))
	return &models.OrderRecord{
		Customer:       customer,
		Handler:        "Maria",
		DeliveryDate:   delivery,
		ProductionDate: production,
		OrderDate:      "2025-03-01",
		DeliveryMode:   "Retirada 248",
		Status:         "Em aberto",
		PaymentMethod:  "PIX",
		DeliveryFee:    &fee,
		Icon:           constants.IconGeneric,
		Products:       map[string]int{"Caixa 6": 1, "🟥 PDM CAR": 4, "Caixa 9": 0},
	}
}

// exerciseOrderRepository 记录库实现共用的行为检查
func exerciseOrderRepository(t *testing.T, repo OrderRepository) {
	t.Helper()
	ctx := context.Background()

	firstID, err := repo.Create(ctx, sampleRecord("Ana", "2025-03-08", "2025-03-10"))
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	if _, err := repo.Create(ctx, sampleRecord("Bruno", "2025-03-07", "2025-03-08")); err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	if _, err := repo.Create(ctx, sampleRecord("Carla", "2025-03-20", "2025-03-21")); err != nil {
		t.Fatalf("create third failed: %v", err)
	}

	orders, err := repo.ListByDateRange(ctx, constants.DateFieldProduction, "2025-03-07", "2025-03-08")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 || orders[0].Customer != "Bruno" || orders[1].Customer != "Ana" {
		t.Fatalf("expected Bruno then Ana, got %+v", orders)
	}
	ana := orders[1]
	if ana.ID != firstID {
		t.Fatalf("unexpected id %s, want %s", ana.ID, firstID)
	}
	if len(ana.Products) != 2 || ana.Products[0].Name != "🟥 PDM CAR" || ana.Products[1].Name != "Caixa 6" {
		t.Fatalf("products should follow catalog order and skip zero: %+v", ana.Products)
	}
	if ana.DeliveryFee == nil || ana.DeliveryFee.String() != "8.50" {
		t.Fatalf("unexpected fee: %v", ana.DeliveryFee)
	}

	byDelivery, err := repo.ListByDateRange(ctx, constants.DateFieldDelivery, "2025-03-10", "2025-03-21")
	if err != nil {
		t.Fatalf("list by delivery failed: %v", err)
	}
	if len(byDelivery) != 2 || byDelivery[0].Customer != "Ana" || byDelivery[1].Customer != "Carla" {
		t.Fatalf("unexpected delivery listing: %+v", byDelivery)
	}

	if err := repo.UpdateStatus(ctx, firstID, "Pronto"); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if err := repo.UpdateDeliveryMode(ctx, firstID, "Entrega 26"); err != nil {
		t.Fatalf("update delivery mode failed: %v", err)
	}
	if err := repo.UpdateResale(ctx, firstID, true); err != nil {
		t.Fatalf("update resale failed: %v", err)
	}
	if err := repo.UpdateDate(ctx, firstID, constants.DateFieldDelivery, "2025-03-11"); err != nil {
		t.Fatalf("update date failed: %v", err)
	}
	if err := repo.UpdateDate(ctx, firstID, constants.DateFieldProduction, ""); err != nil {
		t.Fatalf("clear date failed: %v", err)
	}

	updated, err := repo.ListByDateRange(ctx, constants.DateFieldDelivery, "2025-03-11", "2025-03-11")
	if err != nil {
		t.Fatalf("list updated failed: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("expected one updated order, got %d", len(updated))
	}
	got := updated[0]
	if got.Status != "Pronto" || got.DeliveryMode != "Entrega 26" || !got.IsResale || got.ProductionDate != "" {
		t.Fatalf("mutations not persisted: %+v", got)
	}

	if err := repo.UpdateStatus(ctx, "missing-id", "Pronto"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGormOrderRepository(t *testing.T) {
	exerciseOrderRepository(t, setupOrderRepositoryTest(t))
}

func TestGormOrderRepositoryEmptyRange(t *testing.T) {
	repo := setupOrderRepositoryTest(t)
	orders, err := repo.ListByDateRange(context.Background(), constants.DateFieldProduction, "2030-01-01", "2030-01-31")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty slice, got %v", orders)
	}
}

func TestGormOrderRepositoryPaymentMethods(t *testing.T) {
	repo := setupOrderRepositoryTest(t)
	methods, err := repo.PaymentMethods(context.Background())
	if err != nil {
		t.Fatalf("payment methods failed: %v", err)
	}
	if len(methods) != 2 || methods[0] != "PIX" {
		t.Fatalf("unexpected methods: %v", methods)
	}
	methods[0] = "changed"
	again, _ := repo.PaymentMethods(context.Background())
	if again[0] != "PIX" {
		t.Fatalf("payment methods should be copied")
	}
}
