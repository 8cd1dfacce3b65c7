package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/daralkutub/storefront/internal/domain"
	"github.com/daralkutub/storefront/internal/storage/memory"
)

func newOrder(id string, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:     id,
		Number: "KTB-260828-0001",
		Customer: domain.Customer{
			FullName:   "Amine Trabelsi",
			Email:      "amine@example.com",
			Phone:      "+216 20 000 000",
			Address:    "12 Rue de la Kasbah",
			City:       "Tunis",
			PostalCode: "1006",
		},
		Items: []domain.OrderItem{
			{ID: "item-1", BookID: "book-1", Title: "Riyad as-Salihin", PriceMinor: 2000, Quantity: 2, CreatedAt: createdAt},
		},
		Shipping:         domain.ShippingStandard,
		Payment:          domain.PaymentCashOnDelivery,
		SubtotalMinor:    4000,
		ShippingFeeMinor: 700,
		TotalMinor:       4700,
		Currency:         "TND",
		Status:           domain.OrderStatusPending,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", time.Now().UTC())

	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Number != order.Number {
		t.Fatalf("expected number %s, got %s", order.Number, stored.Number)
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	repo := memory.NewOrderRepository()
	base := time.Now().UTC()

	for i, id := range []string{"order-1", "order-2", "order-3"} {
		order := newOrder(id, base.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(order); err != nil {
			t.Fatalf("create %s failed: %v", id, err)
		}
	}

	orders, err := repo.List(0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != "order-3" {
		t.Fatalf("expected newest order first, got %s", orders[0].ID)
	}

	capped, err := repo.List(2)
	if err != nil {
		t.Fatalf("list with limit failed: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("expected 2 orders with limit, got %d", len(capped))
	}
}

func TestOrderRepository_SaveVersionConflict(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", time.Now().UTC())
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	order.Status = domain.OrderStatusProcessing
	if err := repo.Save(order); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Saving with the stale version must conflict.
	if err := repo.Save(order); !domain.IsVersionConflict(err) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}

func TestOrderRepository_Delete(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := newOrder("order-1", time.Now().UTC())
	if err := repo.Create(order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
