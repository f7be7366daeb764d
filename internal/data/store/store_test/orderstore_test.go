package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
)

func TestOrderStore_CreateAndList(t *testing.T) {
	db := testDB(t)
	orders := store.GetOrderStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")
	seedProducts(t, db, sampleCatalog())

	ids, err := orders.CreateOrders(ctx, userId, []store.OrderLine{
		{ProductId: 1, Quantity: 2, TotalPrice: 240, PaymentMethod: "cod"},
		{ProductId: 2, Quantity: 1, TotalPrice: 95, PaymentMethod: "cod"},
	})
	if err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 order ids, got %d", len(ids))
	}

	list, err := orders.ListByUser(ctx, userId)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByUser got %d orders, want 2", len(list))
	}
	for _, o := range list {
		if o.Status != commerceModel.OrderPending {
			t.Errorf("New order status got %s, want pending", o.Status)
		}
		if o.ProductName == "" {
			t.Error("Expected joined product name on order")
		}
	}

	t.Run("GetByIdForUser scopes to the owner", func(t *testing.T) {
		stranger := seedUser(t, db, "stranger@example.com")
		if _, err := orders.GetByIdForUser(ctx, ids[0], stranger); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for foreign order, got %v", err)
		}
	})

	t.Run("GetByIds returns the invoice set", func(t *testing.T) {
		got, err := orders.GetByIds(ctx, userId, ids)
		if err != nil {
			t.Fatalf("GetByIds failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("GetByIds got %d orders, want 2", len(got))
		}
	})
}

func TestOrderStore_Cancel(t *testing.T) {
	db := testDB(t)
	orders := store.GetOrderStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")
	seedProducts(t, db, sampleCatalog())

	ids, err := orders.CreateOrders(ctx, userId, []store.OrderLine{{ProductId: 1, Quantity: 1, TotalPrice: 120}})
	if err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}
	orderId := ids[0]

	if err := orders.Cancel(ctx, orderId, userId); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	o, _ := orders.GetByIdForUser(ctx, orderId, userId)
	if o.Status != commerceModel.OrderCancelled {
		t.Errorf("Status got %s, want cancelled", o.Status)
	}

	t.Run("Cancel is pending-only", func(t *testing.T) {
		ids, _ := orders.CreateOrders(ctx, userId, []store.OrderLine{{ProductId: 2, Quantity: 1, TotalPrice: 95}})
		if err := orders.SetStatus(ctx, ids[0], commerceModel.OrderOutForDelivery); err != nil {
			t.Fatalf("SetStatus failed: %v", err)
		}
		if err := orders.Cancel(ctx, ids[0], userId); !errors.Is(err, store.ErrNotCancellable) {
			t.Errorf("Expected ErrNotCancellable, got %v", err)
		}
	})

	t.Run("Cancel unknown order", func(t *testing.T) {
		if err := orders.Cancel(ctx, 9999, userId); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestOrderStore_Totals(t *testing.T) {
	db := testDB(t)
	orders := store.GetOrderStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")
	seedProducts(t, db, sampleCatalog())

	ids, err := orders.CreateOrders(ctx, userId, []store.OrderLine{
		{ProductId: 1, Quantity: 1, TotalPrice: 120},
		{ProductId: 2, Quantity: 1, TotalPrice: 95},
		{ProductId: 3, Quantity: 1, TotalPrice: 45},
	})
	if err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}
	if err := orders.Cancel(ctx, ids[2], userId); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if err := orders.SetStatus(ctx, ids[0], commerceModel.OrderDelivered); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	totals, err := orders.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.Orders != 3 {
		t.Errorf("Orders got %d, want 3", totals.Orders)
	}
	if totals.Pending != 1 {
		t.Errorf("Pending got %d, want 1", totals.Pending)
	}
	// cancelled orders do not count toward revenue
	if totals.Revenue != 215 {
		t.Errorf("Revenue got %v, want 215", totals.Revenue)
	}
}

func TestOrderStore_RecentOrders(t *testing.T) {
	db := testDB(t)
	orders := store.GetOrderStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")
	seedProducts(t, db, sampleCatalog())

	if _, err := orders.CreateOrders(ctx, userId, []store.OrderLine{
		{ProductId: 1, Quantity: 1, TotalPrice: 120},
		{ProductId: 2, Quantity: 1, TotalPrice: 95},
	}); err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}

	recent, err := orders.RecentOrders(ctx, 10)
	if err != nil {
		t.Fatalf("RecentOrders failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentOrders got %d, want 2", len(recent))
	}
	if recent[0].UserEmail != "buyer@example.com" {
		t.Errorf("Expected joined user email, got %q", recent[0].UserEmail)
	}
}

func TestOrderStore_FrequentProducts(t *testing.T) {
	db := testDB(t)
	orders := store.GetOrderStore(db)
	ctx := context.Background()

	userId := seedUser(t, db, "buyer@example.com")
	seedProducts(t, db, sampleCatalog())

	// three milk orders make it frequent; single rice order does not
	for i := 0; i < 3; i++ {
		if _, err := orders.CreateOrders(ctx, userId, []store.OrderLine{{ProductId: 4, Quantity: 1, TotalPrice: 33}}); err != nil {
			t.Fatalf("CreateOrders failed: %v", err)
		}
	}
	if _, err := orders.CreateOrders(ctx, userId, []store.OrderLine{{ProductId: 1, Quantity: 1, TotalPrice: 120}}); err != nil {
		t.Fatalf("CreateOrders failed: %v", err)
	}

	frequent, err := orders.FrequentProducts(ctx, userId)
	if err != nil {
		t.Fatalf("FrequentProducts failed: %v", err)
	}
	if len(frequent) != 1 {
		t.Fatalf("FrequentProducts got %d entries, want 1", len(frequent))
	}
	if frequent[0].ProductId != 4 || frequent[0].TimesBought != 3 {
		t.Errorf("Unexpected frequent product: %+v", frequent[0])
	}
}
