package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/store"
)

func TestProductStore_ListAndFilters(t *testing.T) {
	db := testDB(t)
	products := store.GetProductStore(db)
	ctx := context.Background()

	seedProducts(t, db, sampleCatalog())

	t.Run("List orders by rating descending", func(t *testing.T) {
		got, err := products.List(ctx, store.ProductFilter{Limit: 10})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("List got %d products, want 4", len(got))
		}
		if got[0].Name != "Full Cream Milk" {
			t.Errorf("Top rated got %s, want Full Cream Milk", got[0].Name)
		}
	})

	t.Run("Category filter", func(t *testing.T) {
		got, err := products.List(ctx, store.ProductFilter{Category: "Dairy", Limit: 10})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 1 || got[0].Brand != "Amul" {
			t.Errorf("Dairy filter got %+v", got)
		}
	})

	t.Run("Brand filter with name search", func(t *testing.T) {
		got, err := products.List(ctx, store.ProductFilter{Search: "dal", Limit: 10})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Toor Dal" {
			t.Errorf("Search filter got %+v", got)
		}
	})

	t.Run("Limit caps results", func(t *testing.T) {
		got, err := products.List(ctx, store.ProductFilter{Limit: 2})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("Limit 2 got %d products", len(got))
		}
	})
}

func TestProductStore_GetAndRelated(t *testing.T) {
	db := testDB(t)
	products := store.GetProductStore(db)
	ctx := context.Background()

	seedProducts(t, db, sampleCatalog())

	p, err := products.GetById(ctx, 1)
	if err != nil {
		t.Fatalf("GetById failed: %v", err)
	}
	if p.Name != "Basmati Rice" || p.MarketPrice != 150 {
		t.Errorf("Unexpected product: %+v", p)
	}

	if _, err := products.GetById(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	related, err := products.Related(ctx, "Staples", 1, 8)
	if err != nil {
		t.Fatalf("Related failed: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("Related got %d, want 2", len(related))
	}
	for _, r := range related {
		if r.Id == 1 {
			t.Error("Related must exclude the product itself")
		}
	}
}

func TestProductStore_RankedSearch(t *testing.T) {
	db := testDB(t)
	products := store.GetProductStore(db)
	ctx := context.Background()

	seedProducts(t, db, sampleCatalog())

	got, err := products.RankedSearch(ctx, "rice", 50)
	if err != nil {
		t.Fatalf("RankedSearch failed: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("RankedSearch got %d results, want at least 2", len(got))
	}
	// name-prefix match ("Rice Flour") outranks the contains-only match
	if got[0].Name != "Rice Flour" {
		t.Errorf("Top result got %s, want Rice Flour", got[0].Name)
	}
}

func TestProductStore_Distincts(t *testing.T) {
	db := testDB(t)
	products := store.GetProductStore(db)
	ctx := context.Background()

	seedProducts(t, db, sampleCatalog())

	categories, err := products.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Categories got %v, want 2 entries", categories)
	}

	brands, err := products.Brands(ctx, 50)
	if err != nil {
		t.Fatalf("Brands failed: %v", err)
	}
	if len(brands) != 4 {
		t.Errorf("Brands got %v, want 4 entries", brands)
	}

	count, err := products.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 4 {
		t.Errorf("Count got %d, want 4", count)
	}
}

func TestProductStore_BulkInsertReplaces(t *testing.T) {
	db := testDB(t)
	products := store.GetProductStore(db)
	ctx := context.Background()

	seedProducts(t, db, sampleCatalog())

	updated := sampleCatalog()
	updated[0].SalePrice = 99
	seedProducts(t, db, updated)

	count, _ := products.Count(ctx)
	if count != 4 {
		t.Errorf("Re-import duplicated rows: count %d, want 4", count)
	}
	p, _ := products.GetById(ctx, 1)
	if p.SalePrice != 99 {
		t.Errorf("Re-import did not replace: sale price %v, want 99", p.SalePrice)
	}
}
