package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/sqliteStore"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqliteStore.NewTestDB(context.Background())
	if err != nil {
		t.Fatalf("could not open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	users := store.GetUserStore(db)
	id, err := users.CreateUser(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("seedUser(%s): %v", email, err)
	}
	return id
}

func seedProducts(t *testing.T, db *sql.DB, products []catalogModel.Product) {
	t.Helper()
	if err := store.GetProductStore(db).BulkInsert(context.Background(), products); err != nil {
		t.Fatalf("seedProducts: %v", err)
	}
}

func sampleCatalog() []catalogModel.Product {
	return []catalogModel.Product{
		{Id: 1, Name: "Basmati Rice", Category: "Staples", SubCategory: "Rice", Brand: "Daawat", SalePrice: 120, MarketPrice: 150, Rating: 4.3},
		{Id: 2, Name: "Toor Dal", Category: "Staples", SubCategory: "Dal", Brand: "Tata Sampann", SalePrice: 95, MarketPrice: 110, Rating: 4.5},
		{Id: 3, Name: "Rice Flour", Category: "Staples", SubCategory: "Flour", Brand: "24 Mantra", SalePrice: 45, MarketPrice: 50, Rating: 3.9},
		{Id: 4, Name: "Full Cream Milk", Category: "Dairy", SubCategory: "Milk", Brand: "Amul", SalePrice: 33, MarketPrice: 33, Rating: 4.7},
	}
}
