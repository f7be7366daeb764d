package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/swippe/quickcommerce/internal/data/sqliteStore"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

func setup(t *testing.T) (*Service, *store.ProductStore) {
	t.Helper()
	db, err := sqliteStore.NewTestDB(context.Background())
	if err != nil {
		t.Fatalf("could not open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	products := store.GetProductStore(db)
	return NewService(products), products
}

func TestParseCatalogCSV(t *testing.T) {
	t.Run("Header driven column mapping", func(t *testing.T) {
		csv := strings.Join([]string{
			"id,product,category,sub_category,brand,sale_price,market_price,type,rating,image_url",
			"7,Basmati Rice,Staples,Rice,Daawat,120,150,grain,4.3,http://img/rice.png",
			"8,Toor Dal,Staples,Dal,Tata Sampann,95,110,pulse,4.5,",
		}, "\n")

		products, err := parseCatalogCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("parseCatalogCSV failed: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("Got %d products, want 2", len(products))
		}
		p := products[0]
		if p.Id != 7 || p.Name != "Basmati Rice" || p.SalePrice != 120 || p.MarketPrice != 150 || p.Rating != 4.3 {
			t.Errorf("Unexpected product: %+v", p)
		}
	})

	t.Run("Index column stands in for id", func(t *testing.T) {
		csv := "index,product,sale_price\n3,Full Cream Milk,33\n"
		products, err := parseCatalogCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("parseCatalogCSV failed: %v", err)
		}
		if len(products) != 1 || products[0].Id != 3 {
			t.Errorf("Got %+v, want id 3 from the index column", products)
		}
	})

	t.Run("Row number stands in for a missing id", func(t *testing.T) {
		csv := "product,sale_price\nBasmati Rice,120\nToor Dal,95\n"
		products, err := parseCatalogCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("parseCatalogCSV failed: %v", err)
		}
		if len(products) != 2 || products[0].Id != 1 || products[1].Id != 2 {
			t.Errorf("Got %+v, want row-number ids", products)
		}
	})

	t.Run("Rows without a name are skipped", func(t *testing.T) {
		csv := "id,product,sale_price\n1,Basmati Rice,120\n2,,95\n"
		products, err := parseCatalogCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("parseCatalogCSV failed: %v", err)
		}
		if len(products) != 1 {
			t.Errorf("Got %d products, want the unnamed row skipped", len(products))
		}
	})

	t.Run("Unparseable numbers fall back to zero", func(t *testing.T) {
		csv := "id,product,sale_price,rating\n1,Basmati Rice,n/a,unrated\n"
		products, err := parseCatalogCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("parseCatalogCSV failed: %v", err)
		}
		if products[0].SalePrice != 0 || products[0].Rating != 0 {
			t.Errorf("Got %+v, want zeroed numeric fields", products[0])
		}
	})
}

func TestImportCSVIfEmpty(t *testing.T) {
	svc, products := setup(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "catalog.csv")
	csv := "id,product,category,brand,sale_price,market_price\n" +
		"1,Basmati Rice,Staples,Daawat,120,150\n" +
		"2,Toor Dal,Staples,Tata Sampann,95,110\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if err := svc.ImportCSVIfEmpty(ctx, path); err != nil {
		t.Fatalf("ImportCSVIfEmpty failed: %v", err)
	}
	count, err := products.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count got %d, want 2", count)
	}

	t.Run("Second boot leaves the catalog alone", func(t *testing.T) {
		bigger := csv + "3,Rice Flour,Staples,24 Mantra,45,50\n"
		if err := os.WriteFile(path, []byte(bigger), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if err := svc.ImportCSVIfEmpty(ctx, path); err != nil {
			t.Fatalf("ImportCSVIfEmpty failed: %v", err)
		}
		count, _ := products.Count(ctx)
		if count != 2 {
			t.Errorf("Re-import changed the catalog: count %d, want 2", count)
		}
	})

	t.Run("Missing file is not an error", func(t *testing.T) {
		svc, _ := setup(t)
		if err := svc.ImportCSVIfEmpty(ctx, filepath.Join(t.TempDir(), "nope.csv")); err != nil {
			t.Errorf("Missing catalog file should not fail startup: %v", err)
		}
	})
}

func TestSearch_QueryTooShort(t *testing.T) {
	svc, products := setup(t)
	ctx := context.Background()

	if err := products.BulkInsert(ctx, []catalogModel.Product{
		{Id: 1, Name: "Basmati Rice", Category: "Staples", Brand: "Daawat", SalePrice: 120, MarketPrice: 150},
	}); err != nil {
		t.Fatalf("seeding products: %v", err)
	}

	if _, err := svc.Search(ctx, " a "); !errors.Is(err, ErrQueryTooShort) {
		t.Errorf("Got %v, want ErrQueryTooShort", err)
	}
	got, err := svc.Search(ctx, "rice")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Search got %d results, want 1", len(got))
	}
}
