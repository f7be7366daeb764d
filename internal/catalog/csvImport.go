package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

// ImportCSVIfEmpty seeds the catalog from a CSV export on first boot. A
// non-empty products table means a previous import already ran and the file
// is left alone.
func (s *Service) ImportCSVIfEmpty(ctx context.Context, path string) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("Catalog already seeded", "products", count)
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		s.logger.Warn("Catalog file missing, starting with empty catalog", "path", path)
		return nil
	}
	defer file.Close()

	products, err := parseCatalogCSV(file)
	if err != nil {
		return fmt.Errorf("parsing catalog csv: %w", err)
	}
	if len(products) == 0 {
		s.logger.Warn("Catalog file had no rows", "path", path)
		return nil
	}

	if err := s.products.BulkInsert(ctx, products); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	s.logger.Info("Catalog seeded", "products", len(products), "path", path)
	return nil
}

func parseCatalogCSV(r io.Reader) ([]catalogModel.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	col := func(name string) int {
		if i, ok := cols[name]; ok {
			return i
		}
		return -1
	}
	// exports name the primary key either way
	idCol := col("id")
	if idCol < 0 {
		idCol = col("index")
	}

	var products []catalogModel.Product
	rowNum := int64(0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rowNum++

		p := catalogModel.Product{
			Id:          parseInt(field(record, idCol), rowNum),
			Name:        field(record, col("product")),
			Category:    field(record, col("category")),
			SubCategory: field(record, col("sub_category")),
			Brand:       field(record, col("brand")),
			SalePrice:   parseFloat(field(record, col("sale_price"))),
			MarketPrice: parseFloat(field(record, col("market_price"))),
			Kind:        field(record, col("type")),
			Rating:      parseFloat(field(record, col("rating"))),
			ImageURL:    field(record, col("image_url")),
		}
		if p.Name == "" {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseInt(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
