package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

type ProductStore struct {
	db     *sql.DB
	logger *logger_i.Logger
}

func GetProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db, logger: logger_i.NewLogger("ProductStore")}
}

type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	Limit    int
}

func (s *ProductStore) List(ctx context.Context, filter ProductFilter) ([]catalogModel.Product, error) {
	query := `SELECT id, product, category, sub_category, brand, sale_price, market_price, type, rating, image_url
	          FROM products WHERE 1=1`
	var params []any
	if filter.Category != "" {
		query += ` AND category = ?`
		params = append(params, filter.Category)
	}
	if filter.Brand != "" {
		query += ` AND brand = ?`
		params = append(params, filter.Brand)
	}
	if filter.Search != "" {
		query += ` AND (product LIKE ? OR brand LIKE ?)`
		pattern := "%" + filter.Search + "%"
		params = append(params, pattern, pattern)
	}
	query += ` ORDER BY rating DESC LIMIT ?`
	params = append(params, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *ProductStore) GetById(ctx context.Context, id int64) (catalogModel.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, product, category, sub_category, brand, sale_price, market_price, type, rating, image_url
		 FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (s *ProductStore) Related(ctx context.Context, category string, excludeId int64, limit int) ([]catalogModel.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product, category, sub_category, brand, sale_price, market_price, type, rating, image_url
		 FROM products WHERE category = ? AND id != ? LIMIT ?`, category, excludeId, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// RankedSearch orders LIKE matches by relevance: exact name, name prefix,
// exact brand, brand prefix, then everything else.
func (s *ProductStore) RankedSearch(ctx context.Context, q string, limit int) ([]catalogModel.Product, error) {
	pattern := "%" + q + "%"
	prefix := q + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product, category, sub_category, brand, sale_price, market_price, type, rating, image_url
		FROM products
		WHERE product LIKE ? OR brand LIKE ? OR category LIKE ? OR sub_category LIKE ?
		ORDER BY
			CASE
				WHEN LOWER(product) = LOWER(?) THEN 1
				WHEN LOWER(product) LIKE LOWER(?) THEN 2
				WHEN LOWER(brand) = LOWER(?) THEN 3
				WHEN LOWER(brand) LIKE LOWER(?) THEN 4
				ELSE 5
			END
		LIMIT ?`,
		pattern, pattern, pattern, pattern, q, prefix, q, prefix, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT category FROM products WHERE category IS NOT NULL`)
}

func (s *ProductStore) Brands(ctx context.Context, limit int) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT brand FROM products WHERE brand IS NOT NULL LIMIT ?`, limit)
}

func (s *ProductStore) distinct(ctx context.Context, query string, params ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// BulkInsert loads the catalog in one transaction; used by the CSV import.
func (s *ProductStore) BulkInsert(ctx context.Context, products []catalogModel.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO products
		(id, product, category, sub_category, brand, sale_price, market_price, type, rating, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.Id, p.Name, p.Category, p.SubCategory, p.Brand,
			p.SalePrice, p.MarketPrice, p.Kind, p.Rating, p.ImageURL); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AllForIndexing streams the whole catalog for the embedding pipeline.
func (s *ProductStore) AllForIndexing(ctx context.Context) ([]catalogModel.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product, category, sub_category, brand, sale_price, market_price, type, rating, image_url
		 FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (catalogModel.Product, error) {
	var p catalogModel.Product
	var name, category, subCategory, brand, kind, imageURL sql.NullString
	var salePrice, marketPrice, rating sql.NullFloat64
	err := row.Scan(&p.Id, &name, &category, &subCategory, &brand, &salePrice, &marketPrice, &kind, &rating, &imageURL)
	if err != nil {
		return p, err
	}
	p.Name = name.String
	p.Category = category.String
	p.SubCategory = subCategory.String
	p.Brand = brand.String
	p.SalePrice = salePrice.Float64
	p.MarketPrice = marketPrice.Float64
	p.Kind = kind.String
	p.Rating = rating.Float64
	p.ImageURL = imageURL.String
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]catalogModel.Product, error) {
	var products []catalogModel.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
