package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var ErrQueryTooShort = errors.New("search query too short")

// Service answers all catalog reads; writes only happen through the CSV
// import at startup.
type Service struct {
	products *store.ProductStore
	logger   *logger_i.Logger
}

func NewService(products *store.ProductStore) *Service {
	return &Service{products: products, logger: logger_i.NewLogger("CatalogService")}
}

func (s *Service) ListProducts(ctx context.Context, category string, brand string, search string) ([]catalogModel.Product, error) {
	return s.products.List(ctx, store.ProductFilter{
		Category: category,
		Brand:    brand,
		Search:   strings.TrimSpace(search),
		Limit:    config.ProductListLimit,
	})
}

type ProductDetail struct {
	Product catalogModel.Product   `json:"product"`
	Related []catalogModel.Product `json:"related"`
}

// GetProduct returns the product plus a shelf of same-category items.
func (s *Service) GetProduct(ctx context.Context, id int64) (ProductDetail, error) {
	product, err := s.products.GetById(ctx, id)
	if err != nil {
		return ProductDetail{}, err
	}

	related, err := s.products.Related(ctx, product.Category, product.Id, config.RelatedLimit)
	if err != nil {
		s.logger.Warn("Could not load related products", "productId", id, "error", err)
		related = nil
	}
	return ProductDetail{Product: product, Related: related}, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]catalogModel.Product, error) {
	query = strings.TrimSpace(query)
	if len(query) < config.MinSearchQueryLen {
		return nil, ErrQueryTooShort
	}
	return s.products.RankedSearch(ctx, query, config.SearchResultLimit)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

func (s *Service) Brands(ctx context.Context) ([]string, error) {
	return s.products.Brands(ctx, config.BrandListLimit)
}
