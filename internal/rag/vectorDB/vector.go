package vectorDB

import (
	"context"

	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
)

type DataProcessor interface {
	Search(ctx context.Context, queryVector []float32) ([]catalogModel.ProductMatch, error)
	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	// EnsureCollection and UpsertProducts back the catalog reindex job
	EnsureCollection(ctx context.Context, collectionName string) error
	UpsertProducts(ctx context.Context, collectionName string, chunks []catalogModel.ProductChunk, vectors [][]float32) error
}
