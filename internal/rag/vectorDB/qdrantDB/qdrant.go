package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qdrant/go-client/qdrant"
	"github.com/swippe/quickcommerce/internal/config"
	"github.com/swippe/quickcommerce/internal/domain/catalogModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	logger         *logger_i.Logger
	qdrantInstance *qdrant.Client
	once           sync.Once
	dimension      = uint64(config.EmbeddingOutputDimensionality)
	collectionName = config.ProductCollectionName
)

type ClientHolder struct {
	QObj *qdrant.Client
}

// GetQdrantClient builds the singleton vector store client. Returns nil when
// qdrant is unreachable; chat then degrades instead of crashing the server.
func GetQdrantClient(ctx context.Context, host string, port int) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient(host, port)
		if res != nil {
			qdrantInstance = res
			initCacheCollection(ctx, qdrantInstance)
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{QObj: qdrantInstance}
}

func newClient(host string, port int) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}

	if err := createCollection(context.Background(), client, collectionName); err != nil {
		logger.Error("could not create collection", "collectionName", collectionName, "error", err)
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
	logger.Info("Closed Qdrant")
}

// Search returns the closest catalog products to the query vector.
func (db *ClientHolder) Search(ctx context.Context, queryVector []float32) ([]catalogModel.ProductMatch, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(config.VectorSearchTopK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	var matches []catalogModel.ProductMatch
	for _, hit := range result {
		matches = append(matches, catalogModel.ProductMatch{
			Id:        int64(hit.Payload["product_id"].GetIntegerValue()),
			Name:      hit.Payload["product"].GetStringValue(),
			Category:  hit.Payload["category"].GetStringValue(),
			Brand:     hit.Payload["brand"].GetStringValue(),
			SalePrice: hit.Payload["sale_price"].GetDoubleValue(),
			Rating:    hit.Payload["rating"].GetDoubleValue(),
			Score:     hit.Score,
		})
	}

	loggr.Debug("Found matches", "count", len(matches))
	return matches, nil
}

func (db *ClientHolder) EnsureCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

// UpsertProducts writes one point per catalog entry, keyed by chunk id so a
// reindex overwrites stale vectors in place.
func (db *ClientHolder) UpsertProducts(ctx context.Context, collectionName string, chunks []catalogModel.ProductChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(chunk.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"product_id": chunk.Product.Id,
				"product":    chunk.Product.Name,
				"category":   chunk.Product.Category,
				"brand":      chunk.Product.Brand,
				"sale_price": chunk.Product.SalePrice,
				"rating":     chunk.Product.Rating,
				"content":    chunk.Text,
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}
